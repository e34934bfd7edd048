package usecase

import (
	"errors"
	"fmt"
)

// Categories. Handlers map these to HTTP status codes; the specific errors
// below wrap exactly one of them.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrExternalService    = errors.New("external service failure")
	ErrInvalidInput       = errors.New("invalid input")
	ErrRateLimited        = errors.New("rate limited")
	ErrInternal           = errors.New("internal error")
)

var (
	ErrJobNotFound          = fmt.Errorf("job %w", ErrNotFound)
	ErrApplicationNotFound  = fmt.Errorf("application %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)

	ErrAlreadyApplied     = fmt.Errorf("%w: already applied to this job", ErrConflict)
	ErrJobAlreadyApproved = fmt.Errorf("%w: job already approved", ErrConflict)
	ErrInvalidTransition  = fmt.Errorf("%w: application status cannot change", ErrConflict)

	ErrJobClosed           = fmt.Errorf("%w: job is closed", ErrPreconditionFailed)
	ErrResumeRequired      = fmt.Errorf("%w: resume is required", ErrPreconditionFailed)
	ErrCoverLetterRequired = fmt.Errorf("%w: cover letter is required", ErrPreconditionFailed)
	ErrUnsupportedResume   = fmt.Errorf("%w: resume format is not supported", ErrPreconditionFailed)

	ErrResumeTooLarge = fmt.Errorf("%w: resume exceeds the size limit", ErrInvalidInput)
	ErrResumeFormat   = fmt.Errorf("%w: resume must be a pdf, doc, docx or txt file", ErrInvalidInput)

	ErrNotJobOwner = fmt.Errorf("%w: not the owner of this job", ErrForbidden)

	ErrInvalidRefreshToken = fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	ErrRefreshTokenExpired = fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
)
