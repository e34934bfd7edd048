package handler

import (
	"errors"
	"strconv"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Specific errors come before the category they wrap.
var usecaseErrors = []errorMapping{
	{usecase.ErrJobNotFound, fiber.StatusNotFound, "Job not found"},
	{usecase.ErrApplicationNotFound, fiber.StatusNotFound, "Application not found"},
	{usecase.ErrNotificationNotFound, fiber.StatusNotFound, "Notification not found"},
	{usecase.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
	{usecase.ErrNotFound, fiber.StatusNotFound, "Not found"},

	{usecase.ErrAlreadyApplied, fiber.StatusConflict, "Already applied to this job"},
	{usecase.ErrJobAlreadyApproved, fiber.StatusConflict, "Job already approved"},
	{usecase.ErrInvalidTransition, fiber.StatusConflict, "Application status cannot change"},
	{usecase.ErrConflict, fiber.StatusConflict, "Conflict"},

	{usecase.ErrJobClosed, fiber.StatusUnprocessableEntity, "Job is closed for applications"},
	{usecase.ErrResumeRequired, fiber.StatusUnprocessableEntity, "Resume is required"},
	{usecase.ErrCoverLetterRequired, fiber.StatusUnprocessableEntity, "Cover letter is required"},
	{usecase.ErrUnsupportedResume, fiber.StatusUnprocessableEntity, "Resume format is not supported"},
	{usecase.ErrPreconditionFailed, fiber.StatusUnprocessableEntity, "Precondition failed"},

	{usecase.ErrRefreshTokenExpired, fiber.StatusUnauthorized, "Refresh token expired"},
	{usecase.ErrInvalidRefreshToken, fiber.StatusUnauthorized, "Invalid refresh token"},
	{usecase.ErrUnauthorized, fiber.StatusUnauthorized, "Unauthorized"},

	{usecase.ErrNotJobOwner, fiber.StatusForbidden, "Not the owner of this job"},
	{usecase.ErrForbidden, fiber.StatusForbidden, "Forbidden"},

	{usecase.ErrResumeTooLarge, fiber.StatusBadRequest, "Resume exceeds the size limit"},
	{usecase.ErrResumeFormat, fiber.StatusBadRequest, "Resume must be a pdf, doc, docx or txt file"},
	{usecase.ErrInvalidInput, fiber.StatusBadRequest, "Bad request"},

	{usecase.ErrRateLimited, fiber.StatusTooManyRequests, "Too many requests"},
	{usecase.ErrExternalService, fiber.StatusBadGateway, "Text generation service unavailable"},
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	for _, m := range usecaseErrors {
		if errors.Is(err, m.target) {
			return middleware.NewAppError(m.status, m.message, nil, err)
		}
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}

func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserIDFrom(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func pathUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return v, nil
}
