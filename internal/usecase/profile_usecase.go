package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/storage"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/resumetext"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResumeStore persists an uploaded resume and returns where it lives.
type ResumeStore interface {
	Save(owner uuid.UUID, filename string, r io.Reader) (string, error)
	Remove(path string) error
}

type ProfileInput struct {
	FullName    *string
	CoverLetter *string
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (user.User, error)
	UploadResume(ctx context.Context, userID uuid.UUID, filename string, r io.Reader) (user.User, error)
}

type Profiles struct {
	users   repository.UserRepository
	resumes ResumeStore
	logger  *zap.Logger
}

func NewProfileUsecase(users repository.UserRepository, resumes ResumeStore, log *zap.Logger) *Profiles {
	return &Profiles{users: users, resumes: resumes, logger: logger.OrNop(log)}
}

func (u *Profiles) GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, mapUserError(err)
	}
	return usr, nil
}

func (u *Profiles) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (user.User, error) {
	p := user.Profile{}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
		p.FullName = &name
	}
	if in.CoverLetter != nil {
		cl := strings.TrimSpace(*in.CoverLetter)
		p.CoverLetter = &cl
	}

	usr, err := u.users.UpdateProfile(ctx, userID, p)
	if err != nil {
		return user.User{}, mapUserError(err)
	}
	return usr, nil
}

// UploadResume stores a new resume on the profile and clears the analysis
// made from the previous one.
func (u *Profiles) UploadResume(ctx context.Context, userID uuid.UUID, filename string, r io.Reader) (user.User, error) {
	if !resumetext.Allowed(filename) {
		return user.User{}, ErrResumeFormat
	}
	if u.resumes == nil {
		return user.User{}, ErrInternal
	}

	path, err := u.resumes.Save(userID, filename, r)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return user.User{}, ErrResumeTooLarge
		}
		u.logger.Error("resume upload failed", zap.String("user_id", userID.String()), zap.Error(err))
		return user.User{}, ErrInternal
	}

	if err := u.users.SetResumePath(ctx, userID, path); err != nil {
		if rerr := u.resumes.Remove(path); rerr != nil {
			u.logger.Warn("orphaned resume not removed", zap.String("path", path), zap.Error(rerr))
		}
		return user.User{}, mapUserError(err)
	}
	if err := u.users.SetResumeAnalysis(ctx, userID, ""); err != nil {
		return user.User{}, mapUserError(err)
	}
	return u.GetProfile(ctx, userID)
}

func mapUserError(err error) error {
	if errors.Is(err, user.ErrNotFound) {
		return ErrUserNotFound
	}
	return ErrInternal
}
