package usecase

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/domain/notification"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error)
}

type Notifications struct {
	repo   repository.NotificationRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewNotificationUsecase(repo repository.NotificationRepository, log *zap.Logger) *Notifications {
	return &Notifications{repo: repo, now: time.Now, logger: logger.OrNop(log)}
}

func (u *Notifications) List(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		u.logger.Error("list notifications failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Notifications) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return u.mapError("mark notification read", id, u.repo.MarkRead(ctx, id, userID))
}

func (u *Notifications) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return u.mapError("delete notification", id, u.repo.Delete(ctx, id, userID))
}

// PurgeRead removes read notifications older than the given age.
func (u *Notifications) PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, ErrInvalidInput
	}
	n, err := u.repo.DeleteReadOlderThan(ctx, u.now().UTC().Add(-olderThan))
	if err != nil {
		u.logger.Error("purge read notifications failed", zap.Duration("older_than", olderThan), zap.Error(err))
		return 0, ErrInternal
	}
	return n, nil
}

func (u *Notifications) mapError(op string, id uuid.UUID, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotificationNotFound):
		return ErrNotificationNotFound
	default:
		u.logger.Error(op+" failed", zap.String("notification_id", id.String()), zap.Error(err))
		return ErrInternal
	}
}
