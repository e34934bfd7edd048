package repository

import (
	"context"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	// DeleteReadOlderThan removes read notifications created before cutoff.
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type PostgresNotificationRepository struct {
	db database.DB
}

func NewPostgresNotificationRepository(db database.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, job_id, title, company_name, location, is_read, created_at
		 FROM notifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.JobID, &n.Title, &n.CompanyName, &n.Location, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.CreatedAt = n.CreatedAt.UTC()
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *PostgresNotificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *PostgresNotificationRepository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM notifications WHERE is_read AND created_at < $1`, cutoff.UTC())
}
