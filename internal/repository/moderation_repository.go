package repository

import (
	"context"
	"errors"
	"fmt"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"

	"github.com/google/uuid"
)

// ModerationRepository applies admin decisions. Both operations only act on
// postings that are still pending and report ErrJobNotPending otherwise.
type ModerationRepository interface {
	// Approve marks the job approved, increments the owning recruiter's
	// jobs_posted counter and stores n, all in one transaction.
	Approve(ctx context.Context, jobID uuid.UUID, n notification.Notification) (job.Posting, error)
	DeletePending(ctx context.Context, jobID uuid.UUID) error
}

type PostgresModerationRepository struct {
	db database.DB
}

func NewPostgresModerationRepository(db database.DB) *PostgresModerationRepository {
	return &PostgresModerationRepository{db: db}
}

func (r *PostgresModerationRepository) Approve(ctx context.Context, jobID uuid.UUID, n notification.Notification) (job.Posting, error) {
	var approved job.Posting
	err := database.InTx(ctx, r.db, func(tx database.Tx) error {
		var err error
		approved, err = scanJob(tx.QueryRow(ctx,
			`UPDATE jobs SET approval_status = 'approved', updated_at = now()
			 WHERE id = $1 AND approval_status = 'pending'
			 RETURNING `+jobColumns,
			jobID,
		))
		if err != nil {
			if errors.Is(err, ErrJobNotFound) {
				return notPendingOrMissing(ctx, tx, jobID)
			}
			return err
		}

		affected, err := tx.Exec(ctx,
			`UPDATE users SET jobs_posted = jobs_posted + 1, updated_at = now() WHERE id = $1`,
			approved.RecruiterID,
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("recruiter %s missing for job %s", approved.RecruiterID, jobID)
		}

		if n.ID == uuid.Nil {
			n.ID = uuid.New()
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO notifications (id, user_id, job_id, title, company_name, location) VALUES ($1, $2, $3, $4, $5, $6)`,
			n.ID, approved.RecruiterID, approved.ID, n.Title, n.CompanyName, n.Location,
		)
		return err
	})
	if err != nil {
		return job.Posting{}, err
	}
	return approved, nil
}

func (r *PostgresModerationRepository) DeletePending(ctx context.Context, jobID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND approval_status = 'pending'`, jobID)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, jobID)
	if err := row.Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrJobNotPending
	}
	return ErrJobNotFound
}

func notPendingOrMissing(ctx context.Context, tx database.Tx, jobID uuid.UUID) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, jobID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrJobNotPending
	}
	return ErrJobNotFound
}
