package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
)

type SavedJobRepository interface {
	// Save is idempotent.
	Save(ctx context.Context, userID, jobID uuid.UUID) error
	Unsave(ctx context.Context, userID, jobID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]job.Posting, error)
}

type PostgresSavedJobRepository struct {
	db database.DB
}

func NewPostgresSavedJobRepository(db database.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (user_id, job_id) VALUES ($1, $2) ON CONFLICT (user_id, job_id) DO NOTHING`,
		userID, jobID,
	)
	if err != nil && isForeignKeyViolation(err) {
		return ErrJobNotFound
	}
	return err
}

func (r *PostgresSavedJobRepository) Unsave(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	return err
}

func (r *PostgresSavedJobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+prefixedJobColumns("j")+`
		 FROM saved_jobs s
		 JOIN jobs j ON j.id = s.job_id
		 WHERE s.user_id = $1 AND j.approval_status = 'approved'
		 ORDER BY s.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func prefixedJobColumns(alias string) string {
	p := alias + "."
	return p + "id, " + p + "recruiter_id, " + p + "title, " + p + "salary, " + p + "location, " +
		p + "company_name, " + p + "job_type, " + p + "benefits, " + p + "experience, " +
		p + "responsibilities, COALESCE(" + p + "skills, '{}'), " + p + "qualification, " +
		p + "job_category, " + p + "approval_status, " + p + "status, " + p + "image_url, " +
		p + "created_at, " + p + "updated_at"
}
