package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ApplicationRepository interface {
	Exists(ctx context.Context, jobID, userID uuid.UUID) (bool, error)
	// Create stores a, returning ErrAlreadyApplied when the (job, user) pair
	// is already taken.
	Create(ctx context.Context, a application.Applicant) (application.Applicant, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Applicant, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Applicant, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Applicant, error)
	// Respond moves the application from status from to status to. It
	// returns ErrStatusChanged when the stored status is no longer from.
	Respond(ctx context.Context, id uuid.UUID, from, to application.Status, message string, at time.Time) (application.Applicant, error)
}

const applicationColumns = `id, job_id, user_id, resume_path, cover_letter, status, response,
	COALESCE(matched_skills, '{}'), COALESCE(missing_skills, '{}'), applied_at, responded_at`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`, jobID, userID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Applicant) (application.Applicant, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, job_id, user_id, resume_path, cover_letter, status, matched_skills, missing_skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+applicationColumns,
		a.ID, a.JobID, a.UserID, a.ResumePath, a.CoverLetter, string(a.Status), a.MatchedSkills, a.MissingSkills,
	)
	out, err := scanApplication(row)
	if err != nil {
		if isUniqueViolation(err) {
			return application.Applicant{}, ErrAlreadyApplied
		}
		return application.Applicant{}, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Applicant, error) {
	return scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Applicant, error) {
	return r.query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY applied_at ASC`, jobID)
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]application.Applicant, error) {
	return r.query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE user_id = $1 ORDER BY applied_at DESC`, userID)
}

func (r *PostgresApplicationRepository) Respond(ctx context.Context, id uuid.UUID, from, to application.Status, message string, at time.Time) (application.Applicant, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`UPDATE applications SET status = $2, response = $3, responded_at = $4
		 WHERE id = $1 AND status = $5
		 RETURNING `+applicationColumns,
		id, string(to), message, at.UTC(), string(from),
	))
	if !errors.Is(err, ErrApplicationNotFound) {
		return a, err
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return application.Applicant{}, err
	}
	return application.Applicant{}, ErrStatusChanged
}

func (r *PostgresApplicationRepository) query(ctx context.Context, q string, args ...any) ([]application.Applicant, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Applicant, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Applicant, error) {
	var (
		a           application.Applicant
		status      string
		respondedAt *time.Time
	)
	err := row.Scan(
		&a.ID, &a.JobID, &a.UserID, &a.ResumePath, &a.CoverLetter, &status, &a.Response,
		&a.MatchedSkills, &a.MissingSkills, &a.AppliedAt, &respondedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return application.Applicant{}, ErrApplicationNotFound
		}
		return application.Applicant{}, err
	}
	a.Status = application.Status(status)
	a.AppliedAt = a.AppliedAt.UTC()
	if respondedAt != nil {
		t := respondedAt.UTC()
		a.RespondedAt = &t
	}
	return a, nil
}
