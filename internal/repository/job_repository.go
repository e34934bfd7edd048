package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobFilter narrows the public listing. Empty fields match everything.
type JobFilter struct {
	Keyword  string
	Location string
	Type     job.Type
	Category job.Category
	Skill    string
	Limit    int
	Offset   int
}

type JobRepository interface {
	Create(ctx context.Context, p job.Posting) (job.Posting, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	Update(ctx context.Context, p job.Posting) (job.Posting, error)
	SetStatus(ctx context.Context, id, recruiterID uuid.UUID, status job.OpenStatus) error
	Delete(ctx context.Context, id, recruiterID uuid.UUID) error
	ListApproved(ctx context.Context, f JobFilter) ([]job.Posting, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]job.Posting, error)
	ListPending(ctx context.Context, limit, offset int) ([]job.Posting, error)
}

const jobColumns = `id, recruiter_id, title, salary, location, company_name, job_type, benefits,
	experience, responsibilities, COALESCE(skills, '{}'), qualification, job_category,
	approval_status, status, image_url, created_at, updated_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, p job.Posting) (job.Posting, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (id, recruiter_id, title, salary, location, company_name, job_type, benefits,
			experience, responsibilities, skills, qualification, job_category, approval_status, status, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING `+jobColumns,
		p.ID, p.RecruiterID, p.Title, p.Salary, p.Location, p.CompanyName, string(p.Type), p.Benefits,
		p.Experience, p.Responsibilities, p.Skills, p.Qualification, string(p.Category),
		string(p.Approval), string(p.Status), p.ImageURL,
	)
	out, err := scanJob(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return job.Posting{}, fmt.Errorf("unknown recruiter %s: %w", p.RecruiterID, err)
		}
		return job.Posting{}, err
	}
	return out, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) Update(ctx context.Context, p job.Posting) (job.Posting, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE jobs SET title = $3, salary = $4, location = $5, company_name = $6, job_type = $7,
			benefits = $8, experience = $9, responsibilities = $10, skills = $11, qualification = $12,
			job_category = $13, image_url = $14, updated_at = now()
		 WHERE id = $1 AND recruiter_id = $2
		 RETURNING `+jobColumns,
		p.ID, p.RecruiterID, p.Title, p.Salary, p.Location, p.CompanyName, string(p.Type),
		p.Benefits, p.Experience, p.Responsibilities, p.Skills, p.Qualification,
		string(p.Category), p.ImageURL,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) SetStatus(ctx context.Context, id, recruiterID uuid.UUID, status job.OpenStatus) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $3, updated_at = now() WHERE id = $1 AND recruiter_id = $2`,
		id, recruiterID, string(status),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id, recruiterID uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND recruiter_id = $2`, id, recruiterID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ListApproved(ctx context.Context, f JobFilter) ([]job.Posting, error) {
	limit, offset := clampPage(f.Limit, f.Offset)

	where := []string{`approval_status = 'approved'`}
	args := make([]any, 0, 7)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		add(`(title ILIKE '%%' || $%[1]d || '%%' OR company_name ILIKE '%%' || $%[1]d || '%%')`, kw)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		add(`location ILIKE '%%' || $%d || '%%'`, loc)
	}
	if f.Type != "" {
		add(`job_type = $%d`, string(f.Type))
	}
	if f.Category != "" {
		add(`job_category = $%d`, string(f.Category))
	}
	if s := strings.TrimSpace(f.Skill); s != "" {
		add(`EXISTS (SELECT 1 FROM unnest(skills) AS sk WHERE lower(sk) = lower($%d))`, s)
	}

	args = append(args, limit, offset)
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	return r.queryJobs(ctx, q, args...)
}

func (r *PostgresJobRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]job.Posting, error) {
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE recruiter_id = $1 ORDER BY created_at DESC`,
		recruiterID,
	)
}

func (r *PostgresJobRepository) ListPending(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	limit, offset = clampPage(limit, offset)
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE approval_status = 'pending' ORDER BY created_at ASC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, q string, args ...any) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx, q, args...)
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

func scanJob(row database.Row) (job.Posting, error) {
	var (
		p                                 job.Posting
		jobType, category, approval, stat string
		createdAt, updatedAt              time.Time
	)
	err := row.Scan(
		&p.ID, &p.RecruiterID, &p.Title, &p.Salary, &p.Location, &p.CompanyName, &jobType, &p.Benefits,
		&p.Experience, &p.Responsibilities, &p.Skills, &p.Qualification, &category,
		&approval, &stat, &p.ImageURL, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	p.Type = job.Type(jobType)
	p.Category = job.Category(category)
	p.Approval = job.ApprovalStatus(approval)
	p.Status = job.OpenStatus(stat)
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
