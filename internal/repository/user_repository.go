package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	Create(ctx context.Context, u user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, p user.Profile) (user.User, error)
	SetResumePath(ctx context.Context, id uuid.UUID, path string) error
	SetResumeAnalysis(ctx context.Context, id uuid.UUID, analysis string) error
}

const userColumns = `id, email, password_hash, full_name, role, jobs_posted, resume_path,
	cover_letter, resume_analysis, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, role) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.PasswordHash, u.FullName, string(u.Role),
	)
	if err != nil && isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p user.Profile) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`UPDATE users SET full_name = COALESCE($2, full_name), cover_letter = COALESCE($3, cover_letter), updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, p.FullName, p.CoverLetter,
	))
}

func (r *PostgresUserRepository) SetResumePath(ctx context.Context, id uuid.UUID, path string) error {
	return r.execForUser(ctx, `UPDATE users SET resume_path = $2, updated_at = now() WHERE id = $1`, id, path)
}

func (r *PostgresUserRepository) SetResumeAnalysis(ctx context.Context, id uuid.UUID, analysis string) error {
	return r.execForUser(ctx, `UPDATE users SET resume_analysis = $2, updated_at = now() WHERE id = $1`, id, analysis)
}

func (r *PostgresUserRepository) execForUser(ctx context.Context, q string, id uuid.UUID, v string) error {
	n, err := r.db.Exec(ctx, q, id, v)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var (
		u    user.User
		role string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &role, &u.JobsPosted, &u.ResumePath,
		&u.CoverLetter, &u.ResumeAnalysis, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
