package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrJobNotPending        = errors.New("job is not pending approval")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrStatusChanged        = errors.New("application status changed concurrently")
	ErrAlreadyApplied       = errors.New("application already exists")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrEmailTaken           = errors.New("email already registered")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
