package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleJobSeeker, RoleRecruiter, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// SelfAssignable reports whether a role may be chosen at registration.
func (r Role) SelfAssignable() bool {
	switch r {
	case RoleJobSeeker, RoleRecruiter:
		return true
	case RoleAdmin:
		return false
	}
	return false
}

type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	FullName       string    `json:"full_name"`
	Role           Role      `json:"role"`
	JobsPosted     int       `json:"jobs_posted"`
	ResumePath     string    `json:"resume"`
	CoverLetter    string    `json:"cover_letter"`
	ResumeAnalysis string    `json:"resume_analysis"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Profile holds the fields a user edits about themselves.
type Profile struct {
	FullName    *string
	CoverLetter *string
}
