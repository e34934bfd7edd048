package auth

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/user"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidRole            = errors.New("role cannot be self-assigned")
	ErrInternal               = errors.New("internal error")
)

const minPasswordLen = 8

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users repository.UserRepository
}

func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// Register creates a job seeker or recruiter. An empty role means job seeker.
func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	role := user.RoleJobSeeker
	if r := strings.TrimSpace(in.Role); r != "" {
		parsed, err := user.ParseRole(strings.ToLower(r))
		if err != nil {
			return user.User{}, ErrInvalidInput
		}
		if !parsed.SelfAssignable() {
			return user.User{}, ErrInvalidRole
		}
		role = parsed
	}

	return s.create(ctx, email, in.Password, strings.TrimSpace(in.FullName), role)
}

// CreateAdmin is used by operator tooling only.
func (s *Service) CreateAdmin(ctx context.Context, email, password, fullName string) (user.User, error) {
	email = NormalizeEmail(email)
	if email == "" || !isValidPassword(password) {
		return user.User{}, ErrInvalidInput
	}
	return s.create(ctx, email, password, strings.TrimSpace(fullName), user.RoleAdmin)
}

func (s *Service) create(ctx context.Context, email, password, fullName string, role user.Role) (user.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidCredentials
	}
	if in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= minPasswordLen
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
