package usecase

import (
	"context"
	"errors"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	ucauth "jobboard/internal/usecase/auth"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   repository.UserRepository
	jwt     jwt.Service
}

func NewAuthUsecase(users repository.UserRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, string, string, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.User{}, "", "", err
	}
	access, refresh, err := u.issue(usr)
	if err != nil {
		return user.User{}, "", "", err
	}
	return usr, access, refresh, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, "", "", err
	}
	access, refresh, err := u.issue(usr)
	if err != nil {
		return user.User{}, "", "", err
	}
	return usr, access, refresh, nil
}

// Refresh rotates both tokens. The role is read from the stored user so a
// changed role takes effect on the next refresh.
func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) || claims.TokenType != jwt.TokenTypeRefresh {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	return u.issue(usr)
}

func (u *Auth) issue(usr user.User) (string, string, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email, string(usr.Role))
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}
