package middleware

import (
	"errors"
	"strings"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxRoleKey   = "role"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		role, err := user.ParseRole(claims.Role)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxRoleKey, role)

		return c.Next()
	}
}

// RequireRole must run after Middleware.
func RequireRole(roles ...user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := RoleFrom(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
}

func UserIDFrom(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func RoleFrom(c fiber.Ctx) (user.Role, bool) {
	role, ok := c.Locals(CtxRoleKey).(user.Role)
	return role, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
