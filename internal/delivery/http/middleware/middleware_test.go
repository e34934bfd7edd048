package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(zap.NewNop()).Middleware())
	app.Use(NewAccessLogMiddleware(zap.NewNop()).Middleware())
	return app
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, response.SemanticResponse) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body response.SemanticResponse
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func TestErrorMiddleware(t *testing.T) {
	app := newTestApp()
	app.Get("/conflict", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "Already applied", nil, errors.New("dup"))
	})
	app.Get("/upstream", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadGateway, "Text generation service unavailable", nil, errors.New("quota"))
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "pq: relation missing", nil, nil)
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("unexpected")
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/conflict", fiber.StatusConflict, "Already applied"},
		{"/upstream", fiber.StatusBadGateway, "Text generation service unavailable"},
		{"/internal", fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"/plain", fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"/panic", fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"/missing", fiber.StatusNotFound, ""},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.status, body.Status)
			if tc.message != "" {
				assert.Equal(t, tc.message, body.Message)
			}
		})
	}
}

func TestAuthMiddleware_RoleGate(t *testing.T) {
	svc := jwt.NewHMACService("a-secret", "r-secret", time.Minute, time.Hour)
	auth := NewAuthMiddleware(svc)

	app := newTestApp()
	app.Get("/admin", auth.Middleware(), RequireRole(user.RoleAdmin), func(c fiber.Ctx) error {
		role, _ := RoleFrom(c)
		return response.Success(c, fiber.StatusOK, string(role), nil)
	})

	uid := uuid.New()
	adminTok, err := svc.GenerateAccessToken(uid, "a@example.com", string(user.RoleAdmin))
	require.NoError(t, err)
	seekerTok, err := svc.GenerateAccessToken(uid, "s@example.com", string(user.RoleJobSeeker))
	require.NoError(t, err)
	refreshTok, err := svc.GenerateRefreshToken(uid)
	require.NoError(t, err)

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", fiber.StatusUnauthorized},
		{"refresh token", refreshTok, fiber.StatusUnauthorized},
		{"wrong role", seekerTok, fiber.StatusForbidden},
		{"admin", adminTok, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			status, body := doRequest(t, app, req)
			assert.Equal(t, tc.status, status)
			if tc.status == fiber.StatusOK {
				assert.Equal(t, "admin", body.Message)
			}
		})
	}
}
