package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/config"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t   *testing.T
	app *App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.Config{
		App:      config.AppConfig{AppName: "jobboard-test", Environment: "test", HTTPPort: "0"},
		Database: config.DatabaseConfig{Driver: "memory"},
		Redis:    config.RedisConfig{TTL: time.Minute},
		JWT: config.JWTConfig{
			AccessSecret:     "access-secret",
			RefreshSecret:    "refresh-secret",
			AccessExpiresIn:  time.Minute,
			RefreshExpiresIn: time.Hour,
		},
		AI:      config.AIConfig{Timeout: time.Second, RatePerMinute: 6},
		Storage: config.StorageConfig{UploadDir: t.TempDir(), MaxResumeBytes: 1 << 20},
		Scheduler: config.SchedulerConfig{
			NotificationRetentionSpec: "@every 24h",
			RetentionDays:             30,
		},
	}

	a, cleanup, err := Bootstrap(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	return &testServer{t: t, app: a}
}

func (s *testServer) send(req *http.Request, token string) (int, envelope) {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Fiber.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)

	var env envelope
	require.NoError(s.t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func (s *testServer) json(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req, token)
}

func (s *testServer) multipart(path, token string, fields map[string]string, filename, content string) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(s.t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("resume", filename)
		require.NoError(s.t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.send(req, token)
}

func (s *testServer) register(email, role string) string {
	s.t.Helper()
	status, env := s.json(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "password123", "full_name": "Test " + role, "role": role,
	})
	require.Equal(s.t, fiber.StatusCreated, status, env.Message)
	return accessToken(s.t, env)
}

func accessToken(t *testing.T, env envelope) string {
	t.Helper()
	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestHealth_MemoryDriver(t *testing.T) {
	s := newTestServer(t)

	status, env := s.json(http.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "memory", decode[map[string]string](t, env)["database"])
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	status, env := s.json(http.MethodGet, "/api/v1/notifications", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, fiber.StatusUnauthorized, env.Status)

	status, _ = s.json(http.MethodGet, "/api/v1/notifications", "not-a-jwt", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.json(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "root@example.com", "password": "password123", "role": "admin",
	})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestJobBoardFlow(t *testing.T) {
	s := newTestServer(t)

	recruiter := s.register("recruiter@example.com", "recruiter")
	seeker := s.register("seeker@example.com", "jobseeker")

	_, err := ucauth.NewService(s.app.Container.Repos.Users).
		CreateAdmin(context.Background(), "admin@example.com", "password123", "Admin")
	require.NoError(t, err)
	status, env := s.json(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "admin@example.com", "password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)
	admin := accessToken(t, env)

	posting := map[string]any{
		"title":        "Backend Engineer",
		"company_name": "Acme",
		"location":     "Jakarta",
		"job_type":     "full-time",
		"job_category": "engineering",
		"skills":       []string{"Python", "AWS", "Django"},
	}

	status, _ = s.json(http.MethodPost, "/api/v1/jobs", seeker, posting)
	require.Equal(t, fiber.StatusForbidden, status)

	status, env = s.json(http.MethodPost, "/api/v1/jobs", recruiter, posting)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	created := decode[struct {
		ID       string `json:"id"`
		Approval string `json:"approval_status"`
	}](t, env)
	assert.Equal(t, "pending", created.Approval)
	jobPath := "/api/v1/jobs/" + created.ID

	status, _ = s.json(http.MethodGet, jobPath, "", nil)
	require.Equal(t, fiber.StatusNotFound, status)

	status, _ = s.json(http.MethodPost, "/api/v1/admin/jobs/"+created.ID+"/approve", recruiter, nil)
	require.Equal(t, fiber.StatusForbidden, status)

	status, _ = s.json(http.MethodPost, "/api/v1/admin/jobs/"+created.ID+"/approve", admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = s.json(http.MethodPost, "/api/v1/admin/jobs/"+created.ID+"/approve", admin, nil)
	require.Equal(t, fiber.StatusConflict, status)

	status, env = s.json(http.MethodGet, "/api/v1/jobs?keyword=backend", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	status, env = s.json(http.MethodGet, "/api/v1/notifications", recruiter, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	// Nothing on file yet.
	status, env = s.json(http.MethodPost, jobPath+"/apply", seeker, map[string]string{"cover_letter": "Hello"})
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "Resume is required", env.Message)

	status, _ = s.json(http.MethodPut, "/api/v1/users/me", seeker, map[string]string{"cover_letter": "Dear hiring team"})
	require.Equal(t, fiber.StatusOK, status)

	status, env = s.multipart(jobPath+"/apply", seeker, nil, "cv.txt", "Five years of Python on AWS.")
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	applied := decode[struct {
		ID      string   `json:"id"`
		Matched []string `json:"matched_skills"`
		Missing []string `json:"missing_skills"`
	}](t, env)
	assert.Equal(t, []string{"python", "aws"}, applied.Matched)
	assert.Equal(t, []string{"django"}, applied.Missing)

	status, _ = s.multipart(jobPath+"/apply", seeker, nil, "cv.txt", "Python")
	require.Equal(t, fiber.StatusConflict, status)

	status, env = s.json(http.MethodGet, jobPath+"/applicants", recruiter, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env), 1)

	status, _ = s.json(http.MethodPatch, "/api/v1/applications/"+applied.ID+"/respond", recruiter, map[string]string{
		"status": "interview", "message": "See you Monday",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, env = s.json(http.MethodGet, "/api/v1/applications/me", seeker, nil)
	require.Equal(t, fiber.StatusOK, status)
	mine := decode[[]struct {
		Status string `json:"status"`
	}](t, env)
	require.Len(t, mine, 1)
	assert.Equal(t, "interview", mine[0].Status)

	status, _ = s.multipart("/api/v1/users/me/resume", seeker, nil, "cv.txt", "Python and Go")
	require.Equal(t, fiber.StatusOK, status)

	// No provider is configured, so generation fails upstream.
	status, env = s.json(http.MethodPost, "/api/v1/ai/cover-letter", seeker, map[string]string{"job_id": created.ID})
	require.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "Text generation service unavailable", env.Message)
}
