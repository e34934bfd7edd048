package usecase

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
	"jobboard/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *memory.Store
	uploadDir string
	recruiter user.User
	seeker    user.User
	admin     user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memory.NewStore(), uploadDir: t.TempDir()}
	f.recruiter = f.addUser(t, "recruiter@example.com", user.RoleRecruiter)
	f.seeker = f.addUser(t, "seeker@example.com", user.RoleJobSeeker)
	f.admin = f.addUser(t, "admin@example.com", user.RoleAdmin)
	return f
}

func (f *fixture) addUser(t *testing.T, email string, role user.Role) user.User {
	t.Helper()
	u := user.User{ID: uuid.New(), Email: email, FullName: strings.Split(email, "@")[0], Role: role}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) addJob(t *testing.T, approval job.ApprovalStatus, status job.OpenStatus, skills ...string) job.Posting {
	t.Helper()
	p, err := f.store.Jobs().Create(context.Background(), job.Posting{
		ID:          uuid.New(),
		RecruiterID: f.recruiter.ID,
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		Location:    "Jakarta",
		Type:        job.TypeFullTime,
		Category:    job.CategoryEngineering,
		Skills:      skills,
		Approval:    approval,
		Status:      status,
	})
	require.NoError(t, err)
	return p
}

type emitted struct {
	userID  uuid.UUID
	event   string
	payload any
}

type recordingEmitter struct {
	mu     sync.Mutex
	live   map[uuid.UUID]bool
	events []emitted
}

func (e *recordingEmitter) Emit(userID uuid.UUID, event string, payload any) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, emitted{userID: userID, event: event, payload: payload})
	return e.live[userID]
}

func (e *recordingEmitter) all() []emitted {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]emitted(nil), e.events...)
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return m.err
}

func (m *fakeMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

// mapCache stores values as-is; GetJSON copies them back through a type switch
// on the one type the usecases cache.
type mapCache struct {
	mu      sync.Mutex
	items   map[string][]job.Posting
	deletes []string
}

func newMapCache() *mapCache { return &mapCache{items: make(map[string][]job.Posting)} }

func (c *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	if !ok {
		return false, nil
	}
	dst, ok := out.(*[]job.Posting)
	if !ok {
		return false, errors.New("unexpected cache target")
	}
	*dst = append([]job.Posting(nil), v...)
	return true, nil
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := value.([]job.Posting)
	if !ok {
		return errors.New("unexpected cache value")
	}
	c.items[key] = append([]job.Posting(nil), v...)
	return nil
}

func (c *mapCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *mapCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func staticText(text string) TextExtractor {
	return func(string) (string, error) { return text, nil }
}

// countFiles returns the number of regular files below dir.
func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}
