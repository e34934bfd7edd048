// Package memory provides in-process implementations of the repository
// interfaces. They mirror the Postgres constraints (unique applications per
// job and user, cascading deletes) and back tests and the dev server.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/user"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type appKey struct {
	jobID  uuid.UUID
	userID uuid.UUID
}

type Store struct {
	mu   sync.RWMutex
	now  func() time.Time
	last time.Time

	users    map[uuid.UUID]user.User
	emails   map[string]uuid.UUID
	jobs     map[uuid.UUID]job.Posting
	apps     map[uuid.UUID]application.Applicant
	appIndex map[appKey]uuid.UUID
	notifs   map[uuid.UUID]notification.Notification
	saved    map[uuid.UUID]map[uuid.UUID]time.Time
}

func NewStore() *Store {
	return &Store{
		now:      time.Now,
		users:    make(map[uuid.UUID]user.User),
		emails:   make(map[string]uuid.UUID),
		jobs:     make(map[uuid.UUID]job.Posting),
		apps:     make(map[uuid.UUID]application.Applicant),
		appIndex: make(map[appKey]uuid.UUID),
		notifs:   make(map[uuid.UUID]notification.Notification),
		saved:    make(map[uuid.UUID]map[uuid.UUID]time.Time),
	}
}

// SetClock overrides the time source. Call before use.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Jobs() *Jobs                   { return &Jobs{s: s} }
func (s *Store) Moderation() *Moderation       { return &Moderation{s: s} }
func (s *Store) Applications() *Applications   { return &Applications{s: s} }
func (s *Store) Notifications() *Notifications { return &Notifications{s: s} }
func (s *Store) SavedJobs() *SavedJobs         { return &SavedJobs{s: s} }
func (s *Store) Users() *Users                 { return &Users{s: s} }

var (
	_ repository.JobRepository          = (*Jobs)(nil)
	_ repository.ModerationRepository   = (*Moderation)(nil)
	_ repository.ApplicationRepository  = (*Applications)(nil)
	_ repository.NotificationRepository = (*Notifications)(nil)
	_ repository.SavedJobRepository     = (*SavedJobs)(nil)
	_ repository.UserRepository         = (*Users)(nil)
)

// tickLocked returns a strictly increasing UTC timestamp so that records
// created in the same instant still sort deterministically.
func (s *Store) tickLocked() time.Time {
	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}
	s.last = t
	return t
}

// deleteJobLocked removes a job and everything that references it.
func (s *Store) deleteJobLocked(id uuid.UUID) {
	delete(s.jobs, id)
	for aid, a := range s.apps {
		if a.JobID == id {
			delete(s.apps, aid)
			delete(s.appIndex, appKey{jobID: a.JobID, userID: a.UserID})
		}
	}
	for _, m := range s.saved {
		delete(m, id)
	}
}

func clonePosting(p job.Posting) job.Posting {
	p.Skills = append([]string{}, p.Skills...)
	return p
}

func cloneApplicant(a application.Applicant) application.Applicant {
	a.MatchedSkills = append([]string{}, a.MatchedSkills...)
	a.MissingSkills = append([]string{}, a.MissingSkills...)
	if a.RespondedAt != nil {
		t := *a.RespondedAt
		a.RespondedAt = &t
	}
	return a
}

func sortNewestFirst(items []job.Posting) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
