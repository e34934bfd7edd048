package memory

import (
	"context"
	"sort"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type Applications struct {
	s *Store
}

func (r *Applications) Exists(_ context.Context, jobID, userID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.appIndex[appKey{jobID: jobID, userID: userID}]
	return ok, nil
}

func (r *Applications) Create(_ context.Context, a application.Applicant) (application.Applicant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := appKey{jobID: a.JobID, userID: a.UserID}
	if _, taken := r.s.appIndex[key]; taken {
		return application.Applicant{}, repository.ErrAlreadyApplied
	}
	if _, ok := r.s.jobs[a.JobID]; !ok {
		return application.Applicant{}, repository.ErrJobNotFound
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}
	a.AppliedAt = r.s.tickLocked()
	a = cloneApplicant(a)
	r.s.apps[a.ID] = a
	r.s.appIndex[key] = a.ID
	return cloneApplicant(a), nil
}

func (r *Applications) GetByID(_ context.Context, id uuid.UUID) (application.Applicant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.apps[id]
	if !ok {
		return application.Applicant{}, repository.ErrApplicationNotFound
	}
	return cloneApplicant(a), nil
}

func (r *Applications) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Applicant, error) {
	return r.list(func(a application.Applicant) bool { return a.JobID == jobID }, false), nil
}

func (r *Applications) ListByUser(_ context.Context, userID uuid.UUID) ([]application.Applicant, error) {
	return r.list(func(a application.Applicant) bool { return a.UserID == userID }, true), nil
}

func (r *Applications) Respond(_ context.Context, id uuid.UUID, from, to application.Status, message string, at time.Time) (application.Applicant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.apps[id]
	if !ok {
		return application.Applicant{}, repository.ErrApplicationNotFound
	}
	if a.Status != from {
		return application.Applicant{}, repository.ErrStatusChanged
	}
	t := at.UTC()
	a.Status = to
	a.Response = message
	a.RespondedAt = &t
	r.s.apps[id] = a
	return cloneApplicant(a), nil
}

// Count returns the number of stored applications.
func (r *Applications) Count() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.apps)
}

func (r *Applications) list(keep func(application.Applicant) bool, newestFirst bool) []application.Applicant {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]application.Applicant, 0)
	for _, a := range r.s.apps {
		if keep(a) {
			out = append(out, cloneApplicant(a))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if newestFirst {
			return out[i].AppliedAt.After(out[j].AppliedAt)
		}
		return out[i].AppliedAt.Before(out[j].AppliedAt)
	})
	return out
}
