package memory

import (
	"context"
	"sort"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type SavedJobs struct {
	s *Store
}

func (r *SavedJobs) Save(_ context.Context, userID, jobID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[jobID]; !ok {
		return repository.ErrJobNotFound
	}
	m := r.s.saved[userID]
	if m == nil {
		m = make(map[uuid.UUID]time.Time)
		r.s.saved[userID] = m
	}
	if _, ok := m[jobID]; !ok {
		m[jobID] = r.s.tickLocked()
	}
	return nil
}

func (r *SavedJobs) Unsave(_ context.Context, userID, jobID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.saved[userID], jobID)
	return nil
}

func (r *SavedJobs) ListByUser(_ context.Context, userID uuid.UUID) ([]job.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type entry struct {
		p  job.Posting
		at time.Time
	}
	entries := make([]entry, 0, len(r.s.saved[userID]))
	for jobID, at := range r.s.saved[userID] {
		p, ok := r.s.jobs[jobID]
		if !ok || !p.IsApproved() {
			continue
		}
		entries = append(entries, entry{p: clonePosting(p), at: at})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].at.After(entries[j].at) })

	out := make([]job.Posting, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.p)
	}
	return out, nil
}
