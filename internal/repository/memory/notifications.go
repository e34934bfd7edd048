package memory

import (
	"context"
	"sort"
	"time"

	"jobboard/internal/domain/notification"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type Notifications struct {
	s *Store
}

func (r *Notifications) ListByUser(_ context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]notification.Notification, 0)
	for _, n := range r.s.notifs {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Notifications) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifs[id]
	if !ok || n.UserID != userID {
		return repository.ErrNotificationNotFound
	}
	n.IsRead = true
	r.s.notifs[id] = n
	return nil
}

func (r *Notifications) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifs[id]
	if !ok || n.UserID != userID {
		return repository.ErrNotificationNotFound
	}
	delete(r.s.notifs, id)
	return nil
}

func (r *Notifications) DeleteReadOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, it := range r.s.notifs {
		if it.IsRead && it.CreatedAt.Before(cutoff) {
			delete(r.s.notifs, id)
			n++
		}
	}
	return n, nil
}
