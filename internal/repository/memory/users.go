package memory

import (
	"context"

	"jobboard/internal/domain/user"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type Users struct {
	s *Store
}

func (r *Users) Create(_ context.Context, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.emails[u.Email]; taken {
		return repository.ErrEmailTaken
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := r.s.tickLocked()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.ID] = u
	r.s.emails[u.Email] = u.ID
	return nil
}

func (r *Users) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.s.users[id], nil
}

func (r *Users) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.emails[email]
	return ok, nil
}

func (r *Users) UpdateProfile(_ context.Context, id uuid.UUID, p user.Profile) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.CoverLetter != nil {
		u.CoverLetter = *p.CoverLetter
	}
	u.UpdatedAt = r.s.now().UTC()
	r.s.users[id] = u
	return u, nil
}

func (r *Users) SetResumePath(_ context.Context, id uuid.UUID, path string) error {
	return r.update(id, func(u *user.User) { u.ResumePath = path })
}

func (r *Users) SetResumeAnalysis(_ context.Context, id uuid.UUID, analysis string) error {
	return r.update(id, func(u *user.User) { u.ResumeAnalysis = analysis })
}

func (r *Users) update(id uuid.UUID, fn func(*user.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = r.s.now().UTC()
	r.s.users[id] = u
	return nil
}
