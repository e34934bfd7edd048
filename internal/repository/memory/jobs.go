package memory

import (
	"context"
	"strings"

	"jobboard/internal/domain/job"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type Jobs struct {
	s *Store
}

func (r *Jobs) Create(_ context.Context, p job.Posting) (job.Posting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := r.s.tickLocked()
	p.CreatedAt = now
	p.UpdatedAt = now
	p = clonePosting(p)
	r.s.jobs[p.ID] = p
	return clonePosting(p), nil
}

func (r *Jobs) GetByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.jobs[id]
	if !ok {
		return job.Posting{}, repository.ErrJobNotFound
	}
	return clonePosting(p), nil
}

func (r *Jobs) Update(_ context.Context, p job.Posting) (job.Posting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.jobs[p.ID]
	if !ok || cur.RecruiterID != p.RecruiterID {
		return job.Posting{}, repository.ErrJobNotFound
	}
	cur.Title = p.Title
	cur.Salary = p.Salary
	cur.Location = p.Location
	cur.CompanyName = p.CompanyName
	cur.Type = p.Type
	cur.Benefits = p.Benefits
	cur.Experience = p.Experience
	cur.Responsibilities = p.Responsibilities
	cur.Skills = append([]string{}, p.Skills...)
	cur.Qualification = p.Qualification
	cur.Category = p.Category
	cur.ImageURL = p.ImageURL
	cur.UpdatedAt = r.s.now().UTC()
	r.s.jobs[p.ID] = cur
	return clonePosting(cur), nil
}

func (r *Jobs) SetStatus(_ context.Context, id, recruiterID uuid.UUID, status job.OpenStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.jobs[id]
	if !ok || cur.RecruiterID != recruiterID {
		return repository.ErrJobNotFound
	}
	cur.Status = status
	cur.UpdatedAt = r.s.now().UTC()
	r.s.jobs[id] = cur
	return nil
}

func (r *Jobs) Delete(_ context.Context, id, recruiterID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.jobs[id]
	if !ok || cur.RecruiterID != recruiterID {
		return repository.ErrJobNotFound
	}
	r.s.deleteJobLocked(id)
	return nil
}

func (r *Jobs) ListApproved(_ context.Context, f repository.JobFilter) ([]job.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	kw := strings.TrimSpace(f.Keyword)
	loc := strings.TrimSpace(f.Location)
	sk := strings.TrimSpace(f.Skill)

	out := make([]job.Posting, 0)
	for _, p := range r.s.jobs {
		if !p.IsApproved() {
			continue
		}
		if kw != "" && !containsFold(p.Title, kw) && !containsFold(p.CompanyName, kw) {
			continue
		}
		if loc != "" && !containsFold(p.Location, loc) {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if sk != "" && !hasSkill(p.Skills, sk) {
			continue
		}
		out = append(out, clonePosting(p))
	}
	sortNewestFirst(out)
	return page(out, f.Limit, f.Offset), nil
}

func (r *Jobs) ListByRecruiter(_ context.Context, recruiterID uuid.UUID) ([]job.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]job.Posting, 0)
	for _, p := range r.s.jobs {
		if p.RecruiterID == recruiterID {
			out = append(out, clonePosting(p))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *Jobs) ListPending(_ context.Context, limit, offset int) ([]job.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]job.Posting, 0)
	for _, p := range r.s.jobs {
		if p.Approval == job.ApprovalPending {
			out = append(out, clonePosting(p))
		}
	}
	sortNewestFirst(out)
	// oldest first, as the review queue
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return page(out, limit, offset), nil
}

func hasSkill(skills []string, want string) bool {
	for _, s := range skills {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}
