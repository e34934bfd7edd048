package memory

import (
	"context"
	"fmt"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type Moderation struct {
	s *Store
}

func (r *Moderation) Approve(_ context.Context, jobID uuid.UUID, n notification.Notification) (job.Posting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.jobs[jobID]
	if !ok {
		return job.Posting{}, repository.ErrJobNotFound
	}
	if p.Approval != job.ApprovalPending {
		return job.Posting{}, repository.ErrJobNotPending
	}
	recruiter, ok := r.s.users[p.RecruiterID]
	if !ok {
		return job.Posting{}, fmt.Errorf("recruiter %s missing for job %s", p.RecruiterID, jobID)
	}

	now := r.s.tickLocked()
	p.Approval = job.ApprovalApproved
	p.UpdatedAt = now
	r.s.jobs[jobID] = p

	recruiter.JobsPosted++
	recruiter.UpdatedAt = now
	r.s.users[recruiter.ID] = recruiter

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.UserID = p.RecruiterID
	n.JobID = p.ID
	n.IsRead = false
	n.CreatedAt = now
	r.s.notifs[n.ID] = n

	return clonePosting(p), nil
}

func (r *Moderation) DeletePending(_ context.Context, jobID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.jobs[jobID]
	if !ok {
		return repository.ErrJobNotFound
	}
	if p.Approval != job.ApprovalPending {
		return repository.ErrJobNotPending
	}
	r.s.deleteJobLocked(jobID)
	return nil
}
