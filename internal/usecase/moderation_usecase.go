package usecase

import (
	"context"
	"errors"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/moderation"
	"jobboard/internal/domain/notification"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ModerationUsecase interface {
	ListPending(ctx context.Context, limit, offset int) ([]job.Posting, error)
	Approve(ctx context.Context, jobID uuid.UUID) (job.Posting, error)
	Reject(ctx context.Context, jobID uuid.UUID) error
}

type Moderation struct {
	jobs   repository.JobRepository
	store  repository.ModerationRepository
	events EventEmitter
	cache  ListCache
	logger *zap.Logger
}

func NewModerationUsecase(jobs repository.JobRepository, store repository.ModerationRepository, events EventEmitter, cache ListCache, log *zap.Logger) *Moderation {
	return &Moderation{
		jobs:   jobs,
		store:  store,
		events: emitterOrNop(events),
		cache:  cache,
		logger: logger.OrNop(log),
	}
}

func (u *Moderation) ListPending(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	if limit < 0 || limit > 50 || offset < 0 {
		return nil, ErrInvalidInput
	}
	items, err := u.jobs.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// Approve publishes a pending job. The approval, the recruiter's posted
// counter and the stored notification commit together; the live event is
// sent afterwards and may reach nobody.
func (u *Moderation) Approve(ctx context.Context, jobID uuid.UUID) (job.Posting, error) {
	return u.moderate(ctx, jobID, moderation.ActionApprove)
}

// Reject deletes a pending job. Approved jobs cannot be rejected.
func (u *Moderation) Reject(ctx context.Context, jobID uuid.UUID) error {
	_, err := u.moderate(ctx, jobID, moderation.ActionReject)
	return err
}

func (u *Moderation) moderate(ctx context.Context, jobID uuid.UUID, action moderation.Action) (job.Posting, error) {
	p, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, ErrInternal
	}
	effect, err := moderation.Decide(p.Approval, action)
	if err != nil {
		if errors.Is(err, moderation.ErrAlreadyApproved) {
			return job.Posting{}, ErrJobAlreadyApproved
		}
		u.logger.Error("moderation decision failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	switch effect {
	case moderation.EffectApprove:
		return u.approve(ctx, p)
	case moderation.EffectDelete:
		return job.Posting{}, u.delete(ctx, p)
	}
	u.logger.Error("unhandled moderation effect", zap.String("job_id", jobID.String()), zap.Int("effect", int(effect)))
	return job.Posting{}, ErrInternal
}

func (u *Moderation) approve(ctx context.Context, p job.Posting) (job.Posting, error) {
	n := notification.Notification{
		ID:          uuid.New(),
		UserID:      p.RecruiterID,
		JobID:       p.ID,
		Title:       p.Title,
		CompanyName: p.CompanyName,
		Location:    p.Location,
	}
	approved, err := u.store.Approve(ctx, p.ID, n)
	if err != nil {
		return job.Posting{}, mapModerationStoreError(err)
	}

	invalidateJobsList(ctx, u.cache, u.logger)

	delivered := u.events.Emit(approved.RecruiterID, notification.EventJobApproved, map[string]any{
		"notification_id": n.ID,
		"job_id":          approved.ID,
		"title":           approved.Title,
		"company_name":    approved.CompanyName,
		"location":        approved.Location,
	})
	u.logger.Info("job approved",
		zap.String("job_id", approved.ID.String()),
		zap.String("recruiter_id", approved.RecruiterID.String()),
		zap.Bool("live_delivery", delivered),
	)
	return approved, nil
}

func (u *Moderation) delete(ctx context.Context, p job.Posting) error {
	if err := u.store.DeletePending(ctx, p.ID); err != nil {
		return mapModerationStoreError(err)
	}
	u.logger.Info("job rejected", zap.String("job_id", p.ID.String()))
	return nil
}

// Concurrent moderators can race between the read and the write; the store's
// conditional update reports the loser as not pending.
func mapModerationStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrJobNotFound):
		return ErrJobNotFound
	case errors.Is(err, repository.ErrJobNotPending):
		return ErrJobAlreadyApproved
	default:
		return ErrInternal
	}
}
