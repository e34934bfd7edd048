package usecase

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type JobInput struct {
	Title            string
	Salary           string
	Location         string
	CompanyName      string
	Type             string
	Benefits         string
	Experience       string
	Responsibilities string
	Skills           []string
	Qualification    string
	Category         string
	ImageURL         string
}

type JobListParams struct {
	Keyword  string
	Location string
	Type     string
	Category string
	Skill    string
	Limit    int
	Offset   int
}

type JobUsecase interface {
	Create(ctx context.Context, recruiterID uuid.UUID, in JobInput) (job.Posting, error)
	Update(ctx context.Context, recruiterID, jobID uuid.UUID, in JobInput) (job.Posting, error)
	SetStatus(ctx context.Context, recruiterID, jobID uuid.UUID, status string) error
	Delete(ctx context.Context, recruiterID, jobID uuid.UUID) error
	ListMine(ctx context.Context, recruiterID uuid.UUID) ([]job.Posting, error)

	ListPublic(ctx context.Context, params JobListParams) ([]job.Posting, error)
	GetPublic(ctx context.Context, jobID uuid.UUID) (job.Posting, error)

	Save(ctx context.Context, userID, jobID uuid.UUID) error
	Unsave(ctx context.Context, userID, jobID uuid.UUID) error
	ListSaved(ctx context.Context, userID uuid.UUID) ([]job.Posting, error)
}

type Jobs struct {
	jobs   repository.JobRepository
	saved  repository.SavedJobRepository
	cache  ListCache
	logger *zap.Logger
}

func NewJobUsecase(jobs repository.JobRepository, saved repository.SavedJobRepository, cache ListCache, log *zap.Logger) *Jobs {
	return &Jobs{jobs: jobs, saved: saved, cache: cache, logger: logger.OrNop(log)}
}

func (u *Jobs) Create(ctx context.Context, recruiterID uuid.UUID, in JobInput) (job.Posting, error) {
	p, err := postingFromInput(in)
	if err != nil {
		return job.Posting{}, err
	}
	p.ID = uuid.New()
	p.RecruiterID = recruiterID
	p.Approval = job.ApprovalPending
	p.Status = job.StatusOpen

	created, err := u.jobs.Create(ctx, p)
	if err != nil {
		return job.Posting{}, ErrInternal
	}
	u.logger.Info("job created, awaiting approval",
		zap.String("job_id", created.ID.String()),
		zap.String("recruiter_id", recruiterID.String()),
	)
	return created, nil
}

// Update replaces the editable fields; approval and open status stay as they
// are. Approval is terminal, so an approved posting stays live through edits
// and only the cached listing is dropped.
func (u *Jobs) Update(ctx context.Context, recruiterID, jobID uuid.UUID, in JobInput) (job.Posting, error) {
	if _, err := u.owned(ctx, recruiterID, jobID); err != nil {
		return job.Posting{}, err
	}
	p, err := postingFromInput(in)
	if err != nil {
		return job.Posting{}, err
	}
	p.ID = jobID
	p.RecruiterID = recruiterID

	updated, err := u.jobs.Update(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, ErrInternal
	}
	u.invalidateList(ctx)
	return updated, nil
}

func (u *Jobs) SetStatus(ctx context.Context, recruiterID, jobID uuid.UUID, status string) error {
	st, err := job.ParseOpenStatus(strings.ToLower(strings.TrimSpace(status)))
	if err != nil {
		return ErrInvalidInput
	}
	if _, err := u.owned(ctx, recruiterID, jobID); err != nil {
		return err
	}
	if err := u.jobs.SetStatus(ctx, jobID, recruiterID, st); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	u.invalidateList(ctx)
	return nil
}

func (u *Jobs) Delete(ctx context.Context, recruiterID, jobID uuid.UUID) error {
	if _, err := u.owned(ctx, recruiterID, jobID); err != nil {
		return err
	}
	if err := u.jobs.Delete(ctx, jobID, recruiterID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	u.invalidateList(ctx)
	return nil
}

func (u *Jobs) ListMine(ctx context.Context, recruiterID uuid.UUID) ([]job.Posting, error) {
	items, err := u.jobs.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Jobs) ListPublic(ctx context.Context, params JobListParams) ([]job.Posting, error) {
	limit := params.Limit
	if limit == 0 {
		limit = 20
	}
	if limit < 0 || limit > 50 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}
	params.Limit = limit

	f := repository.JobFilter{
		Keyword:  strings.TrimSpace(params.Keyword),
		Location: strings.TrimSpace(params.Location),
		Skill:    strings.TrimSpace(params.Skill),
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if t := strings.TrimSpace(params.Type); t != "" {
		jt, err := job.ParseType(strings.ToLower(t))
		if err != nil {
			return nil, ErrInvalidInput
		}
		f.Type = jt
	}
	if c := strings.TrimSpace(params.Category); c != "" {
		jc, err := job.ParseCategory(strings.ToLower(c))
		if err != nil {
			return nil, ErrInvalidInput
		}
		f.Category = jc
	}

	key := JobsListCacheKey(params)
	if u.cache != nil {
		var cached []job.Posting
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Debug("jobs list cache read failed", zap.String("key", key), zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	items, err := u.jobs.ListApproved(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, items, 0); err != nil {
			u.logger.Debug("jobs list cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

func (u *Jobs) GetPublic(ctx context.Context, jobID uuid.UUID) (job.Posting, error) {
	p, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, ErrInternal
	}
	if !p.IsApproved() {
		return job.Posting{}, ErrJobNotFound
	}
	return p, nil
}

func (u *Jobs) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	if _, err := u.GetPublic(ctx, jobID); err != nil {
		return err
	}
	if err := u.saved.Save(ctx, userID, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Jobs) Unsave(ctx context.Context, userID, jobID uuid.UUID) error {
	if err := u.saved.Unsave(ctx, userID, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Jobs) ListSaved(ctx context.Context, userID uuid.UUID) ([]job.Posting, error) {
	items, err := u.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Jobs) owned(ctx context.Context, recruiterID, jobID uuid.UUID) (job.Posting, error) {
	p, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, ErrInternal
	}
	if p.RecruiterID != recruiterID {
		return job.Posting{}, ErrNotJobOwner
	}
	return p, nil
}

func (u *Jobs) invalidateList(ctx context.Context) {
	invalidateJobsList(ctx, u.cache, u.logger)
}

func invalidateJobsList(ctx context.Context, cache ListCache, log *zap.Logger) {
	if cache == nil {
		return
	}
	if err := cache.DeleteByPattern(ctx, jobsListCachePattern); err != nil {
		log.Warn("jobs list cache invalidation failed", zap.Error(err))
	}
}

func postingFromInput(in JobInput) (job.Posting, error) {
	p := job.Posting{
		Title:            strings.TrimSpace(in.Title),
		Salary:           strings.TrimSpace(in.Salary),
		Location:         strings.TrimSpace(in.Location),
		CompanyName:      strings.TrimSpace(in.CompanyName),
		Benefits:         strings.TrimSpace(in.Benefits),
		Experience:       strings.TrimSpace(in.Experience),
		Responsibilities: strings.TrimSpace(in.Responsibilities),
		Qualification:    strings.TrimSpace(in.Qualification),
		ImageURL:         strings.TrimSpace(in.ImageURL),
	}
	if p.Title == "" || p.CompanyName == "" || p.Location == "" {
		return job.Posting{}, ErrInvalidInput
	}

	jt, err := job.ParseType(strings.ToLower(strings.TrimSpace(in.Type)))
	if err != nil {
		return job.Posting{}, ErrInvalidInput
	}
	p.Type = jt

	category := strings.ToLower(strings.TrimSpace(in.Category))
	if category == "" {
		category = string(job.CategoryOther)
	}
	jc, err := job.ParseCategory(category)
	if err != nil {
		return job.Posting{}, ErrInvalidInput
	}
	p.Category = jc

	p.Skills = make([]string, 0, len(in.Skills))
	for _, s := range in.Skills {
		if s = strings.TrimSpace(s); s != "" {
			p.Skills = append(p.Skills, s)
		}
	}
	return p, nil
}
