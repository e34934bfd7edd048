package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/skill"
	"jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/resumetext"
	"jobboard/internal/pkg/textgen"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type AIOptions struct {
	Timeout       time.Duration
	RatePerMinute int
}

type ResumeAnalysis struct {
	Analysis string        `json:"analysis"`
	JobID    *uuid.UUID    `json:"job_id,omitempty"`
	Gap      *matching.Gap `json:"skill_gap,omitempty"`
}

type AIUsecase interface {
	CoverLetter(ctx context.Context, userID, jobID uuid.UUID) (string, error)
	AnalyzeResume(ctx context.Context, userID uuid.UUID, jobID *uuid.UUID) (ResumeAnalysis, error)
}

type AI struct {
	gen     textgen.Generator
	users   repository.UserRepository
	jobs    repository.JobRepository
	vocab   *skill.Vocabulary
	extract TextExtractor
	opts    AIOptions
	logger  *zap.Logger

	now       func() time.Time
	mu        sync.Mutex
	limiters  map[uuid.UUID]*userLimiter
	lastSweep time.Time
}

type userLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// limiterIdle is how long a user's limiter may sit unused before it is
// dropped. A bucket refills completely within a minute, so an evicted
// limiter is indistinguishable from a new one.
const limiterIdle = 5 * time.Minute

func NewAIUsecase(
	gen textgen.Generator,
	users repository.UserRepository,
	jobs repository.JobRepository,
	vocab *skill.Vocabulary,
	extract TextExtractor,
	opts AIOptions,
	log *zap.Logger,
) *AI {
	if gen == nil {
		gen = textgen.Disabled{}
	}
	if vocab == nil {
		vocab = skill.DefaultVocabulary()
	}
	if extract == nil {
		extract = resumetext.Extract
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.RatePerMinute <= 0 {
		opts.RatePerMinute = 6
	}
	return &AI{
		gen:      gen,
		users:    users,
		jobs:     jobs,
		vocab:    vocab,
		extract:  extract,
		opts:     opts,
		logger:   logger.OrNop(log),
		now:      time.Now,
		limiters: make(map[uuid.UUID]*userLimiter),
	}
}

// CoverLetter drafts a letter from the user's stored resume for a visible
// job. The draft is not saved.
func (u *AI) CoverLetter(ctx context.Context, userID, jobID uuid.UUID) (string, error) {
	p, err := u.publicJob(ctx, jobID)
	if err != nil {
		return "", err
	}
	resume, err := u.resumeText(ctx, userID)
	if err != nil {
		return "", err
	}
	if !u.allow(userID) {
		return "", ErrRateLimited
	}
	return u.generate(ctx, "cover_letter", textgen.CoverLetterPrompt(resume, p.Description()))
}

// AnalyzeResume stores the generated analysis on the profile, where
// application submission later reads skills from it. With a job the result
// also carries the skill gap against that job.
func (u *AI) AnalyzeResume(ctx context.Context, userID uuid.UUID, jobID *uuid.UUID) (ResumeAnalysis, error) {
	var (
		p      job.Posting
		target string
	)
	if jobID != nil {
		var err error
		if p, err = u.publicJob(ctx, *jobID); err != nil {
			return ResumeAnalysis{}, err
		}
		target = p.Description()
	}

	resume, err := u.resumeText(ctx, userID)
	if err != nil {
		return ResumeAnalysis{}, err
	}
	if !u.allow(userID) {
		return ResumeAnalysis{}, ErrRateLimited
	}

	analysis, err := u.generate(ctx, "resume_analysis", textgen.ResumeAnalysisPrompt(resume, target))
	if err != nil {
		return ResumeAnalysis{}, err
	}

	if err := u.users.SetResumeAnalysis(ctx, userID, analysis); err != nil {
		return ResumeAnalysis{}, mapUserError(err)
	}

	out := ResumeAnalysis{Analysis: analysis}
	if jobID != nil {
		gap := skillGap(u.vocab, p, analysis)
		out.JobID = jobID
		out.Gap = &gap
	}
	return out, nil
}

func (u *AI) generate(ctx context.Context, kind, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.opts.Timeout)
	defer cancel()

	start := time.Now()
	out, err := u.gen.Generate(ctx, prompt)
	if err != nil {
		u.logger.Warn("text generation failed",
			zap.String("kind", kind),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return "", ErrExternalService
	}
	u.logger.Debug("text generated",
		zap.String("kind", kind),
		zap.Duration("latency", time.Since(start)),
		zap.String("output", logger.Truncate(out, 120)),
	)
	return out, nil
}

func (u *AI) publicJob(ctx context.Context, jobID uuid.UUID) (job.Posting, error) {
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

func (u *AI) resumeText(ctx context.Context, userID uuid.UUID) (string, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return "", mapUserError(err)
	}
	if strings.TrimSpace(usr.ResumePath) == "" {
		return "", ErrResumeRequired
	}
	text, err := u.extract(usr.ResumePath)
	if err != nil {
		if errors.Is(err, resumetext.ErrUnsupportedFormat) || errors.Is(err, resumetext.ErrTooLarge) {
			return "", ErrUnsupportedResume
		}
		u.logger.Error("resume text extraction failed", zap.String("user_id", userID.String()), zap.Error(err))
		return "", ErrInternal
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrUnsupportedResume
	}
	return text, nil
}

func (u *AI) allow(userID uuid.UUID) bool {
	now := u.now()
	u.mu.Lock()
	if now.Sub(u.lastSweep) >= limiterIdle {
		for id, e := range u.limiters {
			if now.Sub(e.seen) >= limiterIdle {
				delete(u.limiters, id)
			}
		}
		u.lastSweep = now
	}
	e, ok := u.limiters[userID]
	if !ok {
		e = &userLimiter{
			lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(u.opts.RatePerMinute)), u.opts.RatePerMinute),
		}
		u.limiters[userID] = e
	}
	e.seen = now
	u.mu.Unlock()
	return e.lim.AllowN(now, 1)
}
