package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/resumetext"
	"jobboard/internal/pkg/textgen"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAI_AnalyzeResumeStoresAnalysisAndGap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.addJob(t, job.ApprovalApproved, job.StatusOpen, "Python", "Django", "AWS")
	require.NoError(t, f.store.Users().SetResumePath(ctx, f.seeker.ID, "cv.txt"))

	var prompt string
	gen := textgen.Func(func(_ context.Context, in string) (string, error) {
		prompt = in
		return "Experienced Python developer familiar with AWS", nil
	})
	uc := NewAIUsecase(gen, f.store.Users(), f.store.Jobs(), nil, staticText("resume body"), AIOptions{}, nil)

	jobID := p.ID
	out, err := uc.AnalyzeResume(ctx, f.seeker.ID, &jobID)
	require.NoError(t, err)
	assert.Contains(t, prompt, "resume body")
	assert.Contains(t, prompt, "Title: Backend Engineer")
	require.NotNil(t, out.Gap)
	assert.Equal(t, []string{"python", "aws"}, out.Gap.Matched)
	assert.Equal(t, []string{"django"}, out.Gap.Missing)

	stored, err := f.store.Users().GetByID(ctx, f.seeker.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Analysis, stored.ResumeAnalysis)
}

func TestAI_GeneratorFailureIsExternal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.addJob(t, job.ApprovalApproved, job.StatusOpen)
	require.NoError(t, f.store.Users().SetResumePath(ctx, f.seeker.ID, "cv.txt"))

	gen := textgen.Func(func(context.Context, string) (string, error) { return "", errors.New("quota exceeded") })
	uc := NewAIUsecase(gen, f.store.Users(), f.store.Jobs(), nil, staticText("resume"), AIOptions{}, nil)

	_, err := uc.CoverLetter(ctx, f.seeker.ID, p.ID)
	assert.ErrorIs(t, err, ErrExternalService)
}

func TestAI_Timeout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.addJob(t, job.ApprovalApproved, job.StatusOpen)
	require.NoError(t, f.store.Users().SetResumePath(ctx, f.seeker.ID, "cv.txt"))

	gen := textgen.Func(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	uc := NewAIUsecase(gen, f.store.Users(), f.store.Jobs(), nil, staticText("resume"), AIOptions{Timeout: 10 * time.Millisecond}, nil)

	_, err := uc.CoverLetter(ctx, f.seeker.ID, p.ID)
	assert.ErrorIs(t, err, ErrExternalService)
}

func TestAI_Preconditions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.addJob(t, job.ApprovalApproved, job.StatusOpen)
	pending := f.addJob(t, job.ApprovalPending, job.StatusOpen)
	gen := textgen.Func(func(context.Context, string) (string, error) { return "letter", nil })

	uc := NewAIUsecase(gen, f.store.Users(), f.store.Jobs(), nil, staticText("resume"), AIOptions{}, nil)
	_, err := uc.CoverLetter(ctx, f.seeker.ID, p.ID)
	assert.ErrorIs(t, err, ErrResumeRequired)

	require.NoError(t, f.store.Users().SetResumePath(ctx, f.seeker.ID, "cv.doc"))
	_, err = uc.CoverLetter(ctx, f.seeker.ID, pending.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
	_, err = uc.CoverLetter(ctx, f.seeker.ID, uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)

	docUC := NewAIUsecase(gen, f.store.Users(), f.store.Jobs(), nil, resumetext.Extract, AIOptions{}, nil)
	_, err = docUC.CoverLetter(ctx, f.seeker.ID, p.ID)
	assert.ErrorIs(t, err, ErrUnsupportedResume)
}

func TestAI_RateLimitPerUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.addJob(t, job.ApprovalApproved, job.StatusOpen)
	other := f.addUser(t, "other@example.com", f.seeker.Role)
	for _, id := range []uuid.UUID{f.seeker.ID, other.ID} {
		require.NoError(t, f.store.Users().SetResumePath(ctx, id, "cv.txt"))
	}

	gen := textgen.Func(func(_ context.Context, prompt string) (string, error) {
		return strings.ToUpper(prompt[:5]), nil
	})
	uc := NewAIUsecase(gen, f.store.Users(), f.store.Jobs(), nil, staticText("resume"), AIOptions{RatePerMinute: 2}, nil)

	for i := 0; i < 2; i++ {
		_, err := uc.CoverLetter(ctx, f.seeker.ID, p.ID)
		require.NoError(t, err)
	}
	_, err := uc.CoverLetter(ctx, f.seeker.ID, p.ID)
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = uc.CoverLetter(ctx, other.ID, p.ID)
	assert.NoError(t, err)
}

func TestAI_IdleLimitersAreDropped(t *testing.T) {
	uc := NewAIUsecase(nil, nil, nil, nil, staticText("resume"), AIOptions{RatePerMinute: 2}, nil)
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return clock }

	busy, idle := uuid.New(), uuid.New()
	assert.True(t, uc.allow(idle))
	assert.True(t, uc.allow(busy))
	assert.True(t, uc.allow(busy))
	assert.False(t, uc.allow(busy))
	require.Len(t, uc.limiters, 2)

	clock = clock.Add(limiterIdle - time.Minute)
	assert.True(t, uc.allow(busy))

	clock = clock.Add(2 * time.Minute)
	assert.True(t, uc.allow(busy))
	assert.Len(t, uc.limiters, 1)
	assert.NotContains(t, uc.limiters, idle)
}
