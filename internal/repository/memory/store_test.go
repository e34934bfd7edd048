package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/notification"
	"jobboard/internal/domain/user"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRecruiterAndJob(t *testing.T, s *Store) (user.User, job.Posting) {
	t.Helper()
	ctx := context.Background()

	rec := user.User{ID: uuid.New(), Email: "rec@example.com", Role: user.RoleRecruiter}
	require.NoError(t, s.Users().Create(ctx, rec))

	p, err := s.Jobs().Create(ctx, job.Posting{
		RecruiterID: rec.ID,
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		Location:    "Berlin",
		Skills:      []string{"Go", "SQL"},
		Approval:    job.ApprovalPending,
		Status:      job.StatusOpen,
	})
	require.NoError(t, err)
	return rec, p
}

func TestApplications_UniquePerJobAndUser(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, p := seedRecruiterAndJob(t, s)
	seeker := uuid.New()

	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Applications().Create(ctx, application.Applicant{JobID: p.ID, UserID: seeker})
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, repository.ErrAlreadyApplied):
				dup.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(15), dup.Load())
	assert.Equal(t, 1, s.Applications().Count())
}

func TestApplications_RespondRequiresExpectedStatus(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, p := seedRecruiterAndJob(t, s)
	a, err := s.Applications().Create(ctx, application.Applicant{
		JobID: p.ID, UserID: uuid.New(), Status: application.StatusPending,
	})
	require.NoError(t, err)

	now := time.Now()
	hired, err := s.Applications().Respond(ctx, a.ID, application.StatusPending, application.StatusHired, "welcome", now)
	require.NoError(t, err)
	assert.Equal(t, application.StatusHired, hired.Status)

	_, err = s.Applications().Respond(ctx, a.ID, application.StatusPending, application.StatusRejected, "sorry", now)
	assert.ErrorIs(t, err, repository.ErrStatusChanged)

	got, err := s.Applications().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusHired, got.Status)
	assert.Equal(t, "welcome", got.Response)

	_, err = s.Applications().Respond(ctx, uuid.New(), application.StatusPending, application.StatusHired, "", now)
	assert.ErrorIs(t, err, repository.ErrApplicationNotFound)
}

func TestModeration_ApproveSideEffects(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	rec, p := seedRecruiterAndJob(t, s)

	got, err := s.Moderation().Approve(ctx, p.ID, notification.Notification{Title: p.Title})
	require.NoError(t, err)
	assert.True(t, got.IsApproved())

	u, err := s.Users().GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.JobsPosted)

	ns, err := s.Notifications().ListByUser(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, p.ID, ns[0].JobID)

	_, err = s.Moderation().Approve(ctx, p.ID, notification.Notification{})
	assert.ErrorIs(t, err, repository.ErrJobNotPending)
	assert.ErrorIs(t, s.Moderation().DeletePending(ctx, p.ID), repository.ErrJobNotPending)

	_, err = s.Jobs().GetByID(ctx, p.ID)
	assert.NoError(t, err)
}

func TestModeration_DeletePendingCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, p := seedRecruiterAndJob(t, s)
	seeker := uuid.New()

	_, err := s.Applications().Create(ctx, application.Applicant{JobID: p.ID, UserID: seeker})
	require.NoError(t, err)
	require.NoError(t, s.SavedJobs().Save(ctx, seeker, p.ID))

	require.NoError(t, s.Moderation().DeletePending(ctx, p.ID))

	_, err = s.Jobs().GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrJobNotFound)
	exists, err := s.Applications().Exists(ctx, p.ID, seeker)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, s.Moderation().DeletePending(ctx, p.ID), repository.ErrJobNotFound)
}

func TestJobs_ListApprovedFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	rec, _ := seedRecruiterAndJob(t, s)

	mk := func(title, loc string, tp job.Type, skills ...string) job.Posting {
		p, err := s.Jobs().Create(ctx, job.Posting{
			RecruiterID: rec.ID, Title: title, Location: loc, Type: tp, Skills: skills,
			Approval: job.ApprovalApproved, Status: job.StatusOpen,
		})
		require.NoError(t, err)
		return p
	}
	a := mk("Go Developer", "Remote", job.TypeRemote, "Go")
	b := mk("Frontend Developer", "Berlin", job.TypeFullTime, "React")

	all, err := s.Jobs().ListApproved(ctx, repository.JobFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID)

	got, err := s.Jobs().ListApproved(ctx, repository.JobFilter{Keyword: "go"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	got, err = s.Jobs().ListApproved(ctx, repository.JobFilter{Skill: "react", Location: "berlin"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	got, err = s.Jobs().ListApproved(ctx, repository.JobFilter{Limit: 1, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, got)
}
