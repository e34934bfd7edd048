package usecase

import (
	"context"
	"testing"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/moderation"
	"jobboard/internal/domain/notification"
	"jobboard/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprove_SideEffectsWithoutLiveConnections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.addJob(t, job.ApprovalPending, job.StatusOpen)
	registry := ws.NewRegistry(nil)
	cache := newMapCache()
	cache.items["jobs:list:stale"] = nil

	mod := NewModerationUsecase(f.store.Jobs(), f.store.Moderation(), registry, cache, nil)
	approved, err := mod.Approve(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved())

	recruiter, err := f.store.Users().GetByID(ctx, f.recruiter.ID)
	require.NoError(t, err)
	assert.Equal(t, f.recruiter.JobsPosted+1, recruiter.JobsPosted)

	notes, err := f.store.Notifications().ListByUser(ctx, f.recruiter.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, p.ID, notes[0].JobID)
	assert.Equal(t, "Backend Engineer", notes[0].Title)
	assert.False(t, notes[0].IsRead)

	assert.Equal(t, 0, cache.len())
}

func TestApprove_EmitsToRecruiter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.addJob(t, job.ApprovalPending, job.StatusOpen)
	events := &recordingEmitter{live: map[uuid.UUID]bool{f.recruiter.ID: true}}

	mod := NewModerationUsecase(f.store.Jobs(), f.store.Moderation(), events, nil, nil)
	_, err := mod.Approve(ctx, p.ID)
	require.NoError(t, err)

	got := events.all()
	require.Len(t, got, 1)
	assert.Equal(t, f.recruiter.ID, got[0].userID)
	assert.Equal(t, notification.EventJobApproved, got[0].event)
}

func TestApprove_Twice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.addJob(t, job.ApprovalPending, job.StatusOpen)
	mod := NewModerationUsecase(f.store.Jobs(), f.store.Moderation(), nil, nil, nil)

	_, err := mod.Approve(ctx, p.ID)
	require.NoError(t, err)
	_, err = mod.Approve(ctx, p.ID)
	assert.ErrorIs(t, err, ErrConflict)

	recruiter, err := f.store.Users().GetByID(ctx, f.recruiter.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, recruiter.JobsPosted)
}

func TestApprove_Missing(t *testing.T) {
	f := newFixture(t)
	mod := NewModerationUsecase(f.store.Jobs(), f.store.Moderation(), nil, nil, nil)
	_, err := mod.Approve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pending := f.addJob(t, job.ApprovalPending, job.StatusOpen)
	approved := f.addJob(t, job.ApprovalApproved, job.StatusOpen)
	mod := NewModerationUsecase(f.store.Jobs(), f.store.Moderation(), nil, nil, nil)

	require.NoError(t, mod.Reject(ctx, pending.ID))
	_, err := f.store.Jobs().GetByID(ctx, pending.ID)
	assert.Error(t, err)

	err = mod.Reject(ctx, approved.ID)
	assert.ErrorIs(t, err, ErrConflict)
	still, err := f.store.Jobs().GetByID(ctx, approved.ID)
	require.NoError(t, err)
	assert.True(t, still.IsApproved())

	notes, err := f.store.Notifications().ListByUser(ctx, f.recruiter.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestListPending(t *testing.T) {
	f := newFixture(t)
	first := f.addJob(t, job.ApprovalPending, job.StatusOpen)
	f.addJob(t, job.ApprovalApproved, job.StatusOpen)
	second := f.addJob(t, job.ApprovalPending, job.StatusOpen)

	mod := NewModerationUsecase(f.store.Jobs(), f.store.Moderation(), nil, nil, nil)
	items, err := mod.ListPending(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)

	_, err = mod.ListPending(context.Background(), -1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestModerate_UnknownActionLeavesJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.addJob(t, job.ApprovalPending, job.StatusOpen)
	mod := NewModerationUsecase(f.store.Jobs(), f.store.Moderation(), nil, nil, nil)

	_, err := mod.moderate(ctx, p.ID, moderation.Action("archive"))
	require.ErrorIs(t, err, ErrInternal)

	got, err := f.store.Jobs().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ApprovalPending, got.Approval)
}
