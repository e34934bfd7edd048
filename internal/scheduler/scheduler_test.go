package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	mu    sync.Mutex
	calls []time.Duration
	err   error
}

func (p *fakePurger) PurgeRead(_ context.Context, olderThan time.Duration) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, olderThan)
	return 3, p.err
}

func (p *fakePurger) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func TestRunOnce(t *testing.T) {
	p := &fakePurger{}
	s := New(p, "@every 24h", 30, nil)

	s.RunOnce(context.Background())
	require.Equal(t, 1, p.count())
	assert.Equal(t, 30*24*time.Hour, p.calls[0])

	p.err = errors.New("db down")
	s.RunOnce(context.Background())
	assert.Equal(t, 2, p.count())
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New(&fakePurger{}, "not a spec", 30, nil)
	assert.Error(t, s.Start(context.Background()))
}

func TestStart_Ticks(t *testing.T) {
	p := &fakePurger{}
	s := New(p, "@every 1s", 1, nil)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return p.count() > 0 }, 3*time.Second, 50*time.Millisecond)
}
