package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	full   bool
}

func (f *fakeConn) Send(msg []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return false
	}
	f.frames = append(f.frames, msg)
	return true
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func TestEmit_NoConnections(t *testing.T) {
	r := NewRegistry(nil)
	assert.False(t, r.Emit(uuid.New(), "job:approved", map[string]string{"id": "1"}))
}

func TestEmit_DeliversToEveryConnectionOfUser(t *testing.T) {
	r := NewRegistry(nil)
	alice, bob := uuid.New(), uuid.New()
	a1, a2, b1 := &fakeConn{}, &fakeConn{}, &fakeConn{}
	r.Register(alice, "a1", a1)
	r.Register(alice, "a2", a2)
	r.Register(bob, "b1", b1)

	require.True(t, r.Emit(alice, "job:approved", map[string]string{"job_id": "42"}))

	assert.Equal(t, 1, a1.count())
	assert.Equal(t, 1, a2.count())
	assert.Equal(t, 0, b1.count())

	var msg struct {
		Event string            `json:"event"`
		Data  map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(a1.frames[0], &msg))
	assert.Equal(t, "job:approved", msg.Event)
	assert.Equal(t, "42", msg.Data["job_id"])
}

func TestEmit_FullConnectionDoesNotBlock(t *testing.T) {
	r := NewRegistry(nil)
	u := uuid.New()
	r.Register(u, "c", &fakeConn{full: true})
	assert.True(t, r.Emit(u, "x", nil))
}

func TestUnregister_RemovesEmptySets(t *testing.T) {
	r := NewRegistry(nil)
	u := uuid.New()
	r.Register(u, "c1", &fakeConn{})
	r.Register(u, "c2", &fakeConn{})

	r.Unregister("c1")
	assert.Equal(t, 1, r.ConnCount(u))

	r.Unregister("c2")
	r.Unregister("unknown")
	assert.Equal(t, 0, r.ConnCount(u))
	assert.Equal(t, 0, r.UserCount())
	assert.False(t, r.Emit(u, "x", nil))
}

func TestRegister_MovesConnectionBetweenUsers(t *testing.T) {
	r := NewRegistry(nil)
	u1, u2 := uuid.New(), uuid.New()
	r.Register(u1, "c", &fakeConn{})
	r.Register(u2, "c", &fakeConn{})

	assert.Equal(t, 0, r.ConnCount(u1))
	assert.Equal(t, 1, r.ConnCount(u2))
	assert.Equal(t, 1, r.UserCount())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry(nil)
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := users[i%len(users)]
			id := fmt.Sprintf("conn-%d", i)
			r.Register(u, id, &fakeConn{})
			r.Emit(u, "ping", i)
			r.Unregister(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, r.UserCount())
}
