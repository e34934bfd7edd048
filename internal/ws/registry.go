package ws

import (
	"encoding/json"
	"sync"

	"jobboard/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Conn is one live socket able to accept an encoded message without blocking.
type Conn interface {
	Send(msg []byte) bool
}

// Message is the frame pushed to clients.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Registry maps users to their live connections. A user may hold several
// connections; users without connections have no entry.
type Registry struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID]map[string]Conn
	owner  map[string]uuid.UUID
	logger *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		byUser: make(map[uuid.UUID]map[string]Conn),
		owner:  make(map[string]uuid.UUID),
		logger: logger.OrNop(log),
	}
}

func (r *Registry) Register(userID uuid.UUID, connID string, conn Conn) {
	r.mu.Lock()
	if prev, ok := r.owner[connID]; ok && prev != userID {
		r.removeLocked(connID)
	}
	set, ok := r.byUser[userID]
	if !ok {
		set = make(map[string]Conn)
		r.byUser[userID] = set
	}
	set[connID] = conn
	r.owner[connID] = userID
	n := len(set)
	r.mu.Unlock()

	r.logger.Debug("ws connection registered",
		zap.String("user_id", userID.String()),
		zap.String("conn_id", connID),
		zap.Int("user_conns", n),
	)
}

// Unregister is a no-op for unknown ids.
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	userID, ok := r.removeLocked(connID)
	r.mu.Unlock()

	if ok {
		r.logger.Debug("ws connection unregistered",
			zap.String("user_id", userID.String()),
			zap.String("conn_id", connID),
		)
	}
}

func (r *Registry) removeLocked(connID string) (uuid.UUID, bool) {
	userID, ok := r.owner[connID]
	if !ok {
		return uuid.Nil, false
	}
	delete(r.owner, connID)
	if set, ok := r.byUser[userID]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(r.byUser, userID)
		}
	}
	return userID, true
}

// Emit pushes event to every connection of userID and reports whether any
// connection was registered. Sends never block; a full connection drops the
// frame.
func (r *Registry) Emit(userID uuid.UUID, event string, payload any) bool {
	r.mu.RLock()
	set := r.byUser[userID]
	conns := make([]Conn, 0, len(set))
	for _, c := range set {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	if len(conns) == 0 {
		return false
	}

	b, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		r.logger.Warn("ws encode failed", zap.String("event", event), zap.Error(err))
		return true
	}

	for _, c := range conns {
		if !c.Send(b) {
			r.logger.Warn("ws frame dropped",
				zap.String("user_id", userID.String()),
				zap.String("event", event),
			)
		}
	}
	return true
}

func (r *Registry) ConnCount(userID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID])
}

func (r *Registry) UserCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
