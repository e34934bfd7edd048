package usecase

import (
	"github.com/google/uuid"
)

// EventEmitter pushes a real-time event to a user's live connections and
// reports whether any was registered.
type EventEmitter interface {
	Emit(userID uuid.UUID, event string, payload any) bool
}

type nopEmitter struct{}

func (nopEmitter) Emit(uuid.UUID, string, any) bool { return false }

func emitterOrNop(e EventEmitter) EventEmitter {
	if e == nil {
		return nopEmitter{}
	}
	return e
}
