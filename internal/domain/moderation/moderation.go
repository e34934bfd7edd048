// Package moderation decides what an admin action does to a job posting.
//
//	pending ──approve──► approved   (terminal)
//	   │
//	   └─────reject────► deleted
//
// There is no way back from approved: it can be neither approved again nor
// rejected.
package moderation

import (
	"errors"
	"fmt"

	"jobboard/internal/domain/job"
)

var ErrAlreadyApproved = errors.New("job already approved")

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Effect is what the store must do to carry out an action.
type Effect int

const (
	// EffectApprove marks the posting approved, bumps the recruiter's posted
	// counter and records a notification.
	EffectApprove Effect = iota + 1
	// EffectDelete removes the posting. No notification is produced.
	EffectDelete
)

func Decide(current job.ApprovalStatus, a Action) (Effect, error) {
	switch current {
	case job.ApprovalApproved:
		return 0, ErrAlreadyApproved
	case job.ApprovalPending:
	default:
		return 0, fmt.Errorf("unknown approval status %q", current)
	}

	switch a {
	case ActionApprove:
		return EffectApprove, nil
	case ActionReject:
		return EffectDelete, nil
	}
	return 0, fmt.Errorf("unknown moderation action %q", a)
}
