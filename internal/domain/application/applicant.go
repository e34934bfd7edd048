// Package application models a job seeker's application to a posting and the
// recruiter's response to it.
//
//	pending ──► interview ──► shortlisted ──► hired
//	   │            │              │
//	   └────────────┴──────────────┴──► rejected
//
// hired and rejected are terminal. A recruiter may answer pending with any
// response status and may move between interview and shortlisted.
package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusInterview   Status = "interview"
	StatusShortlisted Status = "shortlisted"
	StatusHired       Status = "hired"
	StatusRejected    Status = "rejected"
)

var validTransitions = map[Status][]Status{
	StatusPending:     {StatusInterview, StatusShortlisted, StatusHired, StatusRejected},
	StatusInterview:   {StatusInterview, StatusShortlisted, StatusHired, StatusRejected},
	StatusShortlisted: {StatusInterview, StatusShortlisted, StatusHired, StatusRejected},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusInterview, StatusShortlisted, StatusHired, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// ParseResponseStatus accepts only the statuses a recruiter may set.
func ParseResponseStatus(s string) (Status, error) {
	st, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	if st == StatusPending {
		return "", fmt.Errorf("status %q cannot be set by a response", s)
	}
	return st, nil
}

func IsTransitionAllowed(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Applicant struct {
	ID            uuid.UUID  `json:"id"`
	JobID         uuid.UUID  `json:"job_id"`
	UserID        uuid.UUID  `json:"user_id"`
	ResumePath    string     `json:"resume"`
	CoverLetter   string     `json:"cover_letter"`
	Status        Status     `json:"status"`
	Response      string     `json:"response"`
	MatchedSkills []string   `json:"matched_skills"`
	MissingSkills []string   `json:"missing_skills"`
	AppliedAt     time.Time  `json:"applied_at"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}
