package notification

import (
	"time"

	"github.com/google/uuid"
)

// EventJobApproved is the real-time event pushed to a recruiter when one of
// their postings is approved.
const EventJobApproved = "job:approved"

// EventApplicationResponded is pushed to a job seeker when a recruiter
// answers their application.
const EventApplicationResponded = "application:responded"

type Notification struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	JobID       uuid.UUID `json:"job_id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
	Location    string    `json:"location"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
