package job

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus is the moderation state of a posting. A rejected posting is
// deleted, so there is no rejected value.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
)

func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	st := ApprovalStatus(s)
	switch st {
	case ApprovalPending, ApprovalApproved:
		return st, nil
	}
	return "", fmt.Errorf("unknown approval status %q", s)
}

// OpenStatus controls whether an approved posting accepts applications.
type OpenStatus string

const (
	StatusOpen   OpenStatus = "open"
	StatusClosed OpenStatus = "closed"
)

func ParseOpenStatus(s string) (OpenStatus, error) {
	st := OpenStatus(s)
	switch st {
	case StatusOpen, StatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

type Type string

const (
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeContract   Type = "contract"
	TypeInternship Type = "internship"
	TypeRemote     Type = "remote"
)

func ParseType(s string) (Type, error) {
	t := Type(s)
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship, TypeRemote:
		return t, nil
	}
	return "", fmt.Errorf("unknown job type %q", s)
}

type Category string

const (
	CategoryEngineering Category = "engineering"
	CategoryDesign      Category = "design"
	CategoryMarketing   Category = "marketing"
	CategorySales       Category = "sales"
	CategoryFinance     Category = "finance"
	CategoryOperations  Category = "operations"
	CategoryOther       Category = "other"
)

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	switch c {
	case CategoryEngineering, CategoryDesign, CategoryMarketing, CategorySales,
		CategoryFinance, CategoryOperations, CategoryOther:
		return c, nil
	}
	return "", fmt.Errorf("unknown job category %q", s)
}

type Posting struct {
	ID               uuid.UUID      `json:"id"`
	RecruiterID      uuid.UUID      `json:"recruiter_id"`
	Title            string         `json:"title"`
	Salary           string         `json:"salary"`
	Location         string         `json:"location"`
	CompanyName      string         `json:"company_name"`
	Type             Type           `json:"job_type"`
	Benefits         string         `json:"benefits"`
	Experience       string         `json:"experience"`
	Responsibilities string         `json:"responsibilities"`
	Skills           []string       `json:"skills"`
	Qualification    string         `json:"qualification"`
	Category         Category       `json:"job_category"`
	Approval         ApprovalStatus `json:"approval_status"`
	Status           OpenStatus     `json:"status"`
	ImageURL         string         `json:"image_url"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (p Posting) IsApproved() bool { return p.Approval == ApprovalApproved }

// AcceptsApplications reports whether job seekers may apply.
func (p Posting) AcceptsApplications() bool {
	return p.IsApproved() && p.Status == StatusOpen
}

// Description is the text handed to generation prompts.
func (p Posting) Description() string {
	return fmt.Sprintf(
		"Title: %s\nCompany: %s\nLocation: %s\nType: %s\nExperience: %s\nSkills: %v\nResponsibilities: %s\nQualification: %s",
		p.Title, p.CompanyName, p.Location, p.Type, p.Experience, p.Skills, p.Responsibilities, p.Qualification,
	)
}
