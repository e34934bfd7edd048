package dto

import "github.com/google/uuid"

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"`
	CoverLetter *string `json:"cover_letter"`
}

type CoverLetterRequest struct {
	JobID uuid.UUID `json:"job_id"`
}

type ResumeAnalysisRequest struct {
	JobID *uuid.UUID `json:"job_id"`
}
