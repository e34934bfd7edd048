package dto

type ApplyRequest struct {
	CoverLetter    string `json:"cover_letter"`
	ResumeAnalysis string `json:"resume_analysis"`
}

type RespondRequest struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
