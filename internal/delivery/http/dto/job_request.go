package dto

import "jobboard/internal/usecase"

type JobRequest struct {
	Title            string   `json:"title"`
	Salary           string   `json:"salary"`
	Location         string   `json:"location"`
	CompanyName      string   `json:"company_name"`
	JobType          string   `json:"job_type"`
	Benefits         string   `json:"benefits"`
	Experience       string   `json:"experience"`
	Responsibilities string   `json:"responsibilities"`
	Skills           []string `json:"skills"`
	Qualification    string   `json:"qualification"`
	JobCategory      string   `json:"job_category"`
	ImageURL         string   `json:"image_url"`
}

func (r JobRequest) ToInput() usecase.JobInput {
	return usecase.JobInput{
		Title:            r.Title,
		Salary:           r.Salary,
		Location:         r.Location,
		CompanyName:      r.CompanyName,
		Type:             r.JobType,
		Benefits:         r.Benefits,
		Experience:       r.Experience,
		Responsibilities: r.Responsibilities,
		Skills:           r.Skills,
		Qualification:    r.Qualification,
		Category:         r.JobCategory,
		ImageURL:         r.ImageURL,
	}
}

type JobStatusRequest struct {
	Status string `json:"status"`
}
