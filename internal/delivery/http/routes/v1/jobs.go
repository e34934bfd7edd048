package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterPublicJobs(r fiber.Router, h *handler.JobHandler) {
	if r == nil || h == nil {
		return
	}

	r.Get("/jobs", h.List)
	r.Get("/jobs/:id", h.Get)
}

func RegisterJobs(r fiber.Router, jobs *handler.JobHandler, apps *handler.ApplicationHandler) {
	if r == nil || jobs == nil {
		return
	}

	recruiter := middleware.RequireRole(user.RoleRecruiter)
	seeker := middleware.RequireRole(user.RoleJobSeeker)

	r.Post("/jobs", recruiter, jobs.Create)
	r.Put("/jobs/:id", recruiter, jobs.Update)
	r.Patch("/jobs/:id/status", recruiter, jobs.SetStatus)
	r.Delete("/jobs/:id", recruiter, jobs.Delete)
	r.Get("/recruiter/jobs", recruiter, jobs.ListMine)

	r.Post("/jobs/:id/save", seeker, jobs.Save)
	r.Delete("/jobs/:id/save", seeker, jobs.Unsave)
	r.Get("/saved-jobs", seeker, jobs.ListSaved)

	if apps == nil {
		return
	}
	r.Get("/jobs/:id/applicants", recruiter, apps.ListApplicants)
	r.Patch("/applications/:id/respond", recruiter, apps.Respond)
	r.Post("/jobs/:id/apply", seeker, apps.Apply)
}
