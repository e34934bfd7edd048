package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	JWT jwt.Service

	Auth          usecase.AuthUsecase
	Jobs          usecase.JobUsecase
	Applications  usecase.ApplicationUsecase
	Moderation    usecase.ModerationUsecase
	Notifications usecase.NotificationUsecase
	Profiles      usecase.ProfileUsecase
	AI            usecase.AIUsecase
}

// Register mounts the v1 API. Public routes are registered before the
// authenticated group so they never reach the auth middleware.
func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(deps.JWT)

	jobHandler := handler.NewJobHandler(deps.Jobs)
	appHandler := handler.NewApplicationHandler(deps.Applications)

	authGroup := r.Group("/auth")
	handler.NewAuthHandler(deps.Auth).RegisterRoutes(authGroup)

	RegisterPublicJobs(r, jobHandler)

	protected := r.Group("", authMw.Middleware())

	RegisterJobs(protected, jobHandler, appHandler)
	RegisterUsers(protected,
		handler.NewProfileHandler(deps.Profiles),
		handler.NewNotificationHandler(deps.Notifications),
		handler.NewAIHandler(deps.AI),
		appHandler,
	)

	admin := protected.Group("/admin", middleware.RequireRole(user.RoleAdmin))
	RegisterAdmin(admin, handler.NewModerationHandler(deps.Moderation))
}

func RegisterAdmin(r fiber.Router, h *handler.ModerationHandler) {
	if r == nil || h == nil {
		return
	}

	r.Get("/jobs/pending", h.ListPending)
	r.Post("/jobs/:id/approve", h.Approve)
	r.Delete("/jobs/:id", h.Reject)
}
