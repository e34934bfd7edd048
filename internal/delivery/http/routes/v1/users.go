package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(
	r fiber.Router,
	profile *handler.ProfileHandler,
	notifications *handler.NotificationHandler,
	ai *handler.AIHandler,
	apps *handler.ApplicationHandler,
) {
	if r == nil {
		return
	}

	seeker := middleware.RequireRole(user.RoleJobSeeker)

	if profile != nil {
		profile.RegisterRoutes(r.Group("/users"))
	}
	if notifications != nil {
		notifications.RegisterRoutes(r.Group("/notifications"))
	}
	if ai != nil {
		ai.RegisterRoutes(r.Group("/ai", seeker))
	}
	if apps != nil {
		r.Get("/applications/me", seeker, apps.ListMine)
	}
}
