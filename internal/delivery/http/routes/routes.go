package routes

import (
	"jobboard/internal/delivery/http/handler"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	deps   v1.Deps
}

// NewRegistry wires the top-level routes. db may be nil when the service
// runs on the memory store.
func NewRegistry(db handler.Pinger, socket *ws.Handler, deps v1.Deps) *Registry {
	return &Registry{
		health: handler.NewHealthHandler(db),
		ws:     socket,
		deps:   deps,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerSocket(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerSocket(app *fiber.App) {
	if r.ws == nil {
		return
	}
	app.Get("/ws", r.ws.Handle)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
