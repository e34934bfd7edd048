package app

import (
	"fmt"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: bodyLimit(c.Config.Storage.MaxResumeBytes),
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup
// releases everything the container opened.
func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(log.Named("http"))
	app.Use(errMw.Middleware())

	accessLog := middleware.NewAccessLogMiddleware(log.Named("access"))
	app.Use(accessLog.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	var db handler.Pinger
	if c.DB != nil {
		db = c.DB
	}

	reg := routes.NewRegistry(db, ws.NewHandler(c.Registry, c.JWT, c.Logger.Named("ws")), v1.Deps{
		JWT:           c.JWT,
		Auth:          c.Auth,
		Jobs:          c.Jobs,
		Applications:  c.Applications,
		Moderation:    c.Moderation,
		Notifications: c.Notifications,
		Profiles:      c.Profiles,
		AI:            c.AI,
	})
	reg.Register(app)
}

// bodyLimit leaves room for multipart framing and form fields around the
// resume file.
func bodyLimit(maxResume int64) int {
	const overhead = 1 << 20
	if maxResume <= 0 {
		return 4<<20 + overhead
	}
	return int(maxResume) + overhead
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
