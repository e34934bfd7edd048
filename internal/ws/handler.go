package ws

import (
	"net/http"

	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	registry *Registry
	jwt      jwt.Service
	logger   *zap.Logger
}

func NewHandler(registry *Registry, jwtSvc jwt.Service, log *zap.Logger) *Handler {
	return &Handler{registry: registry, jwt: jwtSvc, logger: logger.OrNop(log)}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handle upgrades GET /ws?token=<access token>. The token is checked once
// before the upgrade.
func (h *Handler) Handle(c fiber.Ctx) error {
	if h == nil || h.registry == nil || h.jwt == nil {
		return fiber.ErrServiceUnavailable
	}

	token := c.Query("token")
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing token")
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}
	userID := claims.UserID

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("ws upgrade failed", zap.Error(err))
			return
		}

		client := NewClient(h.registry, userID, conn)
		h.registry.Register(userID, client.ID(), client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
