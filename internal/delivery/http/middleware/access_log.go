package middleware

import (
	"time"

	"jobboard/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccessLogMiddleware struct {
	logger *zap.Logger
}

func NewAccessLogMiddleware(log *zap.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{logger: logger.OrNop(log)}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("X-Request-ID", rid)
		}

		err := c.Next()

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("rid", rid),
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("resp_bytes", c.Response().Header.ContentLength()),
			zap.String("ua", c.Get("User-Agent")),
		}

		switch {
		case status >= 500:
			m.logger.Error("http access", fields...)
		case status >= 400:
			m.logger.Warn("http access", fields...)
		default:
			m.logger.Info("http access", fields...)
		}

		return err
	}
}
