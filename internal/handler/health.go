package handler

import (
	"context"
	"time"

	"tanuki-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// Pinger is a backing service reported by the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports ok, or 503 when the Redis session backend does not answer
// a ping. A nil redis means sessions are held in memory.
func Health(redis Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redis == nil {
			return c.JSON(fiber.Map{"status": "ok"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
		defer cancel()
		if err := redis.Ping(ctx); err != nil {
			logger.Get().Warn("Health check failed", zap.String("dependency", "redis"), zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "redis": "unreachable"})
		}
		return c.JSON(fiber.Map{"status": "ok", "redis": "ok"})
	}
}
