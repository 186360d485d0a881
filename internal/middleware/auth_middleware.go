package middleware

import (
	"strings"

	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/logger"
	"tanuki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	AdminTokenHeader    = "X-Admin-Token"
	BearerSchema        = "Bearer "
)

// AdminOnly rejects requests whose admin token does not match the configured
// shared secret. The token is read from X-Admin-Token, or from a Bearer
// Authorization header.
func AdminOnly(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(AdminTokenHeader)
		if token == "" {
			if authHeader := c.Get(AuthorizationHeader); strings.HasPrefix(authHeader, BearerSchema) {
				token = strings.TrimPrefix(authHeader, BearerSchema)
			}
		}

		if !authService.Authorize(token) {
			logger.Get().Warn("Admin request rejected",
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Bool("token_present", token != ""),
			)
			return domain.NewUnauthorizedError()
		}
		return c.Next()
	}
}
