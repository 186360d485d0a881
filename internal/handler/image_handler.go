package handler

import (
	"tanuki-quiz/internal/domain"
	"tanuki-quiz/internal/logger"
	"tanuki-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImageHandler serves placeholder images.
type ImageHandler struct {
	renderer domain.PlaceholderRenderer
}

func NewImageHandler(renderer domain.PlaceholderRenderer) *ImageHandler {
	return &ImageHandler{renderer: renderer}
}

// SyntheticImage godoc
// @Summary Render a placeholder image
// @Description Returns a deterministic PNG for the category key
// @Tags images
// @Produce png
// @Param key path string true "Category key"
// @Success 200 {file} binary
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /synthetic_image/{key} [get]
func (h *ImageHandler) SyntheticImage(c *fiber.Ctx) error {
	key, _ := c.Locals(middleware.ValidatedKeyLocal).(string)
	if key == "" {
		key = c.Params("key")
	}

	data, err := h.renderer.RenderPNG(key)
	if err != nil {
		logger.Get().Error("Failed to render placeholder", zap.String("key", key), zap.Error(err))
		return domain.NewInternalError("failed to render placeholder", err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(data)
}
