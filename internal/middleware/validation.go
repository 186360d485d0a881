package middleware

import (
	"tanuki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedKeyLocal      = "validated_key"
	ValidatedFilenameLocal = "validated_filename"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSyntheticKey validates the :key path parameter.
func (vm *ValidationMiddleware) ValidateSyntheticKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		if errors := vm.validator.ValidateSyntheticKey(key); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedKeyLocal, key)
		return c.Next()
	}
}

// ValidateAssetFilename validates the :filename path parameter.
func (vm *ValidationMiddleware) ValidateAssetFilename() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename := c.Params("filename")
		if errors := vm.validator.ValidateAssetFilename(filename); len(errors) > 0 {
			return errors
		}
		c.Locals(ValidatedFilenameLocal, filename)
		return c.Next()
	}
}
