package middleware

import (
	"quiz-practice/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LocalsCategory holds the validated ?category= filter.
const LocalsCategory = "validated_category"

// ValidationMiddleware validates query parameters before handlers run.
type ValidationMiddleware struct {
	validator *validation.Validator
}

func NewValidationMiddleware(validator *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: validator}
}

// ValidateCategoryQuery checks the optional category filter and stores it
// in c.Locals(LocalsCategory).
func (vm *ValidationMiddleware) ValidateCategoryQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := c.Query("category")
		if errs := vm.validator.ValidateCategoryFilter(category); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalsCategory, category)
		return c.Next()
	}
}
