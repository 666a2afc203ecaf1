package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/moviehub/catalog-service/pkg/util/errorutil"
)

type validatable interface {
	Validate() error
}

// bindJSON parses the body into req and runs its validation rules.
func bindJSON(c *fiber.Ctx, req validatable) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	return apperrors.FromValidation(req.Validate())
}

// paramID reads a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("validation failed", map[string]any{name: "must be a positive integer"})
	}
	return id, nil
}
