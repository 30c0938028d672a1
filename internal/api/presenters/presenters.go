package presenters

import (
	"Foodgram-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	if data == nil {
		return c.Status(status).JSON(fiber.Map{"message": message})
	}
	return c.Status(status).JSON(data)
}

// ErrorResponse renders the error contract: a field-keyed map for
// validation failures, {"errors": "<message>"} for everything else.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(status).JSON(verr.Fields)
	}

	msg := message
	if err != nil {
		msg = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{"errors": msg})
}

// StatusForError maps domain errors onto the HTTP contract: missing
// references are 404, authorization failures 403, everything else
// (validation, state-machine conflicts) 400.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
