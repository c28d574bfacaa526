package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"skillgap/internal/models"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e apiError) Error() string {
	return e.Message
}

type validationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e validationError) Error() string {
	return "validation failed"
}

// ErrorHandler maps core error categories to user-visible responses, so a
// dependency outage reads as "service unavailable" instead of a stack trace.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if ve, ok := err.(validationError); ok {
		return c.Status(ve.Status).JSON(ve)
	}
	if ae, ok := err.(apiError); ok {
		return c.Status(ae.Code).JSON(ae)
	}

	code := fiber.StatusInternalServerError
	message := err.Error()
	switch {
	case errors.Is(err, models.ErrInput):
		code = fiber.StatusBadRequest
	case errors.Is(err, models.ErrGeneration):
		code = fiber.StatusBadGateway
	case errors.Is(err, models.ErrDependency):
		code = fiber.StatusServiceUnavailable
		message = "service unavailable"
	default:
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
	}
	return c.Status(code).JSON(apiError{Code: code, Message: message})
}

func errBadRequest(msg string) apiError {
	return apiError{Code: fiber.StatusBadRequest, Message: msg}
}
