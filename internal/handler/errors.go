package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kayacantekin/aidpanel/internal/apiclient"
	"github.com/kayacantekin/aidpanel/internal/domain"
)

// toHTTPError maps domain and backend failures onto fiber errors. A
// classified backend error keeps its upstream status so the panel sees
// what the backend answered.
func toHTTPError(err error) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode > 0 {
		return fiber.NewError(apiErr.StatusCode, err.Error())
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}
