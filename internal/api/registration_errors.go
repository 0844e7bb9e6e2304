package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tailorhub/internal/registration"
	"github.com/terraincognita07/tailorhub/internal/services"
)

func registrationErrorStatus(err error) (int, string) {
	var accountErr *registration.AccountCreationError
	var profileErr *registration.ProfileUpdateError

	switch {
	case errors.Is(err, registration.ErrValidation):
		return fiber.StatusBadRequest, "password mismatch"
	case errors.Is(err, registration.ErrPending):
		return fiber.StatusConflict, "request pending"
	case errors.Is(err, registration.ErrFlowClosed):
		return fiber.StatusGone, "registration closed"
	case errors.Is(err, registration.ErrNotFinalStep):
		return fiber.StatusBadRequest, "registration is not on its final step"
	case errors.As(err, &accountErr):
		return accountErrorStatus(accountErr.Err)
	case errors.As(err, &profileErr):
		if errors.Is(profileErr.Err, context.DeadlineExceeded) {
			return fiber.StatusGatewayTimeout, "profile update timed out"
		}
		return fiber.StatusBadGateway, "profile update failed"
	default:
		return fiber.StatusInternalServerError, "registration failed"
	}
}

func accountErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "account creation timed out"
	case errors.Is(err, services.ErrEmailExists):
		return fiber.StatusConflict, "email already exists"
	case errors.Is(err, services.ErrWeakPassword):
		return fiber.StatusBadRequest, "weak password"
	case errors.Is(err, services.ErrAuthCredentialsInvalid), errors.Is(err, services.ErrFullNameRequired):
		return fiber.StatusBadRequest, "invalid input"
	default:
		return fiber.StatusBadGateway, "account creation failed"
	}
}
