package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tailorhub/internal/models"
)

const contextUserKey = "user"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	claims, err := handler.parseToken(requestToken(c))
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := handler.authService.FindByID(c.UserContext(), claims.UserID)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}
