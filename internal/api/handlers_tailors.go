package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tailorhub/internal/services"
	"go.uber.org/zap"
)

func (handler *Handler) ListTailors(c *fiber.Ctx) error {
	query := services.DirectoryQuery{
		Category: c.Query("category"),
		Text:     c.Query("q"),
	}
	listings, err := handler.directory.Search(c.UserContext(), query)
	if err != nil {
		handler.logger.Error("search tailors", zap.String("category", query.Category), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to load tailors")
	}
	return c.JSON(fiber.Map{
		"category": services.NormalizeDirectoryCategory(query.Category),
		"tailors":  listings,
	})
}

func (handler *Handler) ShowTailor(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || userID == 0 {
		return apiError(c, fiber.StatusNotFound, "tailor not found")
	}

	detail, err := handler.directory.Detail(c.UserContext(), uint(userID))
	if err != nil {
		if errors.Is(err, services.ErrTailorNotFound) {
			return apiError(c, fiber.StatusNotFound, "tailor not found")
		}
		handler.logger.Error("load tailor", zap.Uint64("user_id", userID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to load tailor")
	}
	return c.JSON(fiber.Map{"tailor": detail})
}
