package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tailorhub/internal/models"
	"github.com/terraincognita07/tailorhub/internal/registration"
	"github.com/terraincognita07/tailorhub/internal/services"
	"go.uber.org/zap"
)

type loginInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type sessionResponse struct {
	User               registration.Session `json:"user"`
	Token              string               `json:"token,omitempty"`
	MustChangePassword bool                 `json:"must_change_password"`
	TailorProfile      *tailorProfileView   `json:"tailor_profile,omitempty"`
}

type tailorProfileView struct {
	registration.Profile
	RatingAverage float64 `json:"rating_average"`
	RatingCount   int     `json:"rating_count"`
}

func newTailorProfileView(profile models.TailorProfile) *tailorProfileView {
	return &tailorProfileView{
		Profile: registration.Profile{
			BusinessName:   profile.BusinessName,
			Address:        profile.Address,
			Specialties:    profile.Specialties,
			Services:       profile.Services,
			PriceRange:     profile.PriceRange,
			Availability:   profile.Availability,
			Experience:     profile.Experience,
			Certifications: profile.Certifications,
			Portfolio:      profile.Portfolio,
		},
		RatingAverage: profile.RatingAverage,
		RatingCount:   profile.RatingCount,
	}
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.SignIn(c.UserContext(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.addFailure(limiterKey, now)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		handler.logger.Error("login failed", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}
	handler.loginLimiter.reset(limiterKey)

	session := services.SessionForUser(user)
	token, err := handler.setAuthCookie(c, session, input.RememberMe)
	if err != nil {
		handler.logger.Error("issue auth token", zap.Uint("user_id", user.ID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(sessionResponse{User: session, Token: token, MustChangePassword: user.MustChangePassword})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) CurrentSession(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	response := sessionResponse{
		User:               services.SessionForUser(*user),
		MustChangePassword: user.MustChangePassword,
	}
	if user.Role == models.RoleTailor {
		profile, found, err := handler.authService.TailorProfile(c.UserContext(), user.ID)
		if err != nil {
			handler.logger.Error("load tailor profile", zap.Uint("user_id", user.ID), zap.Error(err))
			return apiError(c, fiber.StatusInternalServerError, "failed to load profile")
		}
		if found {
			response.TailorProfile = newTailorProfileView(profile)
		}
	}
	return c.JSON(response)
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input changePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	err := handler.authService.ChangePassword(c.UserContext(), user.ID, input.CurrentPassword, input.NewPassword)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"ok": true})
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusUnauthorized, "invalid current password")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	default:
		handler.logger.Error("change password", zap.Uint("user_id", user.ID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to change password")
	}
}
