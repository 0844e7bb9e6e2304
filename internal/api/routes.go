package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.CurrentSession)
	auth.Post("/password", handler.AuthRequired, handler.ChangePassword)

	flows := api.Group("/registration")
	flows.Post("", handler.StartRegistration)
	flows.Get("/:id", handler.ShowRegistration)
	flows.Patch("/:id/fields", handler.UpdateRegistrationFields)
	flows.Post("/:id/next", handler.AdvanceRegistration)
	flows.Post("/:id/back", handler.RetreatRegistration)
	flows.Delete("/:id", handler.AbandonRegistration)

	api.Get("/tailors", handler.ListTailors)
	api.Get("/tailors/:id", handler.ShowTailor)
}
