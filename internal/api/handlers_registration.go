package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tailorhub/internal/registration"
	"github.com/terraincognita07/tailorhub/internal/services"
	"go.uber.org/zap"
)

const (
	maxRegistrationFields     = 32
	maxRegistrationFieldValue = 4096
)

type startRegistrationInput struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type updateRegistrationFieldsInput struct {
	Fields map[string]string `json:"fields"`
}

type registrationResponse struct {
	ID           string                `json:"id"`
	Registration registration.Snapshot `json:"registration"`
	Navigation   *navigationDirective  `json:"navigation,omitempty"`
	Profile      *registration.Profile `json:"profile,omitempty"`
	Token        string                `json:"token,omitempty"`
	Error        string                `json:"error,omitempty"`
}

func (handler *Handler) StartRegistration(c *fiber.Ctx) error {
	var input startRegistrationInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	email := services.NormalizeAuthEmail(input.Email)
	fullName, err := services.NormalizeFullName(input.FullName)
	if email == "" || err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	navigator := &flowNavigator{}
	stepper, err := registration.NewStepper(handler.catalog, map[string]string{
		registration.FieldEmail:    email,
		registration.FieldFullName: fullName,
	}, registration.Options{
		Accounts:    handler.authService,
		Profiles:    handler.authService,
		Navigator:   navigator,
		CallTimeout: handler.callTimeout,
		Role:        registration.RoleTailor,
	})
	if err != nil {
		handler.logger.Error("start registration", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to start registration")
	}

	flow := handler.flows.add(stepper, navigator)
	handler.logger.Debug("registration started", zap.String("flow_id", flow.id))
	return c.Status(fiber.StatusCreated).JSON(registrationResponse{
		ID:           flow.id,
		Registration: stepper.Snapshot(),
	})
}

func (handler *Handler) ShowRegistration(c *fiber.Ctx) error {
	flow, ok := handler.flows.get(c.Params("id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "registration not found")
	}
	return c.JSON(registrationResponse{ID: flow.id, Registration: flow.stepper.Snapshot()})
}

func (handler *Handler) UpdateRegistrationFields(c *fiber.Ctx) error {
	flow, ok := handler.flows.get(c.Params("id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "registration not found")
	}

	var input updateRegistrationFieldsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if len(input.Fields) > maxRegistrationFields {
		return apiError(c, fiber.StatusBadRequest, "too many fields")
	}
	for name, value := range input.Fields {
		if name == "" || len(value) > maxRegistrationFieldValue {
			return apiError(c, fiber.StatusBadRequest, "invalid input")
		}
	}

	for name, value := range input.Fields {
		flow.stepper.SetField(name, value)
	}
	return c.JSON(registrationResponse{ID: flow.id, Registration: flow.stepper.Snapshot()})
}

func (handler *Handler) AdvanceRegistration(c *fiber.Ctx) error {
	flow, ok := handler.flows.get(c.Params("id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "registration not found")
	}

	_, hadSession := flow.stepper.Session()
	step := flow.stepper.Index()
	advanceErr := flow.stepper.Advance(c.UserContext())

	response := registrationResponse{ID: flow.id}
	if session, ok := flow.stepper.Session(); ok && !hadSession {
		token, err := handler.setAuthCookie(c, session, false)
		if err != nil {
			handler.logger.Error("issue auth token", zap.String("flow_id", flow.id), zap.Error(err))
			return apiError(c, fiber.StatusInternalServerError, "failed to create session")
		}
		response.Token = token
	}
	response.Registration = flow.stepper.Snapshot()

	if advanceErr != nil {
		status, message := registrationErrorStatus(advanceErr)
		handler.logRegistrationError(flow.id, step, status, advanceErr)
		response.Error = message
		return c.Status(status).JSON(response)
	}

	response.Navigation = flow.navigator.take()
	if flow.stepper.Phase() == registration.PhaseTerminal {
		if profile, ok := flow.stepper.Profile(); ok {
			response.Profile = &profile
		}
		handler.flows.discard(flow.id)
		handler.logger.Info("registration completed", zap.String("flow_id", flow.id))
	}
	return c.JSON(response)
}

func (handler *Handler) RetreatRegistration(c *fiber.Ctx) error {
	flow, ok := handler.flows.get(c.Params("id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "registration not found")
	}

	if err := flow.stepper.Retreat(); err != nil {
		status, message := registrationErrorStatus(err)
		handler.logRegistrationError(flow.id, flow.stepper.Index(), status, err)
		return c.Status(status).JSON(registrationResponse{
			ID:           flow.id,
			Registration: flow.stepper.Snapshot(),
			Error:        message,
		})
	}

	response := registrationResponse{ID: flow.id, Navigation: flow.navigator.take()}
	if response.Navigation != nil && response.Navigation.Action == navigationExit {
		handler.flows.remove(flow.id)
	}
	response.Registration = flow.stepper.Snapshot()
	return c.JSON(response)
}

func (handler *Handler) AbandonRegistration(c *fiber.Ctx) error {
	if !handler.flows.remove(c.Params("id")) {
		return apiError(c, fiber.StatusNotFound, "registration not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) logRegistrationError(flowID string, step int, status int, err error) {
	fields := []zap.Field{
		zap.String("flow_id", flowID),
		zap.Int("step", step),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= fiber.StatusInternalServerError {
		handler.logger.Error("registration step failed", fields...)
		return
	}
	handler.logger.Warn("registration step rejected", fields...)
}
