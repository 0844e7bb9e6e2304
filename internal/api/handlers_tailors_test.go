package api

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/tailorhub/internal/registration"
	"github.com/terraincognita07/tailorhub/internal/services"
)

func TestShowTailor(t *testing.T) {
	app, handler := newTestApp(t)
	session := createTestAccount(t, handler, "ada@stitch.example")
	require.NoError(t, handler.authService.UpdateProfile(context.Background(), session, registration.Profile{
		BusinessName:   "Needle & Thread",
		Specialties:    []string{"Bridal"},
		Services:       []string{"Hemming"},
		Experience:     12,
		Certifications: []string{"Guild of Cutters"},
		Portfolio:      "https://needle.example",
	}))

	response := doJSON(t, app, http.MethodGet, "/api/tailors/"+strconv.FormatUint(uint64(session.UserID), 10), nil, "")
	requireStatus(t, response, fiber.StatusOK)
	payload := decodeJSON[struct {
		Tailor services.TailorDetail `json:"tailor"`
	}](t, response)
	assert.Equal(t, session.UserID, payload.Tailor.UserID)
	assert.Equal(t, "Ada Stitch", payload.Tailor.Name)
	assert.Equal(t, "Needle & Thread", payload.Tailor.BusinessName)
	assert.Equal(t, []string{"Hemming"}, payload.Tailor.Services)
	assert.Equal(t, 12, payload.Tailor.Experience)
	assert.Equal(t, []string{"Guild of Cutters"}, payload.Tailor.Certifications)
	assert.Zero(t, payload.Tailor.RatingCount)
}

func TestShowTailorUnknownID(t *testing.T) {
	app, handler := newTestApp(t)
	withoutProfile := createTestAccount(t, handler, "ada@stitch.example")

	for _, id := range []string{"999", "abc", "0", strconv.FormatUint(uint64(withoutProfile.UserID), 10)} {
		response := doJSON(t, app, http.MethodGet, "/api/tailors/"+id, nil, "")
		requireStatus(t, response, fiber.StatusNotFound)
		assert.Equal(t, "tailor not found", readAPIError(t, response))
	}
}
