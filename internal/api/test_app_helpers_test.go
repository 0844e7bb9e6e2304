package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tailorhub/internal/db"
	"go.uber.org/zap"
)

const testSecretKey = "tailorhub-test-secret-key-0123456789abcdef"

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "tailorhub-test.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	handler, err := NewHandler(database, Options{SecretKey: testSecretKey})
	if err != nil {
		t.Fatalf("NewHandler() unexpected error: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload any, authCookie string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { _ = response.Body.Close() })
	return response
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var value T
	if err := json.NewDecoder(response.Body).Decode(&value); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return value
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	return decodeJSON[map[string]any](t, response)["error"].(string)
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func requireStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, string(body))
	}
}
