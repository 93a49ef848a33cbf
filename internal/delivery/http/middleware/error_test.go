package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware(t *testing.T) {
	var logs bytes.Buffer
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(&logs, "", 0)).Middleware())

	app.Get("/conflict", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "Already applied", nil, nil)
	})
	app.Get("/default-message", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusTooManyRequests, "", nil, nil)
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "pq: relation missing", nil, errors.New("driver detail"))
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("kaboom")
	})

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/conflict", fiber.StatusConflict, "Already applied"},
		{"/default-message", fiber.StatusTooManyRequests, "too many requests"},
		{"/internal", fiber.StatusInternalServerError, "Internal server error"},
		{"/plain", fiber.StatusInternalServerError, "Internal server error"},
		{"/panic", fiber.StatusInternalServerError, "Internal server error"},
		{"/missing", fiber.StatusNotFound, "Not Found"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.message, body["message"])
			assert.Equal(t, false, body["success"])
		})
	}

	assert.Contains(t, logs.String(), "driver detail")
	assert.Contains(t, logs.String(), "panic recovered")
}
