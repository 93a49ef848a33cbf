package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	assert.Equal(t, &Pagination{Page: 2, Limit: 10, Total: 21, Pages: 3}, NewPagination(2, 10, 21))
	assert.Equal(t, 0, NewPagination(1, 10, 0).Pages)
	assert.Equal(t, 0, NewPagination(1, 0, 5).Pages)
}

func decode(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return resp.StatusCode, m
}

func TestEnvelopes(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c fiber.Ctx) error { return Success(c, fiber.StatusOK, "", nil) })
	app.Get("/page", func(c fiber.Ctx) error {
		return Paginated(c, "", []int{1}, NewPagination(1, 10, 1))
	})
	app.Get("/err", func(c fiber.Ctx) error { return Error(c, fiber.StatusConflict, "", nil) })

	status, body := decode(t, app, "/ok")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "data")
	assert.Nil(t, body["data"])

	_, body = decode(t, app, "/page")
	assert.Equal(t, map[string]any{"page": 1.0, "limit": 10.0, "total": 1.0, "pages": 1.0}, body["pagination"])

	status, body = decode(t, app, "/err")
	assert.Equal(t, 409, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, MessageConflict, body["message"])
	assert.Equal(t, MessageConflict, body["error"])
}
