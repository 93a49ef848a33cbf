package ws

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws/jobs", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	open := originChecker(nil)
	assert.True(t, open(req("https://evil.example")))

	star := originChecker([]string{"https://app.skillhire.com", "*"})
	assert.True(t, star(req("https://evil.example")))

	strict := originChecker([]string{"https://app.skillhire.com/", " http://localhost:3000 "})
	assert.True(t, strict(req("https://APP.skillhire.com")))
	assert.True(t, strict(req("http://localhost:3000")))
	assert.True(t, strict(req("")))
	assert.False(t, strict(req("https://evil.example")))
}

func TestHandleJobsWS_RequiresUpgrade(t *testing.T) {
	app := fiber.New()
	app.Get("/ws/jobs", NewHandler(NewHub(nil), nil, nil).HandleJobsWS)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws/jobs", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
