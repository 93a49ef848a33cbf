package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"skill-hire/internal/domain/user"
	"skill-hire/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJWT struct {
	claims map[string]jwt.Claims
	errs   map[string]error
}

func (f fakeJWT) GenerateAccessToken(userID int64, email, role string) (string, error) {
	return "", nil
}

func (f fakeJWT) ValidateToken(token string) (jwt.Claims, error) {
	if err, ok := f.errs[token]; ok {
		return jwt.Claims{}, err
	}
	c, ok := f.claims[token]
	if !ok {
		return jwt.Claims{}, jwt.ErrTokenInvalid
	}
	return c, nil
}

type fakeLookup struct {
	users map[int64]user.User
	err   error
}

func (f fakeLookup) GetByID(_ context.Context, id int64) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func newAuthTestApp(lookup UserLookup, roles ...user.Role) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())

	tokens := fakeJWT{
		claims: map[string]jwt.Claims{
			"seeker":   {UserID: 1},
			"employer": {UserID: 2},
			"inactive": {UserID: 3},
			"ghost":    {UserID: 99},
		},
		errs: map[string]error{"expired": jwt.ErrTokenExpired},
	}
	auth := NewAuthMiddleware(tokens, lookup)

	final := func(c fiber.Ctx) error {
		u, _ := CurrentUser(c)
		return c.JSON(fiber.Map{"id": u.ID, "hash": u.PasswordHash})
	}
	if len(roles) > 0 {
		app.Get("/protected", auth.Middleware(), RequireRoles(roles...), final)
	} else {
		app.Get("/protected", auth.Middleware(), final)
	}
	return app
}

func defaultLookup() fakeLookup {
	return fakeLookup{users: map[int64]user.User{
		1: {ID: 1, Role: user.RoleJobSeeker, IsActive: true, PasswordHash: "secret"},
		2: {ID: 2, Role: user.RoleEmployer, IsActive: true},
		3: {ID: 3, Role: user.RoleJobSeeker, IsActive: false},
	}}
}

func doRequest(t *testing.T, app *fiber.App, setup func(r *http.Request)) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if setup != nil {
		setup(req)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func bearer(token string) func(r *http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(r *http.Request)
		status  int
		message string
	}{
		{name: "missing token", status: fiber.StatusUnauthorized, message: MsgAuthRequired},
		{name: "malformed header", setup: func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }, status: fiber.StatusUnauthorized, message: MsgAuthRequired},
		{name: "invalid token", setup: bearer("garbage"), status: fiber.StatusUnauthorized, message: MsgInvalidToken},
		{name: "expired token", setup: bearer("expired"), status: fiber.StatusUnauthorized, message: MsgTokenExpired},
		{name: "unknown user", setup: bearer("ghost"), status: fiber.StatusUnauthorized, message: MsgInvalidUser},
		{name: "inactive user", setup: bearer("inactive"), status: fiber.StatusUnauthorized, message: MsgInvalidUser},
	}

	app := newAuthTestApp(defaultLookup())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doRequest(t, app, tc.setup)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestAuthMiddleware_InactiveMatchesUnknown(t *testing.T) {
	app := newAuthTestApp(defaultLookup())

	s1, b1 := doRequest(t, app, bearer("inactive"))
	s2, b2 := doRequest(t, app, bearer("ghost"))

	assert.Equal(t, s1, s2)
	assert.Equal(t, b1, b2)
}

func TestAuthMiddleware_ValidTokenStoresUser(t *testing.T) {
	app := newAuthTestApp(defaultLookup())

	status, body := doRequest(t, app, bearer("seeker"))
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["id"])
	assert.Equal(t, "", body["hash"])
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	app := newAuthTestApp(defaultLookup())

	status, _ := doRequest(t, app, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: TokenCookie, Value: "employer"})
	})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAuthMiddleware_LookupFailureIsInternal(t *testing.T) {
	app := newAuthTestApp(fakeLookup{err: errors.New("connection refused")})

	status, body := doRequest(t, app, bearer("seeker"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestRequireRoles(t *testing.T) {
	app := newAuthTestApp(defaultLookup(), user.RoleEmployer, user.RoleAdmin)

	status, body := doRequest(t, app, bearer("seeker"))
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, MsgInsufficientAccess, body["message"])

	status, _ = doRequest(t, app, bearer("employer"))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireRoles_WithoutAuthentication(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/admin", RequireRoles(user.RoleAdmin), func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
