package middleware

import (
	"context"
	"errors"
	"strings"

	"skill-hire/internal/domain/user"
	"skill-hire/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserKey  = "auth_user"
	TokenCookie = "token"
)

const (
	MsgAuthRequired       = "Authentication required"
	MsgInvalidToken       = "Invalid token"
	MsgTokenExpired       = "Token expired"
	MsgInvalidUser        = "Invalid or inactive user"
	MsgInsufficientAccess = "Insufficient permissions"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
}

type AuthMiddleware struct {
	jwt   jwt.Service
	users UserLookup
}

func NewAuthMiddleware(jwtSvc jwt.Service, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc, users: users}
}

// Middleware authenticates the request and stores the loaded user under
// CtxUserKey. Unknown and deactivated users get the same response.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			token = strings.TrimSpace(c.Cookies(TokenCookie))
		}
		if token == "" {
			return NewAppError(fiber.StatusUnauthorized, MsgAuthRequired, nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, MsgTokenExpired, nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, MsgInvalidToken, nil, err)
		}

		u, err := m.users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return NewAppError(fiber.StatusUnauthorized, MsgInvalidUser, nil, err)
			}
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		if !u.IsActive {
			return NewAppError(fiber.StatusUnauthorized, MsgInvalidUser, nil, nil)
		}

		u.PasswordHash = ""
		c.Locals(CtxUserKey, u)
		return c.Next()
	}
}

// RequireRoles must run after Middleware.
func RequireRoles(roles ...user.Role) fiber.Handler {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c fiber.Ctx) error {
		u, ok := CurrentUser(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, MsgAuthRequired, nil, nil)
		}
		if _, ok := allowed[u.Role]; !ok {
			return NewAppError(fiber.StatusForbidden, MsgInsufficientAccess, nil, nil)
		}
		return c.Next()
	}
}

func CurrentUser(c fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(CtxUserKey).(user.User)
	return u, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
