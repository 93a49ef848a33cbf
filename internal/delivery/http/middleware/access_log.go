package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestIDKey = "request_id"
)

// quietPaths are polled by probes and scrapers and only logged on failure.
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// RequestID returns the id assigned to the current request.
func RequestID(c fiber.Ctx) string {
	rid, _ := c.Locals(CtxRequestIDKey).(string)
	return rid
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		dur := time.Since(start)
		status := statusOf(c, err)

		if _, quiet := quietPaths[c.Path()]; quiet && status < 400 {
			return err
		}

		var uid int64
		role := "-"
		if u, ok := CurrentUser(c); ok {
			uid, role = u.ID, u.Role.String()
		}

		m.logger.Printf(
			"[HTTP] %s %s | rid=%s status=%d latency=%s uid=%d role=%s ip=%s resp_bytes=%d",
			c.Method(), c.OriginalURL(), rid, status, dur.Round(time.Microsecond), uid, role,
			c.IP(), len(c.Response().Body()),
		)

		return err
	}
}

// statusOf reports the status the error middleware will eventually write.
func statusOf(c fiber.Ctx, err error) int {
	if err != nil {
		status, _, _ := normalizeError(err)
		return status
	}
	return c.Response().StatusCode()
}
