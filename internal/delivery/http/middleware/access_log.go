package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	HeaderRequestID = "X-Request-ID"
	CtxRequestIDKey = "request_id"
)

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error middleware sits inside this one and has already
			// rendered the response; report what the client received.
			status = statusOf(err, status)
		}

		entry := m.logger.WithFields(log.Fields{
			"request_id": rid,
			"ip":         c.IP(),
			"method":     c.Method(),
			"path":       c.OriginalURL(),
			"status":     status,
			"latency":    time.Since(start).String(),
			"resp_bytes": len(c.Response().Body()),
			"ua":         c.Get(fiber.HeaderUserAgent),
		})
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Warn("HTTP access")
		default:
			entry.Info("HTTP access")
		}

		return err
	}
}

func RequestID(c fiber.Ctx) string {
	rid, _ := c.Locals(CtxRequestIDKey).(string)
	return rid
}

func statusOf(err error, fallback int) int {
	status, _, _ := normalizeError(err)
	if status == 0 {
		return fallback
	}
	return status
}
