package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const (
	HeaderRequestID    = "X-Request-ID"
	requestIDLocalsKey = "requestid"
)

// RequestID reuses an incoming X-Request-ID or mints one, and echoes it on
// the response.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     HeaderRequestID,
		Generator:  uuid.NewString,
		ContextKey: requestIDLocalsKey,
	})
}

// GetRequestID returns the id assigned by RequestID, or a fresh one when the
// middleware did not run.
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDLocalsKey).(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	c.Set(HeaderRequestID, id)
	return id
}
