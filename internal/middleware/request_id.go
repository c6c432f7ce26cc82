package middleware

import (
	"catalog/pkg/events"
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// NewRequestIDMiddleware propagates the caller's X-Request-ID, or assigns a
// fresh one, and stores it in the user context as the event correlation id.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := strings.TrimSpace(c.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		c.SetUserContext(events.WithCorrelationID(userCtx, requestID))
		c.Set(RequestIDHeader, requestID)

		return c.Next()
	}
}
