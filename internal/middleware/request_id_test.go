package middleware

import (
	"catalog/pkg/events"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(events.CorrelationIDFromContext(c.UserContext()))
	})
	return app
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")

	resp, err := newTestApp().Test(req)
	require.NoError(t, err)

	assert.Equal(t, "req-42", resp.Header.Get(RequestIDHeader))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "req-42", string(body))
}

func TestRequestIDIsGenerated(t *testing.T) {
	resp, err := newTestApp().Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	assert.Len(t, resp.Header.Get(RequestIDHeader), 36)
}
