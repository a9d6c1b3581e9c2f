package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"blog-backend/internal/errs"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 404, statusOf(fiber.ErrNotFound))
	assert.Equal(t, 403, statusOf(errs.Forbidden("no")))
	assert.Equal(t, 500, statusOf(io.EOF))
}

func TestInstrumentAndHandler(t *testing.T) {
	app := fiber.New()
	app.Use(Instrument())
	app.Get("/metrics", Handler())
	app.Get("/things/:id", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/things/42", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	SigninSuccess.Inc()

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, `http_request_duration_seconds_count{method="GET",route="/things/:id",status="200"}`), text)
	assert.Contains(t, text, "signin_success_total")
}
