package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSurviveMixedTraffic(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/items", ok)
	app.Post("/items", ok)
	app.Put("/items/:id", ok)
	app.Delete("/items/:id", ok)
	app.Get("/metrics", MetricsHandler())

	calls := []struct{ method, path string }{
		{http.MethodGet, "/items"},
		{http.MethodDelete, "/items/1"},
		{http.MethodPost, "/items"},
		{http.MethodPut, "/items/2"},
		{http.MethodGet, "/items"},
		{http.MethodDelete, "/items/3"},
		{http.MethodGet, "/missing"},
	}
	for i := 0; i < 3; i++ {
		for _, c := range calls {
			resp, err := app.Test(httptest.NewRequest(c.method, c.path, nil), -1)
			require.NoError(t, err)
			resp.Body.Close()
		}
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	text := string(body)
	for _, want := range []string{
		`method="GET",route="/items",status="200"`,
		`method="DELETE",route="/items/:id",status="200"`,
		`method="PUT",route="/items/:id",status="200"`,
		`method="POST",route="/items",status="200"`,
	} {
		assert.Contains(t, text, want)
	}
}
