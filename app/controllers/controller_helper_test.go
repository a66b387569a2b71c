package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientIPFor(t *testing.T, headers map[string]string) string {
	t.Helper()

	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetClientIP(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	_, err := app.Test(req, -1)
	require.NoError(t, err)
	return got
}

func TestGetClientIPCloudflareHeaderWins(t *testing.T) {
	ip := clientIPFor(t, map[string]string{
		"CF-Connecting-IP": "203.0.113.9",
		"X-Forwarded-For":  "198.51.100.1",
	})
	assert.Equal(t, "203.0.113.9", ip)
}

func TestGetClientIPForwardedForFirstEntry(t *testing.T) {
	ip := clientIPFor(t, map[string]string{
		"X-Forwarded-For": "198.51.100.1, 10.0.0.2",
	})
	assert.Equal(t, "198.51.100.1", ip)
}

func TestGetClientIPFallsBackToSocket(t *testing.T) {
	ip := clientIPFor(t, nil)
	assert.NotEmpty(t, ip)
}
