package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/usercontext"
)

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	if userNameValue := c.Locals(usercontext.KeyUsername); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}
	return ""
}

// GetClientIP determines the actual client IP address considering proxies.
// Proxy headers win over the socket address.
func GetClientIP(c *fiber.Ctx) string {
	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	ipAddr := c.IP()
	// unwrap IPv4-mapped-IPv6 addresses (::ffff:192.168.1.1)
	if strings.HasPrefix(ipAddr, "::ffff:") && strings.Contains(ipAddr, ".") {
		return strings.TrimPrefix(ipAddr, "::ffff:")
	}
	return ipAddr
}
