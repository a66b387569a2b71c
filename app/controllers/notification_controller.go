package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/UrbanWatchHQ/BillboardWatch/app/repository"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/usercontext"
)

// HandleListNotifications returns the user's in-app notifications,
// newest first, with the unread count.
func HandleListNotifications(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication_missing", "message": "login required"})
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	repo := repository.GetGlobalFactory().GetNotificationRepository()
	notifications, err := repo.GetByUserID(userCtx.UserID, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load notifications"})
	}
	unread, err := repo.CountUnread(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load notifications"})
	}

	return c.JSON(fiber.Map{"notifications": notifications, "unread": unread})
}

// HandleMarkNotificationRead marks one of the user's notifications read.
func HandleMarkNotificationRead(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication_missing", "message": "login required"})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Invalid notification id"})
	}

	repo := repository.GetGlobalFactory().GetNotificationRepository()
	if err := repo.MarkAsRead(uint(id), userCtx.UserID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Notification not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
