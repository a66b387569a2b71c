package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/UrbanWatchHQ/BillboardWatch/app/models"
	"github.com/UrbanWatchHQ/BillboardWatch/app/repository"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/database"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/feed"
)

// HandleAuthorityListReports lists reports for the authority dashboard
// with optional status, priority, city and date range filters.
func HandleAuthorityListReports(c *fiber.Ctx) error {
	filter := repository.ReportFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		City:     c.Query("city"),
		Offset:   c.QueryInt("offset", 0),
		Limit:    c.QueryInt("limit", 20),
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Status != "" && !models.IsValidStatus(filter.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Unknown status filter"})
	}
	if filter.Priority != "" && !models.IsValidPriority(filter.Priority) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Unknown priority filter"})
	}

	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "date_from must be RFC3339"})
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "date_to must be RFC3339"})
		}
		filter.DateTo = &t
	}

	repo := repository.GetGlobalFactory().GetReportRepository()
	reports, err := repo.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load reports"})
	}

	return c.JSON(fiber.Map{"reports": reports, "offset": filter.Offset, "limit": filter.Limit})
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// HandleAuthorityUpdateStatus moves a report through its lifecycle.
// Illegal transitions are rejected, and the reporter gets an in-app
// notification for every accepted change.
func HandleAuthorityUpdateStatus(c *fiber.Ctx) error {
	var req statusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Invalid request body"})
	}
	if !models.IsValidStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_request", "message": "Unknown status"})
	}

	repo := repository.GetGlobalFactory().GetReportRepository()
	report, err := repo.GetByPublicID(c.Params("publicID"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Report not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load report"})
	}

	if !report.CanTransitionTo(req.Status) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "invalid_transition",
			"message": fmt.Sprintf("Cannot move report from %s to %s", report.Status, req.Status),
		})
	}

	if err := repo.UpdateStatus(report.ID, req.Status, req.Notes); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "persistence_failed", "message": "Failed to update report status"})
	}
	log.Infof("Report %s moved from %s to %s by %s", report.PublicID, report.Status, req.Status, ExtractUsername(c))

	reportDeps.Feed.Publish(c.UserContext(), feed.Event{
		Event:    feed.EventUpdate,
		ReportID: report.ID,
		PublicID: report.PublicID,
		Status:   req.Status,
		Priority: report.Priority,
	})

	if report.ReporterID != nil {
		content := fmt.Sprintf("Your report %s is now %s", report.PublicID, req.Status)
		if req.Notes != "" {
			content += ": " + req.Notes
		}
		if err := models.CreateNotification(database.GetDB(), *report.ReporterID, "status_update", content, report.ID); err != nil {
			log.Warnf("Failed to create status notification for report %s: %v", report.PublicID, err)
		}
	}

	return c.JSON(fiber.Map{
		"public_id": report.PublicID,
		"status":    req.Status,
		"notes":     req.Notes,
	})
}

// HandleAuthorityStatistics aggregates report counts for the dashboard.
func HandleAuthorityStatistics(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetReportRepository()
	stats, err := repo.Statistics()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load statistics"})
	}
	return c.JSON(stats)
}
