package apiv1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/notify"
)

// APIServer implements the public v1 endpoints.
type APIServer struct {
	notifier *notify.Service
}

// NewAPIServer creates a new API server instance.
func NewAPIServer(notifier *notify.Service) *APIServer {
	return &APIServer{notifier: notifier}
}

// Pong is the ping response body.
type Pong struct {
	Ping string `json:"ping"`
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// SendReportEmailRequest is the notification endpoint request body.
// reportData carries the stored report row; govEmail optionally
// overrides the default authority recipient.
type SendReportEmailRequest struct {
	ReportID   string                 `json:"reportId"`
	ReportData *notify.ReportSnapshot `json:"reportData"`
	GovEmail   string                 `json:"govEmail,omitempty"`
}

// PostSendReportEmail renders and delivers the authority notification
// for one report. Callers from other origins need the permissive CORS
// headers attached by the router.
func (s *APIServer) PostSendReportEmail(c *fiber.Ctx) error {
	var req SendReportEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
			"message": "Failed to send report email",
		})
	}

	if req.ReportID == "" || req.ReportData == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "reportId and reportData are required",
			"message": "Failed to send report email",
		})
	}

	receipt, err := s.notifier.SendReportEmail(req.ReportID, req.ReportData, req.GovEmail)
	if err != nil {
		log.Errorf("Report email for %s failed: %v", req.ReportID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to send report email",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   "Report email sent successfully to government authorities",
		"emailId":   receipt.EmailID,
		"reportId":  receipt.ReportID,
		"sentTo":    receipt.SentTo,
		"timestamp": receipt.Timestamp.UTC().Format(time.RFC3339),
	})
}
