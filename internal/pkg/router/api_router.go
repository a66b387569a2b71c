package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	apiv1 "github.com/UrbanWatchHQ/BillboardWatch/internal/api/v1"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/constants"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/notify"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.APIRoute, limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer(notify.NewServiceFromEnv())

	v1.Get("/ping", apiServer.GetPing)

	// The notification endpoint is called cross-origin by dashboard
	// integrations, so it answers preflight requests for any origin.
	notifyCORS := cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "authorization, x-client-info, apikey, content-type",
		AllowMethods: "POST, OPTIONS",
	})
	v1.Options("/send-report-email", notifyCORS, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	v1.Post("/send-report-email", notifyCORS, apiServer.PostSendReportEmail)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
