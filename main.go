package main

import (
	"fmt"
	"log"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/UrbanWatchHQ/BillboardWatch/app/repository"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/cache"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/database"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/digest"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/env"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/notify"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/router"
)

func main() {
	app := NewApplication()

	daily := digest.New(
		repository.GetGlobalFactory().GetReportRepository(),
		notify.NewServiceFromEnv(),
	)
	if err := daily.Start(); err != nil {
		log.Printf("Daily digest disabled: %v", err)
	}
	defer daily.Stop()

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	app := fiber.New(fiber.Config{
		BodyLimit: 52428800, // 50 MiB, six evidence images at most
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}
