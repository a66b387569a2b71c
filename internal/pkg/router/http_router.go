package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/UrbanWatchHQ/BillboardWatch/app/controllers"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/cache"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/constants"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/draft"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/evidence"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/feed"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/middleware"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/notify"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Wire the submission pipeline. A missing storage config leaves the
	// evidence store nil and submissions answer with configuration_error.
	var store *evidence.Store
	if cfg, err := evidence.LoadConfig(); err != nil {
		log.Warnf("Evidence storage not configured: %v", err)
	} else if s, err := evidence.NewStore(cfg); err != nil {
		log.Warnf("Evidence storage unavailable: %v", err)
	} else {
		store = s
	}

	drafts := draft.NewStore(cache.GetClient(), draft.DefaultTTL)
	controllers.InitReportController(controllers.ReportDeps{
		Evidence: store,
		Drafts:   drafts,
		Autosave: draft.NewAutosaver(drafts, draft.DefaultDebounce),
		Notifier: notify.NewServiceFromEnv(),
		Feed:     feed.NewPublisher(cache.GetClient()),
	})

	h.registerAccountRoutes(app)
	h.registerReportRoutes(app)
	h.registerAuthorityRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) registerAccountRoutes(app *fiber.App) {
	app.Post("/register", controllers.HandleRegister)
	app.Post("/login", controllers.HandleLogin)
	app.Post("/logout", controllers.HandleLogout)
	app.Get("/me", middleware.RequireAuth, controllers.HandleMe)

	app.Get("/notifications", middleware.RequireAuth, controllers.HandleListNotifications)
	app.Post("/notifications/:id/read", middleware.RequireAuth, controllers.HandleMarkNotificationRead)
}

func (h HttpRouter) registerReportRoutes(app *fiber.App) {
	reports := app.Group(constants.ReportsRoute, middleware.RequireAuth)
	reports.Post("/", controllers.HandleSubmitReport)
	reports.Get("/mine", controllers.HandleGetMyReports)
	reports.Get("/:publicID", controllers.HandleGetReport)

	drafts := app.Group(constants.DraftsRoute, middleware.RequireAuth)
	drafts.Get("/", controllers.HandleGetDraft)
	drafts.Put("/", controllers.HandleSaveDraft)
	drafts.Delete("/", controllers.HandleDeleteDraft)
}

func (h HttpRouter) registerAuthorityRoutes(app *fiber.App) {
	authority := app.Group(constants.AuthorityRoute, middleware.RequireAuthority)
	authority.Get("/reports", controllers.HandleAuthorityListReports)
	authority.Get("/reports/feed", controllers.HandleReportFeed)
	authority.Get("/reports/:publicID", controllers.HandleGetReport)
	authority.Patch("/reports/:publicID/status", controllers.HandleAuthorityUpdateStatus)
	authority.Get("/statistics", controllers.HandleAuthorityStatistics)
}
