package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Jorge-Nunes/noty-sub001/internal/api/handler"
	"github.com/Jorge-Nunes/noty-sub001/internal/api/middleware"
	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
	"github.com/Jorge-Nunes/noty-sub001/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, rdb *redis.Client, bc *backend.Client, registry ports.SessionRegistry, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("noty"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(registry, cfg.SessionTTL, cfg.Env == "production")
	clientsHandler := handler.NewClientsHandler(bc)
	paymentsHandler := handler.NewPaymentsHandler(bc)
	settingsHandler := handler.NewSettingsHandler(bc)
	templatesHandler := handler.NewTemplatesHandler(bc)
	automationHandler := handler.NewAutomationHandler(bc)
	webhooksHandler := handler.NewWebhooksHandler(bc)
	trackingHandler := handler.NewTrackingHandler(bc)
	dashboardHandler := handler.NewDashboardHandler(bc)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(rdb, bc)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)

	// --- Protected surface ---
	// Session resolution waits for startup verification; the guards decide per
	// route with the role order viewer < operator < admin.
	api := e.Group("", middleware.ResolveSession(registry))
	authed := api.Group("", middleware.Authenticated())

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)
	authed.GET("/dashboard/summary", dashboardHandler.Summary)

	viewer := middleware.MinRole(domain.RoleViewer)
	operator := middleware.MinRole(domain.RoleOperator)
	admin := middleware.MinRole(domain.RoleAdmin)

	authed.GET("/clients", clientsHandler.List, viewer)
	authed.GET("/clients/:id", clientsHandler.Get, viewer)
	authed.POST("/clients", clientsHandler.Create, operator)
	authed.PUT("/clients/:id", clientsHandler.Update, operator)
	authed.DELETE("/clients/:id", clientsHandler.Delete, admin)

	authed.GET("/payments", paymentsHandler.List, viewer)
	authed.GET("/payments/:id", paymentsHandler.Get, viewer)
	authed.POST("/payments/:id/charge", paymentsHandler.Charge, operator)
	authed.POST("/payments/:id/mark-paid", paymentsHandler.MarkPaid, operator)

	authed.GET("/settings", settingsHandler.List, admin)
	authed.GET("/settings/:key", settingsHandler.Get, admin)
	authed.PUT("/settings/:key", settingsHandler.Upsert, admin)

	authed.GET("/templates", templatesHandler.List, viewer)
	authed.GET("/templates/:id", templatesHandler.Get, viewer)
	authed.POST("/templates/:id/preview", templatesHandler.Preview, viewer)
	authed.POST("/templates", templatesHandler.Create, operator)
	authed.PUT("/templates/:id", templatesHandler.Update, operator)
	authed.DELETE("/templates/:id", templatesHandler.Delete, operator)

	authed.GET("/automation/runs", automationHandler.ListRuns, viewer)
	authed.GET("/automation/runs/:id", automationHandler.GetRun, viewer)
	authed.POST("/automation/runs", automationHandler.Trigger, operator)

	authed.GET("/webhooks/activity", webhooksHandler.ListActivity, viewer)
	authed.GET("/webhooks/activity/:id", webhooksHandler.Get, viewer)

	authed.GET("/tracking/integration", trackingHandler.Get, operator)
	authed.PUT("/tracking/integration", trackingHandler.Update, admin)
	authed.POST("/tracking/integration/test", trackingHandler.TestConnection, admin)
	authed.POST("/tracking/vehicles/:plate/block", trackingHandler.BlockVehicle, operator)
	authed.POST("/tracking/vehicles/:plate/unblock", trackingHandler.UnblockVehicle, operator)

	return e
}
