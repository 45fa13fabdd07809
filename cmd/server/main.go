package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itrack_admin/config"
	"itrack_admin/db"
	"itrack_admin/handlers"
	"itrack_admin/logging"
	"itrack_admin/middleware"
	"itrack_admin/models"
	"itrack_admin/services"
	"itrack_admin/services/jobs"
	"itrack_admin/services/masterdata"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := logging.Init(cfg.Environment, cfg.LogLevel)

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.RegionDraft{}, &models.RegionExport{}, &models.AuditLog{}); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	services.InitializeStorage(cfg)
	handlers.SetMasterDataClient(masterdata.New(cfg.MasterDataURL, cfg.MasterDataTimeout))

	scheduler, err := jobs.StartScheduler(db.DB, cfg.DraftTTL, cfg.ExportTTL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to start job scheduler")
	}
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.LoadAPIToken(cfg.MasterDataToken))
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(middleware.AuditContext())
	e.Use(middleware.CSPNonce())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files (local exports are served from here too)
	e.Static("/static", "static")

	// Operational routes
	e.GET("/healthz", handlers.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/regions")
	})

	// Region screens
	csrf := middleware.CSRF(cfg.IsProduction())
	e.GET("/htmx/regions", handlers.GetRegionsHTMX, csrf)
	e.GET("/audit-logs", handlers.GetAuditLogsHandler)

	regions := e.Group("/regions", csrf)
	regions.GET("", handlers.RegionsPageHandler)
	regions.GET("/new", handlers.NewRegionHandler)
	regions.POST("/export", handlers.ExportRegionsHandler, middleware.ExportRateLimiter.Middleware())
	regions.GET("/exports/:file", handlers.DownloadExportHandler)
	regions.GET("/:id/edit", handlers.EditRegionHandler)
	regions.GET("/:id/delete", handlers.DeleteRegionConfirmHandler)
	regions.GET("/:id/history", handlers.GetRegionHistoryHandler)
	regions.DELETE("/:id", handlers.DeleteRegionHandler, middleware.MutationRateLimiter.Middleware())

	// Editing sessions
	drafts := regions.Group("/drafts/:draft")
	drafts.GET("", handlers.ShowDraftHandler)
	drafts.GET("/states", handlers.GetDraftStatesHandler)
	drafts.GET("/districts", handlers.GetDraftDistrictsHandler)
	drafts.POST("/cascade", handlers.CascadeHandler)
	drafts.POST("/fields", handlers.UpdateDraftFieldsHandler)
	drafts.POST("/pincodes/toggle", handlers.TogglePincodeHandler)
	drafts.POST("/pincodes/select-all", handlers.SelectAllPincodesHandler)
	drafts.POST("/save", handlers.SaveDraftHandler, middleware.MutationRateLimiter.Middleware())
	drafts.DELETE("", handlers.DiscardDraftHandler)

	// Start server
	go func() {
		logger.WithField("port", cfg.ServerPort).Info("Starting server")
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}
	logger.Info("Server stopped")
}
