package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Amrtamer711/ironforge-sub001/api/swagger"
	"github.com/Amrtamer711/ironforge-sub001/internal/handler"
	"github.com/Amrtamer711/ironforge-sub001/internal/middleware"
	"github.com/Amrtamer711/ironforge-sub001/internal/repository"
	"github.com/Amrtamer711/ironforge-sub001/internal/service"
	"github.com/Amrtamer711/ironforge-sub001/pkg/cache"
	"github.com/Amrtamer711/ironforge-sub001/pkg/config"
	"github.com/Amrtamer711/ironforge-sub001/pkg/database"
	"github.com/Amrtamer711/ironforge-sub001/pkg/export"
	"github.com/Amrtamer711/ironforge-sub001/pkg/logger"
	corsmiddleware "github.com/Amrtamer711/ironforge-sub001/pkg/middleware/cors"
	reqidmiddleware "github.com/Amrtamer711/ironforge-sub001/pkg/middleware/requestid"
	"github.com/Amrtamer711/ironforge-sub001/pkg/storage"
)

// @title Shoot Scheduler API
// @version 1.0.0
// @description Weekly shoot-day scheduling for Abu Dhabi campaign filming
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, holiday caching disabled", "error", err)
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Scheduler.HolidayCacheTTL, logr, redisClient != nil)

	schedCfg, err := service.NewSchedulingConfig(cfg.Scheduler)
	if err != nil {
		logr.Sugar().Fatalw("invalid scheduler configuration", "error", err)
	}

	validate := validator.New()

	campaignRepo := repository.NewCampaignRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)

	workdaySvc := service.NewWorkdayService(holidayRepo, cacheSvc, cfg.Scheduler.HolidayCacheTTL, logr)
	notifySvc := service.NewNotificationService(cfg.Notifications, logr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifySvc.Start(ctx)
	defer notifySvc.Stop()

	schedulerSvc := service.NewSchedulerService(campaignRepo, campaignRepo, workdaySvc, notifySvc, schedCfg, metricsSvc, validate, logr)
	campaignSvc := service.NewCampaignService(campaignRepo, schedulerSvc, validate, logr)
	holidaySvc := service.NewHolidayService(holidayRepo, workdaySvc, validate, logr)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.Directory)
		if err != nil {
			logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SigningSecret, cfg.Exports.ResultTTL)
		exportSvc = service.NewExportService(store, signer, service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Exports.ResultTTL,
		}, logr, export.NewCSVExporter(), export.NewPDFExporter())
	}

	scheduleHandler := handler.NewScheduleHandler(schedulerSvc, exportSvc)
	campaignHandler := handler.NewCampaignHandler(campaignSvc)
	holidayHandler := handler.NewHolidayHandler(holidaySvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/schedule/runs", scheduleHandler.Run)
		api.POST("/schedule/filming-date", scheduleHandler.AdviseFilmingDate)
		api.GET("/schedule/plan", scheduleHandler.Plan)
		api.POST("/schedule/plan/export", scheduleHandler.ExportPlan)
		api.GET("/schedule/export/:token", scheduleHandler.DownloadExport)

		api.POST("/campaigns", campaignHandler.Create)
		api.GET("/campaigns", campaignHandler.List)
		api.GET("/campaigns/:taskId", campaignHandler.Get)

		api.GET("/holidays", holidayHandler.List)
		api.POST("/holidays", holidayHandler.Create)
		api.DELETE("/holidays/:id", holidayHandler.Delete)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
}
