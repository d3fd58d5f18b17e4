package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-timetable-api/api/swagger"
	"github.com/noah-isme/sma-timetable-api/internal/handler"
	internalmiddleware "github.com/noah-isme/sma-timetable-api/internal/middleware"
	"github.com/noah-isme/sma-timetable-api/internal/repository"
	"github.com/noah-isme/sma-timetable-api/internal/scheduler"
	"github.com/noah-isme/sma-timetable-api/internal/service"
	"github.com/noah-isme/sma-timetable-api/pkg/cache"
	"github.com/noah-isme/sma-timetable-api/pkg/config"
	"github.com/noah-isme/sma-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-timetable-api/pkg/middleware/requestid"
)

// @title SMA Timetable API
// @version 1.0.0
// @description Weekly timetable generation with clash detection and document export
// @BasePath /
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

	store, closeStore := newSessionStore(cfg, logr)
	defer closeStore()

	metrics := service.NewMetricsService()
	validate := validator.New()

	genCfg := scheduler.Config{
		AttemptsPerSession: cfg.Scheduler.AttemptsPerSession,
		MaxSuggestions:     cfg.Scheduler.MaxSuggestions,
		DefaultSessions:    cfg.Scheduler.DefaultSessions,
		Logger:             logr.Named("scheduler"),
	}
	if cfg.Scheduler.Seed != 0 {
		genCfg.NewRand = scheduler.SeededRand(cfg.Scheduler.Seed)
	}
	generator := scheduler.NewGenerator(genCfg)

	timetableRepo := repository.NewTimetableRepository(store, cfg.Sessions.TTL)
	memoryRepo := repository.NewMemoryRepository(store, cfg.Sessions.MemoryTTL)

	timetableSvc := service.NewTimetableService(generator, timetableRepo, memoryRepo, metrics, validate, logr)
	memorySvc := service.NewMemoryService(memoryRepo, validate, logr)
	exportSvc := service.NewExportService(timetableSvc, service.ExportConfig{Title: cfg.Export.Title}, logr, nil, nil, nil)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.WithResponseMeta())
	if cfg.Metrics.Enabled {
		r.Use(internalmiddleware.Metrics(metrics))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Timetable:      handler.NewTimetableHandler(timetableSvc),
		Memory:         handler.NewMemoryHandler(memorySvc),
		Export:         handler.NewExportHandler(exportSvc),
		Metrics:        handler.NewMetricsHandler(metrics, store),
		MetricsEnabled: cfg.Metrics.Enabled,
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "session_backend", cfg.Sessions.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// newSessionStore falls back to the in-process store when Redis is unreachable.
func newSessionStore(cfg *config.Config, logr *zap.Logger) (repository.Store, func()) {
	if cfg.Sessions.Backend != config.SessionBackendRedis {
		return repository.NewMemoryStore(), func() {}
	}
	client, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, using in-memory session store", zap.Error(err))
		return repository.NewMemoryStore(), func() {}
	}
	store := repository.NewRedisStore(client, logr.Named("session_store"))
	return store, func() {
		if err := store.Close(); err != nil {
			logr.Warn("close redis", zap.Error(err))
		}
	}
}
