package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/onlinecourse-service/internal/cache"
	"github.com/SAP-F-2025/onlinecourse-service/internal/config"
	"github.com/SAP-F-2025/onlinecourse-service/internal/handlers"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/onlinecourse-service/internal/services"
	"github.com/SAP-F-2025/onlinecourse-service/internal/utils"
	"github.com/SAP-F-2025/onlinecourse-service/internal/validator"
	"github.com/SAP-F-2025/onlinecourse-service/pkg"
	"github.com/SAP-F-2025/onlinecourse-service/web"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	if err := run(cfg, logger); err != nil {
		logger.LogError(err, "Server stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	slogger := utils.ToSlogLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// set up DB
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// session revocation store: redis when configured, process memory otherwise
	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, "onlinecourse", slogger)
	} else {
		logger.Warn("REDIS_URL not set, session revocations are kept in memory")
		cacheService = cache.NewMemoryCache()
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	serviceManager := services.NewServiceManager(
		postgres.NewRepository(db),
		cacheService,
		publisher,
		slogger,
		validator.New(),
		services.Options{
			JWTSecret:      cfg.JWTSecret,
			SessionTTL:     cfg.SessionTTL,
			PassingPercent: cfg.PassingPercent,
		},
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	tmpl, err := web.LoadTemplates()
	if err != nil {
		return err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery(), utils.ContextLogger(logger), utils.LoggerMiddleware(logger))

	handlers.NewHandlerManager(serviceManager, handlers.CookieConfig{
		Name:   cfg.SessionCookie,
		TTL:    cfg.SessionTTL,
		Secure: cfg.IsProduction(),
	}, logger).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
