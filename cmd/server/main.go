package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fplhub/fpl-league-hub/internal/api"
	"github.com/fplhub/fpl-league-hub/internal/api/handlers"
	"github.com/fplhub/fpl-league-hub/internal/api/middleware"
	"github.com/fplhub/fpl-league-hub/internal/fpl"
	"github.com/fplhub/fpl-league-hub/internal/services"
	"github.com/fplhub/fpl-league-hub/pkg/config"
	"github.com/fplhub/fpl-league-hub/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger("", cfg.IsDevelopment())
	logger.WithService("fpl-league-hub").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
		"league_id":   cfg.LeagueID,
	}).Info("Starting FPL League Hub")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis. The service stays up without it; caching is simply
	// disabled and every request goes upstream.
	var cacheService *services.CacheService
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithService("fpl-league-hub").Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithService("fpl-league-hub").WithError(err).Warn("Redis unavailable, running without cache")
		redisClient = nil
	} else {
		cacheService = services.NewCacheService(redisClient)
		defer redisClient.Close()
	}

	// FPL client and the player points memo it backs.
	var clientCache fpl.Cache
	if cacheService != nil {
		clientCache = cacheService
	}
	fplClient := fpl.NewClient(fpl.ClientOptions{
		BaseURL:                 cfg.FPLBaseURL,
		RequestTimeout:          cfg.RequestTimeout,
		MaxRetries:              cfg.MaxRetries,
		RateLimit:               cfg.FPLRateLimit,
		CircuitBreakerThreshold: cfg.CircuitBreakerThreshold,
		BootstrapTTL:            cfg.BootstrapCacheTTL,
		LeagueTTL:               cfg.LeagueCacheTTL,
		GwDataTTL:               cfg.GwDataCacheTTL,
	}, clientCache, structuredLogger)
	pointsService := fpl.NewPointsService(fplClient, cfg.PlayerPointsCacheSize)

	leagueService := services.NewLeagueService(cfg, fplClient, pointsService, structuredLogger)

	var refresher *services.RefresherService
	if cfg.EnableBackgroundRefresh {
		refresher = services.NewRefresherService(leagueService, structuredLogger, cfg.RefreshInterval)
		if err := refresher.Start(); err != nil {
			logger.WithService("fpl-league-hub").Fatalf("Failed to start refresher: %v", err)
		}
		defer refresher.Stop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(structuredLogger))

	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, leagueService, cacheService)

	healthHandler := handlers.NewHealthHandler(cacheService)
	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)
	router.HEAD("/ready", healthHandler.GetReady)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("fpl-league-hub").WithField("port", cfg.Port).Info("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("fpl-league-hub").Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("fpl-league-hub").Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithService("fpl-league-hub").Fatalf("Server forced to shutdown: %v", err)
	}

	logger.WithService("fpl-league-hub").Info("Server exited")
}
