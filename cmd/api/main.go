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

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/coursepulse/coursepulse-api/api/swagger"
	"github.com/coursepulse/coursepulse-api/internal/handler"
	"github.com/coursepulse/coursepulse-api/internal/repository"
	"github.com/coursepulse/coursepulse-api/internal/service"
	"github.com/coursepulse/coursepulse-api/pkg/cache"
	"github.com/coursepulse/coursepulse-api/pkg/config"
	"github.com/coursepulse/coursepulse-api/pkg/database"
	"github.com/coursepulse/coursepulse-api/pkg/export"
	"github.com/coursepulse/coursepulse-api/pkg/logger"
)

// @title CoursePulse API
// @version 1.0.0
// @description Learning analytics and gamification API for course instructors
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close()

	// Redis is optional: reports fall back to direct computation and the
	// leaderboard to absent positions when it is down.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching and leaderboard disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, redisClient != nil)

	courseRepo := repository.NewCourseRepository(db, cfg.Analytics.MaxCoursesPerReport, cfg.Analytics.MaxEnrollmentsPerCourse)
	userRepo := repository.NewUserRepository(db)
	streakRepo := repository.NewStreakRepository(db)
	leaderboardRedis := redisClient
	if !cfg.Leaderboard.Enabled {
		leaderboardRedis = nil
	}
	leaderboardRepo := repository.NewLeaderboardRepository(leaderboardRedis, "leaderboard:"+cfg.Leaderboard.Category)

	validate := validator.New()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	reportSvc := service.NewReportService(courseRepo, cacheSvc, metricsSvc, cfg.Analytics, logr)
	gamificationSvc := service.NewGamificationService(courseRepo, streakRepo, leaderboardRepo, cacheSvc, cfg.Leaderboard.Category, cfg.Analytics.CacheTTL, logr)
	exportSvc := service.NewExportService(courseRepo, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	router := handler.NewRouter(handler.RouterDeps{
		Config:       cfg,
		Logger:       logr,
		Auth:         authSvc,
		Reports:      reportSvc,
		Gamification: gamificationSvc,
		Exports:      exportSvc,
		Metrics:      metricsSvc,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
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

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logr.Warn("redis close failed", zap.Error(err))
		}
	}
	logr.Info("server stopped")
}
