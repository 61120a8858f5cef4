package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abim/abim-backend/internal/config"
	"github.com/abim/abim-backend/internal/database"
	"github.com/abim/abim-backend/internal/handler"
	"github.com/abim/abim-backend/internal/logger"
	"github.com/abim/abim-backend/internal/repository"
	"github.com/abim/abim-backend/internal/router"
	"github.com/abim/abim-backend/internal/service"
	"github.com/abim/abim-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting ABİM Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	blogRepo := repository.NewBlogRepository(pool)
	bannerRepo := repository.NewBannerRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	activityService := service.NewActivityService(activityRepo, rdb, log)
	authService := service.NewAuthService(cfg, rdb, userRepo, log)
	courseService := service.NewCourseService(courseRepo, activityService, log)
	blogService := service.NewBlogService(blogRepo, activityService, log)
	bannerService := service.NewBannerService(bannerRepo)
	applicationService := service.NewApplicationService(applicationRepo, courseRepo, activityService, log)
	statsService := service.NewStatsService(applicationRepo, courseRepo, blogRepo)
	mediaService := service.NewMediaService(cfg)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:           handler.NewAuthHandler(authService, log),
		Course:         handler.NewCourseHandler(courseService, log),
		Blog:           handler.NewBlogHandler(blogService, log),
		Banner:         handler.NewBannerHandler(bannerService, log),
		Application:    handler.NewApplicationHandler(applicationService, log),
		Student:        handler.NewStudentHandler(applicationService, log),
		Dashboard:      handler.NewDashboardHandler(statsService, activityService, log),
		Media:          handler.NewMediaHandler(mediaService, cfg.MaxUploadBytes, log),
		ActivityStream: handler.NewActivityStreamHandler(handler.NewRedisFeed(rdb), activityService, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, rdb, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// Stop accepting new HTTP requests (5s timeout). Shutdown does not track
	// hijacked WebSocket connections; cancelling the base context ends them.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	cancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
