package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/abim/abim-backend/internal/config"
	"github.com/abim/abim-backend/internal/database"
	"github.com/abim/abim-backend/internal/logger"
	"github.com/abim/abim-backend/internal/repository"
	"github.com/abim/abim-backend/internal/service"
)

func main() {
	var (
		id     int
		active bool
	)
	flag.IntVar(&id, "id", 0, "Admin user ID")
	flag.BoolVar(&active, "active", false, "Set to true to reactivate, false to disable")
	flag.Parse()

	if id <= 0 {
		fmt.Println("Usage: set-admin-active -id <user id> [-active=true]")
		os.Exit(2)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL and Redis ───────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg, rdb, userRepo, log)

	if err := userRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fmt.Printf("Error: no admin with ID %d\n", id)
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Failed to update admin")
	}

	// A disabled account must not keep a working token.
	if !active {
		if err := authService.Logout(ctx, id); err != nil {
			log.Fatal().Err(err).Msg("Failed to drop admin session")
		}
	}

	fmt.Printf("Admin %d is now active=%t\n", id, active)
}
