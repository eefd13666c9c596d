package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/route2rise/leaddesk/internal/api"
	"github.com/route2rise/leaddesk/internal/core/service"
	"github.com/route2rise/leaddesk/internal/infrastructure/config"
	mongodb "github.com/route2rise/leaddesk/internal/infrastructure/db/mongo"
	redisdb "github.com/route2rise/leaddesk/internal/infrastructure/db/redis"
	"github.com/route2rise/leaddesk/pkg/logger"

	_ "github.com/route2rise/leaddesk/docs" // swagger spec registration
)

const shutdownTimeout = 10 * time.Second

// @title           Route2Rise Lead Management API
// @version         1.0
// @description     Internal lead-management backend for the two founders.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Stores (owned here, injected below) ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	leadRepo := mongodb.NewLeadRepository(db)
	if err := leadRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure lead indexes")
	}

	// --- Services ---
	creds, err := service.NewStaticCredentialStore(cfg.FounderCredentials())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid founder credentials")
	}

	authService, err := service.NewAuthService(creds, cfg.JWTSecret, cfg.TokenTTL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("auth service configuration failed")
	}

	leadService := service.NewLeadService(leadRepo, log)
	dashboardService := service.NewDashboardService(leadRepo, redisdb.NewStatsCache(rdb), log)

	e := api.NewRouter(api.Dependencies{
		Mongo:       db,
		Redis:       rdb,
		AuthService: authService,
		Leads:       leadService,
		Dashboard:   dashboardService,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("leaddesk backend started")

	// --- Graceful shutdown ---
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect failed")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
}
