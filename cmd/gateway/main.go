package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Jorge-Nunes/noty-sub001/internal/api"
	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/service"
	"github.com/Jorge-Nunes/noty-sub001/internal/infrastructure/config"
	redisinfra "github.com/Jorge-Nunes/noty-sub001/internal/infrastructure/db/redis"
	"github.com/Jorge-Nunes/noty-sub001/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Local development convenience; in deployment the environment is real.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	bc, err := backend.New(cfg.Backend.BaseURL, backend.Options{
		HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout},
		Logger:     log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("backend client init failed")
	}

	if cfg.SessionSecret == "" {
		log.Fatal().Msg("SESSION_SECRET must be set")
	}

	vaults := redisinfra.NewVaultFactory(rdb, 0)
	registry := service.NewRegistry(vaults, bc.Auth(), cfg.SessionSecret, cfg.SessionTTL, log)

	e := api.NewRouter(cfg, rdb, bc, registry, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("gateway stopped")
	}
	log.Info().Msg("gateway stopped cleanly")
}
