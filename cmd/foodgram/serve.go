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

	"foodgram/internal/api"
	"foodgram/internal/logging"
	"foodgram/internal/media"
	"foodgram/internal/metrics"
	"foodgram/internal/router"
	"foodgram/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx)
		},
	}
}

func run(ctx context.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.JSONSerializer = api.JSONSerializer{}
	e.Use(middleware.Recover())
	e.Use(logging.RequestLogger())
	e.Use(metrics.Middleware)

	router.Setup(e, router.Deps{
		DB:        db,
		Cache:     rdb,
		Tokens:    service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, rdb),
		Storage:   media.NewLocalStorage(cfg.MediaRoot, cfg.MediaURL),
		Workers:   wp,
		MediaRoot: cfg.MediaRoot,
		PageSize:  cfg.PageSize,
	})

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", cfg.ListenAddr).Msg("server starting")
		errCh <- startServer(e, cfg.ListenAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
