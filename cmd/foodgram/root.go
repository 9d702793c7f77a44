package main

import (
	"foodgram/internal/cache"
	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/logging"
	"foodgram/internal/store"
	"foodgram/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	newWorkerPool   = worker.NewPool
	createTag       = store.CreateTag
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "foodgram",
		Short:        "Foodgram recipe sharing backend",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newTagsCmd())
	return root
}

// setup 載入設定並據此設定全域 logger
func setup() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return cfg, nil
}
