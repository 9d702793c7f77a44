package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"foodgram/internal/cache"
	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/model"
	"foodgram/internal/store"
	"foodgram/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	loadConfig = config.Load
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn = database.RollbackAll
	newWorkerPool = worker.NewPool
	createTag = store.CreateTag
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
}

func testConfig() (*config.Config, error) {
	return &config.Config{
		DatabaseURL: "db",
		RedisAddr:   "127",
		RedisDB:     1,
		JWTSecret:   "secret",
		TokenTTL:    time.Hour,
		ListenAddr:  ":0",
		MediaRoot:   "media",
		MediaURL:    "/media/",
		PageSize:    6,
		WorkerCount: 2,
		LogLevel:    "disabled",
	}, nil
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := make(map[string]bool)
	loadConfig = testConfig
	runMigrationsFn = func(url string) error {
		require.Equal(t, "db", url)
		called["migrate"] = true
		return nil
	}
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	newWorkerPool = func(n int) worker.Pool {
		require.Equal(t, 2, n)
		return worker.NewPool(n)
	}
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.NotNil(t, e.Validator)
		return nil
	}

	require.NoError(t, run(context.Background()))
	for _, k := range []string{"migrate", "pgx", "redis", "start", "dbClose", "redisClose"} {
		require.True(t, called[k], k)
	}
}

func TestRunShutdownOnCancel(t *testing.T) {
	t.Cleanup(restoreGlobals)
	loadConfig = testConfig
	runMigrationsFn = func(string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	started := make(chan struct{})
	block := make(chan struct{})
	startServer = func(*echo.Echo, string) error {
		close(started)
		<-block
		return nil
	}
	t.Cleanup(func() { close(block) })

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	require.NoError(t, run(ctx))
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)

	loadConfig = func() (*config.Config, error) { return nil, errors.New("JWT_SECRET is not set") }
	require.ErrorContains(t, run(context.Background()), "JWT_SECRET")

	loadConfig = testConfig
	runMigrationsFn = func(string) error { return errors.New("dirty") }
	require.ErrorContains(t, run(context.Background()), "dirty")

	runMigrationsFn = func(string) error { return nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("refused") }
	require.ErrorContains(t, run(context.Background()), "refused")

	var closed bool
	newPgxPool = func(context.Context, string) (database.DB, error) {
		return &database.FakeDB{CloseFn: func() { closed = true }}, nil
	}
	newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, errors.New("no redis") }
	require.ErrorContains(t, run(context.Background()), "no redis")
	require.True(t, closed)

	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	startServer = func(*echo.Echo, string) error { return errors.New("address in use") }
	require.ErrorContains(t, run(context.Background()), "address in use")
}

func TestMigrateCommands(t *testing.T) {
	for _, tc := range []struct {
		args    []string
		fail    error
		wantErr string
	}{
		{[]string{"migrate", "up"}, nil, ""},
		{[]string{"migrate", "up"}, errors.New("dirty database version 1"), "migrate up: dirty database version 1"},
		{[]string{"migrate", "down"}, nil, ""},
		{[]string{"migrate", "down"}, errors.New("boom"), "migrate down: boom"},
	} {
		t.Run(tc.args[1], func(t *testing.T) {
			t.Cleanup(restoreGlobals)
			loadConfig = testConfig
			var ran []string
			record := func(dir string) func(string) error {
				return func(url string) error {
					require.Equal(t, "db", url)
					ran = append(ran, dir)
					return tc.fail
				}
			}
			runMigrationsFn = record("up")
			rollbackAllFn = record("down")

			_, err := execute(tc.args...)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, []string{tc.args[1]}, ran)
		})
	}

	t.Run("config error", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		loadConfig = func() (*config.Config, error) { return nil, errors.New("missing JWT secret") }
		rollbackAllFn = func(string) error {
			t.Fatal("must not touch the database")
			return nil
		}
		_, err := execute("migrate", "down")
		require.ErrorContains(t, err, "missing JWT secret")
	})
}

func TestTagsCreateCommand(t *testing.T) {
	t.Cleanup(restoreGlobals)
	loadConfig = testConfig
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{}, nil }

	t.Run("invalid color", func(t *testing.T) {
		createTag = func(context.Context, database.Querier, *model.Tag) error {
			t.Fatal("must not reach the database")
			return nil
		}
		_, err := execute("tags", "create", "--name", "Lunch", "--color", "green", "--slug", "lunch")
		require.ErrorContains(t, err, "color")
	})

	t.Run("duplicate slug", func(t *testing.T) {
		createTag = func(context.Context, database.Querier, *model.Tag) error { return store.ErrDuplicate }
		_, err := execute("tags", "create", "--name", "Lunch", "--color", "#49B64E", "--slug", "lunch")
		require.ErrorContains(t, err, `"lunch" already exists`)
	})

	t.Run("ok", func(t *testing.T) {
		createTag = func(_ context.Context, _ database.Querier, tag *model.Tag) error {
			require.Equal(t, model.Tag{Name: "Lunch", Color: "#49B64E", Slug: "lunch"}, *tag)
			tag.ID = 3
			return nil
		}
		out, err := execute("tags", "create", "--name", "Lunch", "--color", "#49B64E", "--slug", "lunch")
		require.NoError(t, err)
		require.Contains(t, out, "created tag 3 (lunch)")
	})
}
