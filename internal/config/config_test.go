package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/foodgram")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(PathEnvVar, "")
	t.Chdir(t.TempDir())
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/foodgram", cfg.DatabaseURL)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, 6, cfg.PageSize)
	require.Equal(t, 1, cfg.WorkerCount)
	require.Equal(t, "/media/", cfg.MediaURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(PathEnvVar, "")
	t.Chdir(t.TempDir())
	setRequired(t)
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, 10, cfg.PageSize)
	require.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foodgram.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9090\"\nworker_count: 4\n"), 0o600))
	t.Setenv(PathEnvVar, path)
	setRequired(t)
	t.Setenv("WORKER_COUNT", "2")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.ListenAddr)
	// env wins over the file
	require.Equal(t, 2, cfg.WorkerCount)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(PathEnvVar, filepath.Join(t.TempDir(), "nope.yaml"))
	setRequired(t)
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	err := cfg.Validate()
	require.ErrorContains(t, err, "DATABASE_URL")
	require.ErrorContains(t, err, "REDIS_ADDR")
	require.ErrorContains(t, err, "JWT_SECRET")

	cfg.DatabaseURL, cfg.RedisAddr, cfg.JWTSecret = "d", "r", "s"
	require.NoError(t, cfg.Validate())

	cfg.PageSize = 0
	require.ErrorContains(t, cfg.Validate(), "PAGE_SIZE")
	cfg.PageSize = 6
	cfg.WorkerCount = -1
	require.ErrorContains(t, cfg.Validate(), "WORKER_COUNT")
	cfg.WorkerCount = 1
	cfg.RedisDB = -1
	require.ErrorContains(t, cfg.Validate(), "REDIS_DB")
}
