// Package config 依序從預設值、選用的 YAML 檔與環境變數載入服務設定，後者優先
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar 指定設定檔路徑的環境變數
const PathEnvVar = "CONFIG_PATH"

var DefaultPaths = []string{"config.yaml", "config.yml", "/etc/foodgram/config.yaml"}

type Config struct {
	DatabaseURL   string        `koanf:"database_url"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	JWTSecret     string        `koanf:"jwt_secret"`
	TokenTTL      time.Duration `koanf:"token_ttl"`
	ListenAddr    string        `koanf:"listen_addr"`
	MediaRoot     string        `koanf:"media_root"`
	MediaURL      string        `koanf:"media_url"`
	PageSize      int           `koanf:"page_size"`
	WorkerCount   int           `koanf:"worker_count"`
	LogLevel      string        `koanf:"log_level"`
	LogFormat     string        `koanf:"log_format"`
}

func defaults() Config {
	return Config{
		RedisDB:     0,
		TokenTTL:    24 * time.Hour,
		ListenAddr:  ":8080",
		MediaRoot:   "./media",
		MediaURL:    "/media/",
		PageSize:    6,
		WorkerCount: 1,
		LogLevel:    "info",
		LogFormat:   "json",
	}
}

// Load 組合設定；環境變數轉小寫後比對，所以 DATABASE_URL 對應 database_url
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate 一次回報所有缺少或超出範圍的設定
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is not set"))
	}
	if c.RedisAddr == "" {
		errs = append(errs, errors.New("REDIS_ADDR is not set"))
	}
	if c.RedisDB < 0 {
		errs = append(errs, fmt.Errorf("invalid REDIS_DB: %d", c.RedisDB))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("invalid TOKEN_TTL: %s", c.TokenTTL))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("invalid PAGE_SIZE: %d", c.PageSize))
	}
	if c.WorkerCount <= 0 {
		errs = append(errs, fmt.Errorf("invalid WORKER_COUNT: %d", c.WorkerCount))
	}
	return errors.Join(errs...)
}
