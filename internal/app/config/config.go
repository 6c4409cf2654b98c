// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"bookshelf_backend/internal/platform/db"
	jwtmw "bookshelf_backend/internal/platform/jwt"
	"bookshelf_backend/internal/platform/logging"
	"bookshelf_backend/internal/platform/password"
	"bookshelf_backend/internal/platform/redis"
)

// HTTP はHTTPサーバーの設定です。
type HTTP struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadyTimeout      time.Duration `env:"HTTP_READY_TIMEOUT" envDefault:"2s"`
	CORSOrigins       []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

// Auth は認証エンドポイントの振る舞いを設定します。
type Auth struct {
	UniformLoginErrors bool `env:"AUTH_UNIFORM_LOGIN_ERRORS" envDefault:"false"`
}

// Config は全セクションをまとめた設定です。
type Config struct {
	HTTP     HTTP
	DB       db.Config
	Redis    redis.Config
	JWT      jwtmw.Config
	Password password.Config
	Auth     Auth
	Log      logging.Config
}

// Load は .env（存在すれば）を読み込んだ後、環境変数から設定を構築します。
// JWT_KEY が未設定または32バイト未満の場合はエラーを返します。
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return FromEnv()
}

// FromEnv parses the process environment without touching .env.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	var errs []error
	if err := c.JWT.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.DB.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Password.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("password: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("config: HTTP_SHUTDOWN_TIMEOUT must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
