// Package db opens the gorm connection used by every repository.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authentity "bookshelf_backend/internal/feature/auth/domain/entity"
	catalogentity "bookshelf_backend/internal/feature/catalog/domain/entity"
)

// Driver selects the SQL dialect.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config holds database connection settings.
type Config struct {
	Driver         Driver        `env:"DB_DRIVER" envDefault:"sqlite"`
	User           string        `env:"DB_USER"`
	Password       string        `env:"DB_PASSWORD"`
	Name           string        `env:"DB_NAME" envDefault:"bookshelf"`
	Host           string        `env:"DB_HOST" envDefault:"localhost"`
	Port           string        `env:"DB_PORT" envDefault:"5432"`
	SSLMode        string        `env:"DB_SSLMODE" envDefault:"disable"`
	InstanceName   string        `env:"INSTANCE_CONNECTION_NAME"`
	SQLitePath     string        `env:"DB_SQLITE_PATH" envDefault:"bookshelf.db"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"60s"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS" envDefault:"false"`
}

// LoadConfigFromEnv reads the DB_* variables.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("db: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the driver choice.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverSQLite:
		return nil
	default:
		return fmt.Errorf("db: unsupported DB_DRIVER %q", c.Driver)
	}
}

// BuildDSN returns a PostgreSQL keyword/value DSN.
// INSTANCE_CONNECTION_NAME switches to the Cloud SQL unix socket.
func BuildDSN(cfg Config) string {
	host, port := cfg.Host, cfg.Port
	if cfg.InstanceName != "" {
		host, port = "/cloudsql/"+cfg.InstanceName, ""
	}

	parts := []string{
		"host=" + quote(host),
		"user=" + quote(cfg.User),
		"password=" + quote(cfg.Password),
		"dbname=" + quote(cfg.Name),
	}
	if port != "" {
		parts = append(parts, "port="+quote(port))
	}
	parts = append(parts, "sslmode="+quote(cfg.SSLMode), "TimeZone=UTC")
	return strings.Join(parts, " ")
}

// quote escapes a DSN value when it is empty or contains spaces, quotes or backslashes.
func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db: connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// gormConfig enables error translation so unique violations surface as gorm.ErrDuplicatedKey.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// OpenPostgres opens a PostgreSQL connection through pgx.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

// OpenSQLite opens (or creates) a SQLite database file.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), gormConfig())
}

// Open connects with the configured driver and runs migrations when requested.
func Open(cfg Config) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case DriverPostgres:
		db, err = ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, OpenPostgres)
	case DriverSQLite:
		db, err = OpenSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or updates the users and books tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&authentity.User{}, &catalogentity.Book{}); err != nil {
		return fmt.Errorf("db: failed to migrate: %w", err)
	}
	return nil
}

// Pinger reports database reachability for readiness checks.
type Pinger struct {
	db *gorm.DB
}

// NewPinger wraps db for readiness checks.
func NewPinger(db *gorm.DB) *Pinger {
	return &Pinger{db: db}
}

// Ping checks the underlying sql.DB.
func (p *Pinger) Ping(ctx context.Context) error {
	if p.db == nil {
		return errors.New("db: not connected")
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
