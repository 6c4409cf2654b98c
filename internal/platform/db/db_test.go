package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "bookshelf_backend/internal/feature/auth/domain/entity"
	catalogentity "bookshelf_backend/internal/feature/catalog/domain/entity"
)

// TestBuildDSN はPostgreSQL用のDSN文字列が正しく生成されることを検証します。
func TestBuildDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{
			name:     "tcp",
			cfg:      Config{User: "testuser", Password: "testpass", Name: "testdb", Host: "localhost", Port: "5432", SSLMode: "disable"},
			expected: "host=localhost user=testuser password=testpass dbname=testdb port=5432 sslmode=disable TimeZone=UTC",
		},
		{
			name:     "cloud sql socket takes precedence",
			cfg:      Config{User: "testuser", Password: "testpass", Name: "testdb", Host: "localhost", Port: "5432", SSLMode: "disable", InstanceName: "project:region:instance"},
			expected: "host=/cloudsql/project:region:instance user=testuser password=testpass dbname=testdb sslmode=disable TimeZone=UTC",
		},
		{
			name:     "values needing quotes",
			cfg:      Config{User: "app", Password: `it's a secret\`, Name: "testdb", Host: "db", Port: "5432", SSLMode: "require"},
			expected: `host=db user=app password='it\'s a secret\\' dbname=testdb port=5432 sslmode=require TimeZone=UTC`,
		},
		{
			name:     "empty password",
			cfg:      Config{User: "app", Name: "testdb", Host: "db", Port: "5432", SSLMode: "disable"},
			expected: "host=db user=app password='' dbname=testdb port=5432 sslmode=disable TimeZone=UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, BuildDSN(tt.cfg))
		})
	}
}

// TestConnectWithRetry は接続リトライの挙動を検証します。
// retryIntervalを書き換えるため並列実行しません。
func TestConnectWithRetry(t *testing.T) {
	orig := retryInterval
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() { retryInterval = orig })

	t.Run("success on first try", func(t *testing.T) {
		mockDB := &gorm.DB{}
		attempts := 0
		db, err := ConnectWithRetry("test-dsn", time.Second, func(dsn string) (*gorm.DB, error) {
			attempts++
			assert.Equal(t, "test-dsn", dsn)
			return mockDB, nil
		})

		require.NoError(t, err)
		assert.Same(t, mockDB, db)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries on failure", func(t *testing.T) {
		mockDB := &gorm.DB{}
		attempts := 0
		db, err := ConnectWithRetry("test-dsn", time.Second, func(string) (*gorm.DB, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.New("connection refused")
			}
			return mockDB, nil
		})

		require.NoError(t, err)
		assert.Same(t, mockDB, db)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after timeout", func(t *testing.T) {
		attempts := 0
		connErr := errors.New("connection refused")
		_, err := ConnectWithRetry("test-dsn", 35*time.Millisecond, func(string) (*gorm.DB, error) {
			attempts++
			return nil, connErr
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, connErr)
		assert.GreaterOrEqual(t, attempts, 1)
		assert.LessOrEqual(t, attempts, 4)
	})
}

// TestLoadConfigFromEnv は環境変数からデータベース設定が正しく読み込まれることを検証します。
func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("values from env", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_USER", "envuser")
		t.Setenv("DB_PASSWORD", "envpass")
		t.Setenv("DB_NAME", "envdb")
		t.Setenv("DB_HOST", "envhost")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_CONNECT_TIMEOUT", "5s")
		t.Setenv("RUN_MIGRATIONS", "true")

		cfg, err := LoadConfigFromEnv()

		require.NoError(t, err)
		assert.Equal(t, DriverPostgres, cfg.Driver)
		assert.Equal(t, "envuser", cfg.User)
		assert.Equal(t, "envpass", cfg.Password)
		assert.Equal(t, "envdb", cfg.Name)
		assert.Equal(t, "envhost", cfg.Host)
		assert.Equal(t, "5433", cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
		assert.True(t, cfg.RunMigrations)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfigFromEnv()

		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, cfg.Driver)
		assert.Equal(t, "bookshelf.db", cfg.SQLitePath)
		assert.Equal(t, 60*time.Second, cfg.ConnectTimeout)
		assert.False(t, cfg.RunMigrations)
	})

	t.Run("unsupported driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")

		_, err := LoadConfigFromEnv()

		assert.ErrorContains(t, err, "unsupported DB_DRIVER")
	})
}

// TestOpen_SQLiteWithMigrations はSQLiteでの接続とマイグレーションを検証します。
func TestOpen_SQLiteWithMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(Config{Driver: DriverSQLite, SQLitePath: path, RunMigrations: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.True(t, db.Migrator().HasTable(&authentity.User{}))
	assert.True(t, db.Migrator().HasTable(&catalogentity.Book{}))
	assert.True(t, db.Migrator().HasIndex(&authentity.User{}, "Username"))

	require.NoError(t, db.Create(&authentity.User{Username: "bob", PasswordHash: "h1"}).Error)
	err = db.Create(&authentity.User{Username: "bob", PasswordHash: "h2"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey, "TranslateError is enabled")

	assert.NoError(t, NewPinger(db).Ping(context.Background()))
}

func TestOpen_InvalidDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	assert.Error(t, err)
}

// TestPinger は疎通確認がsql.DBのPingに委譲されることを検証します。
func TestPinger(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		t.Cleanup(func() { _ = sqlDB.Close() })

		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
		require.NoError(t, err)

		mock.ExpectPing()
		assert.NoError(t, NewPinger(gdb).Ping(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreachable", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		t.Cleanup(func() { _ = sqlDB.Close() })

		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
		require.NoError(t, err)

		mock.ExpectPing().WillReturnError(errors.New("connection reset"))
		assert.Error(t, NewPinger(gdb).Ping(context.Background()))
	})

	t.Run("nil db", func(t *testing.T) {
		assert.Error(t, NewPinger(nil).Ping(context.Background()))
	})
}
