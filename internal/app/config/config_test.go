package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf_backend/internal/platform/db"
	"bookshelf_backend/internal/platform/password"
)

const validKey = "0123456789abcdef0123456789abcdef"

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_KEY", validKey)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, db.DriverSQLite, cfg.DB.Driver)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, validKey, cfg.JWT.Key)
	assert.Equal(t, "bookshelf-backend", cfg.JWT.Issuer)
	assert.Equal(t, "bookshelf-clients", cfg.JWT.Audience)
	assert.Zero(t, cfg.JWT.Leeway)
	assert.Equal(t, password.AlgorithmBcrypt, cfg.Password.Algorithm)
	assert.Equal(t, 12, cfg.Password.BcryptCost)
	assert.False(t, cfg.Auth.UniformLoginErrors)
	assert.Equal(t, "info", cfg.Log.Level)

	_, stillSet := os.LookupEnv("JWT_KEY")
	assert.False(t, stillSet, "the signing key is removed from the environment after parsing")
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_KEY", validKey)
	t.Setenv("JWT_ISSUER", "issuer-x")
	t.Setenv("JWT_AUDIENCE", "aud-x")
	t.Setenv("JWT_CLOCK_SKEW", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("AUTH_UNIFORM_LOGIN_ERRORS", "true")
	t.Setenv("PASSWORD_ALGORITHM", "argon2id")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "issuer-x", cfg.JWT.Issuer)
	assert.Equal(t, "aud-x", cfg.JWT.Audience)
	assert.Equal(t, 30*time.Second, cfg.JWT.Leeway)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.True(t, cfg.Auth.UniformLoginErrors)
	assert.Equal(t, password.AlgorithmArgon2id, cfg.Password.Algorithm)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing key", map[string]string{}, "JWT_KEY"},
		{"short key", map[string]string{"JWT_KEY": "too-short"}, "at least 32 bytes"},
		{"bad driver", map[string]string{"JWT_KEY": validKey, "DB_DRIVER": "mysql"}, "unsupported DB_DRIVER"},
		{"bad algorithm", map[string]string{"JWT_KEY": validKey, "PASSWORD_ALGORITHM": "md5"}, "unsupported password algorithm"},
		{"bad log level", map[string]string{"JWT_KEY": validKey, "LOG_LEVEL": "loud"}, "invalid LOG_LEVEL"},
		{"negative skew", map[string]string{"JWT_KEY": validKey, "JWT_CLOCK_SKEW": "-1s"}, "clock skew"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetenv(t, "JWT_KEY")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.False(t, strings.Contains(err.Error(), validKey), "errors must not leak the key")
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_KEY="+validKey+"\nJWT_ISSUER=from-dotenv\n"), 0o600))
	t.Chdir(dir)
	unsetenv(t, "JWT_ISSUER")
	unsetenv(t, "JWT_KEY")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, validKey, cfg.JWT.Key)
	assert.Equal(t, "from-dotenv", cfg.JWT.Issuer)
}

// unsetenv removes key for the duration of the test and restores it afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
