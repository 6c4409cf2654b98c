// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "bookshelf_backend/internal/feature/auth/adapters"
	"bookshelf_backend/internal/feature/auth/usecase"
	"bookshelf_backend/internal/platform/cache"
)

// NewUserRepository creates a UserRepository implementation.
// If Redis is available, the gorm store is wrapped with the read-through cache.
// Otherwise, the gorm store is used directly.
func NewUserRepository(rdb *redis.Client, ttl time.Duration, db *gorm.DB) usecase.UserRepository {
	store := authadapters.NewUserGorm(db)
	if rdb != nil {
		return cache.NewCachingUserRepository(rdb, ttl, store, "users")
	}
	return store
}
