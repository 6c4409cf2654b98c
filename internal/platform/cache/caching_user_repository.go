// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"bookshelf_backend/internal/feature/auth/domain/entity"
	"bookshelf_backend/internal/feature/auth/usecase"
)

const (
	defaultUserTTL       = 10 * time.Minute
	defaultUserNamespace = "users"
)

// CachingUserRepository decorates a UserRepository with a Redis read-through cache.
// Only positive lookups are cached, so a fresh registration is visible immediately.
// User records are never modified after creation, so entries need no invalidation.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "users".
// A nil rdb turns the decorator into a pass-through.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	if namespace == "" {
		namespace = defaultUserNamespace
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByUsername checks the cache first, then falls back to the store.
func (c *CachingUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if c.rdb == nil {
		return c.inner.FindByUsername(ctx, username)
	}

	key := c.cacheKey(username)

	// 1) Check cache
	if u, ok := c.get(ctx, key); ok {
		return u, nil
	}

	// 2) Fallback to database; not-found results are not cached
	u, err := c.inner.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	c.set(ctx, key, u)
	return u, nil
}

// ExistsByUsername answers true from the cache; otherwise it asks the store.
func (c *CachingUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if c.rdb != nil {
		if n, err := c.rdb.Exists(ctx, c.cacheKey(username)).Result(); err == nil && n > 0 {
			return true, nil
		}
	}
	return c.inner.ExistsByUsername(ctx, username)
}

// Create always goes to the store, which owns uniqueness, then caches the new record.
func (c *CachingUserRepository) Create(ctx context.Context, u *entity.User) error {
	if err := c.inner.Create(ctx, u); err != nil {
		return err
	}
	if c.rdb != nil {
		c.set(ctx, c.cacheKey(u.Username), u)
	}
	return nil
}

func (c *CachingUserRepository) get(ctx context.Context, key string) (*entity.User, bool) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil or an unreachable server both fall back to the store
		return nil, false
	}
	var u entity.User
	if err := json.Unmarshal(b, &u); err != nil || u.Username == "" {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return &u, true
}

func (c *CachingUserRepository) set(ctx context.Context, key string, u *entity.User) {
	if b, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// cacheKey is injective over usernames because the namespace is fixed.
func (c *CachingUserRepository) cacheKey(username string) string {
	return c.namespace + ":" + username
}
