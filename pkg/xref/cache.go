package xref

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/model"
	"github.com/pathmark/pathmark/pkg/observability"
)

// DefaultTTL is how long resolved entries stay cached.
const DefaultTTL = 24 * time.Hour

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves cached data. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Memory backend
// =============================================================================

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// MemoryCache is an in-process cache for development and CLI use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get retrieves cached data, treating expired entries as misses.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || e.expired() {
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores data with a TTL.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiresAt: expires}
	c.mu.Unlock()
	return nil
}

// Delete removes a key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Close does nothing.
func (c *MemoryCache) Close() error { return nil }

var _ Cache = (*MemoryCache)(nil)

// =============================================================================
// Redis backend
// =============================================================================

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces this system's keys; defaults to "pathmark:xref:".
	KeyPrefix string
}

// RedisCache is a shared cache for multi-instance deployments.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to redis at %s", cfg.Addr)
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "pathmark:xref:"
	}
	return &RedisCache{client: client, prefix: prefix}, nil
}

// Get retrieves cached data.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "redis get")
	}
	return data, true, nil
}

// Set stores data with a TTL.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "redis set")
	}
	return nil
}

// Delete removes a key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "redis delete")
	}
	return nil
}

// Close closes the client connection.
func (c *RedisCache) Close() error { return c.client.Close() }

var _ Cache = (*RedisCache)(nil)

// =============================================================================
// Cached resolver
// =============================================================================

// CachedResolver wraps a resolver with a cache backend. Unknown data
// sources are cached too, so repeated lookups of unregistered sources stay
// cheap.
type CachedResolver struct {
	inner Resolver
	cache Cache
	ttl   time.Duration
}

// NewCachedResolver wraps inner with cache at the default TTL.
func NewCachedResolver(inner Resolver, cache Cache) *CachedResolver {
	return &CachedResolver{inner: inner, cache: cache, ttl: DefaultTTL}
}

// WithTTL overrides the cache TTL.
func (r *CachedResolver) WithTTL(ttl time.Duration) *CachedResolver {
	r.ttl = ttl
	return r
}

// unknownMarker caches a negative lookup.
var unknownMarker = []byte("\x00unknown")

// Resolve serves from cache when possible and stores resolutions on miss.
// Cache failures degrade to direct resolution rather than failing the
// lookup.
func (r *CachedResolver) Resolve(ctx context.Context, x model.Xref) (*Entry, error) {
	key := cacheKey(x)

	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "xref")
		if string(data) == string(unknownMarker) {
			return nil, nil
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err == nil {
			return &entry, nil
		}
		// Unreadable entries fall through to re-resolution and get
		// overwritten below.
	}
	observability.Cache().OnCacheMiss(ctx, "xref")

	entry, err := r.inner.Resolve(ctx, x)
	if err != nil {
		return nil, err
	}

	data := unknownMarker
	if entry != nil {
		if marshaled, err := json.Marshal(entry); err == nil {
			data = marshaled
		}
	}
	if err := r.cache.Set(ctx, key, data, r.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "xref", len(data))
	}
	return entry, nil
}

func cacheKey(x model.Xref) string {
	return strings.ToLower(x.DataSource) + "/" + x.Identifier
}

var _ Resolver = (*CachedResolver)(nil)
