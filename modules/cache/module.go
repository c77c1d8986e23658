package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Module provides the caching layer as a mono module. Caching is optional:
// with an empty address, or when Redis is unreachable at startup, the module
// starts disabled and GetCache returns nil. Callers must check for nil
// before wiring the cache anywhere.
type Module struct {
	cache     *Cache
	client    *redis.Client
	redisAddr string
	prefix    string
	ttl       time.Duration
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new cache module. An empty redisAddr disables caching.
func NewModule(redisAddr, prefix string, ttl time.Duration) *Module {
	return &Module{
		redisAddr: redisAddr,
		prefix:    prefix,
		ttl:       ttl,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cache"
}

// Start connects to Redis. A connection failure is logged, not fatal, so
// the application still serves requests without caching.
func (m *Module) Start(ctx context.Context) error {
	if m.redisAddr == "" {
		log.Println("[cache] No Redis address configured, caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         m.redisAddr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[cache] Redis unreachable at %s, caching disabled: %v", m.redisAddr, err)
		client.Close()
		return nil
	}

	m.client = client
	m.cache = New(client, m.prefix, m.ttl)
	log.Printf("[cache] Connected to Redis at %s (prefix: %s, TTL: %s)", m.redisAddr, m.prefix, m.ttl)
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			log.Printf("[cache] Error closing Redis connection: %v", err)
			return fmt.Errorf("failed to close Redis connection: %w", err)
		}
	}
	log.Println("[cache] Module stopped")
	return nil
}

// GetCache returns the cache instance, or nil when caching is disabled.
func (m *Module) GetCache() *Cache {
	return m.cache
}

// Health reports the Redis connection state. A disabled cache is healthy.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.cache == nil {
		return mono.HealthStatus{
			Healthy: true,
			Message: "caching disabled",
		}
	}

	if err := m.cache.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}

	stats := m.cache.GetStats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"hits":    stats.Hits,
			"misses":  stats.Misses,
			"hitRate": stats.HitRate,
		},
	}
}
