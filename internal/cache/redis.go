package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis backs the cache port with a Redis instance, letting multiple
// backend instances share encyclopedia lookups. Eviction is delegated to
// Redis (per-key TTL plus the server's maxmemory policy).
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis wraps an existing client. All keys are namespaced with prefix.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("WARN cache: redis get %s: %v", key, err)
		}
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		log.Printf("WARN cache: redis set %s: %v", key, err)
	}
}
