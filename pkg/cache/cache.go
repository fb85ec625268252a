// Package cache stores JSON-encoded values under string keys.
//
//	store, err := cache.Connect(ctx, cache.RedisOptions{Addr: "localhost:6379"})
//	var types []models.HelmetType
//	hit, err := store.Get(ctx, "helmet_store:types:sql", &types)
package cache

import (
	"context"
	"time"
)

// Store is a key/value cache. Get reports false on a miss, which is not
// an error.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Forget removes a single key.
func Forget(ctx context.Context, s Store, key string) error {
	return s.Del(ctx, key)
}
