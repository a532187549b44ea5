// Package cache holds an optional redis-backed cache for cheap hot-path
// reads. It is disabled (all calls become no-ops / misses) unless
// REDIS_ADDR is set, so local development and tests need no redis.
package cache

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

const cartCountTTL = 10 * time.Minute

// Init connects to redis when REDIS_ADDR is configured
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	client = redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis unavailable, cart-count cache disabled:", err)
		client = nil
		return
	}
	log.Println("✅ Redis cart-count cache enabled at", addr)
}

// Enabled reports whether a redis client is connected
func Enabled() bool {
	return client != nil
}

func cartCountKey(userID uint) string {
	return "cart:count:" + strconv.FormatUint(uint64(userID), 10)
}

// GetCartCount returns the cached cart count for a user, if present
func GetCartCount(ctx context.Context, userID uint) (int64, bool) {
	if client == nil {
		return 0, false
	}
	val, err := client.Get(ctx, cartCountKey(userID)).Int64()
	if err != nil {
		return 0, false
	}
	return val, true
}

// SetCartCount caches the cart count for a user
func SetCartCount(ctx context.Context, userID uint, count int64) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, cartCountKey(userID), count, cartCountTTL).Err(); err != nil {
		log.Println("Failed to cache cart count:", err)
	}
}

// InvalidateCartCount drops the cached count after any cart mutation
func InvalidateCartCount(ctx context.Context, userID uint) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, cartCountKey(userID)).Err(); err != nil {
		log.Println("Failed to invalidate cart count:", err)
	}
}
