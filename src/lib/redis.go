package lib

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// CacheJSON stores v under key with a TTL. Failures are logged and
// swallowed so a cold cache never breaks a request.
func CacheJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[redis] Error marshaling value for key %s: %s\n", key, err.Error())
		return
	}
	if err := rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		log.Printf("[redis] Failed to set value for key %s: %s\n", key, err)
	}
}

// GetCachedJSON loads key into out. Returns false on miss or error.
func GetCachedJSON(ctx context.Context, key string, out any) bool {
	rdb := GetRedisClient()
	if rdb == nil {
		return false
	}
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	} else if err != nil {
		log.Printf("[redis] Error retrieving value for %s: %s\n", key, err.Error())
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		log.Printf("[redis] Error unmarshaling value for %s: %s\n", key, err.Error())
		return false
	}
	return true
}

// InvalidateCache drops keys after a write so readers do not see stale rows.
func InvalidateCache(ctx context.Context, keys ...string) {
	rdb := GetRedisClient()
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[redis] Failed to delete keys %v: %s\n", keys, err)
	}
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}
