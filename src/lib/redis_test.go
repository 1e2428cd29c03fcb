package lib

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// Cache helpers are best effort: with no reachable server every call
// degrades to a miss instead of failing the request.
func TestCacheHelpersDegradeWithoutServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	NewRedisClient(client)
	t.Cleanup(func() {
		client.Close()
		NewRedisClient(nil)
	})

	ctx := context.Background()
	CacheJSON(ctx, "events:test", map[string]int{"a": 1}, time.Minute)

	var out map[string]int
	assert.False(t, GetCachedJSON(ctx, "events:test", &out))

	InvalidateCache(ctx, "events:test")
}
