package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - offer:{offer_id}:interest_count - 2m TTL, per-offer interest count

// CacheConfig contains configuration for caching
type CacheConfig struct {
	InterestCountTTL time.Duration // TTL for per-offer interest counts
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		InterestCountTTL: 2 * time.Minute,
	}
}

// CacheStore handles caching in Redis. Cache failures are swallowed: the
// database stays authoritative and a cold cache only costs a count query.
type CacheStore struct {
	client *goredis.Client
	config CacheConfig
}

// NewCacheStore creates a new cache store
func NewCacheStore(client *goredis.Client, config CacheConfig) *CacheStore {
	return &CacheStore{
		client: client,
		config: config,
	}
}

func interestCountKey(offerID uuid.UUID) string {
	return fmt.Sprintf("offer:%s:interest_count", offerID)
}

// GetCount retrieves a cached per-offer interest count. The second return
// value reports a cache hit.
func (c *CacheStore) GetCount(ctx context.Context, offerID uuid.UUID) (int64, bool) {
	data, err := c.client.Get(ctx, interestCountKey(offerID)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

// SetCount caches a per-offer interest count
func (c *CacheStore) SetCount(ctx context.Context, offerID uuid.UUID, count int64) {
	c.client.Set(ctx, interestCountKey(offerID), count, c.config.InterestCountTTL)
}

// Invalidate drops the cached count after an interest write
func (c *CacheStore) Invalidate(ctx context.Context, offerID uuid.UUID) {
	c.client.Del(ctx, interestCountKey(offerID))
}
