package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/viraldaily/viraldaily-go/internal/metrics"
	"github.com/viraldaily/viraldaily-go/internal/model"
)

// Aggregated pages are cached briefly: trending data goes stale in minutes
// and upstream quotas are the scarce resource.
const VideosCacheTTL = 5 * time.Minute

// CacheService provides a Redis cache-aside layer for aggregated video
// responses. If Redis is unconfigured or unreachable, every operation is a
// no-op and requests hit the aggregator directly.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetVideos retrieves a cached aggregated response. Returns nil on miss or
// when caching is disabled.
func (c *CacheService) GetVideos(ctx context.Context, filter *model.Platform, limit int, tier model.Tier) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, videosKey(filter, limit, tier)).Bytes()
	if err == redis.Nil {
		if metrics.Metrics.CacheMisses != nil {
			metrics.Metrics.CacheMisses.Inc()
		}
		return nil, nil
	}
	if err == nil && metrics.Metrics.CacheHits != nil {
		metrics.Metrics.CacheHits.Inc()
	}
	return data, err
}

// SetVideos stores an aggregated response.
func (c *CacheService) SetVideos(ctx context.Context, filter *model.Platform, limit int, tier model.Tier, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, videosKey(filter, limit, tier), b, VideosCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func videosKey(filter *model.Platform, limit int, tier model.Tier) string {
	platform := "all"
	if filter != nil {
		platform = string(*filter)
	}
	return fmt.Sprintf("videos:%s:%d:%s", platform, limit, tier)
}
