// Package cache keeps per-item sentiment summaries in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Krish1013/milletFoodDeliveryApp/internal/metrics"
	"github.com/Krish1013/milletFoodDeliveryApp/internal/sentiment"
)

const keyPrefix = "sentiment:summary:"

// NewClient connects to redisURL with the breaker hook installed.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := goredis.NewClient(opts)
	rdb.AddHook(NewBreakerHook())

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("Connected to Redis", "addr", opts.Addr)
	return rdb, nil
}

// SummaryCache stores sentiment.Summary values as JSON. A nil *SummaryCache
// is valid: every read misses and writes are dropped. Redis failures are
// logged and treated as misses.
type SummaryCache struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

func NewSummaryCache(rdb goredis.Cmdable, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

func Key(foodID string) string {
	return keyPrefix + foodID
}

func (c *SummaryCache) Get(ctx context.Context, foodID string) (sentiment.Summary, bool) {
	if c == nil {
		return sentiment.Summary{}, false
	}

	raw, err := c.rdb.Get(ctx, Key(foodID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.SummaryCacheOpsTotal.WithLabelValues("get", "miss").Inc()
		return sentiment.Summary{}, false
	}
	if err != nil {
		metrics.SummaryCacheOpsTotal.WithLabelValues("get", "error").Inc()
		slog.WarnContext(ctx, "Summary cache read failed", "food_id", foodID, "error", err)
		return sentiment.Summary{}, false
	}

	var s sentiment.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		metrics.SummaryCacheOpsTotal.WithLabelValues("get", "error").Inc()
		slog.WarnContext(ctx, "Summary cache entry is corrupt", "food_id", foodID, "error", err)
		return sentiment.Summary{}, false
	}

	metrics.SummaryCacheOpsTotal.WithLabelValues("get", "hit").Inc()
	return s, true
}

func (c *SummaryCache) Set(ctx context.Context, foodID string, s sentiment.Summary) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, Key(foodID), raw, c.ttl).Err(); err != nil {
		metrics.SummaryCacheOpsTotal.WithLabelValues("set", "error").Inc()
		slog.WarnContext(ctx, "Summary cache write failed", "food_id", foodID, "error", err)
		return
	}
	metrics.SummaryCacheOpsTotal.WithLabelValues("set", "ok").Inc()
}

func (c *SummaryCache) Invalidate(ctx context.Context, foodID string) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, Key(foodID)).Err(); err != nil {
		metrics.SummaryCacheOpsTotal.WithLabelValues("invalidate", "error").Inc()
		slog.WarnContext(ctx, "Summary cache invalidation failed", "food_id", foodID, "error", err)
		return
	}
	metrics.SummaryCacheOpsTotal.WithLabelValues("invalidate", "ok").Inc()
}
