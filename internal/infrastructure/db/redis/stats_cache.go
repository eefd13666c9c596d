package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/route2rise/leaddesk/internal/api/metrics"
	"github.com/route2rise/leaddesk/internal/core/ports"
)

const statsTTL = 30 * time.Second

// StatsCache caches dashboard snapshots in Redis for a short TTL.
// Key format: stats:<assigned_to> ("stats:all" when unfiltered).
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached snapshot for the owner filter, or (nil, nil) on a
// miss. Decode failures are reported as errors so the caller falls back to
// the store.
func (c *StatsCache) Get(ctx context.Context, assignedTo string) (*ports.DashboardStats, error) {
	raw, err := c.client.Get(ctx, c.key(assignedTo)).Bytes()
	if err == redis.Nil {
		metrics.DashboardCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats ports.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}

	metrics.DashboardCacheTotal.WithLabelValues("hit").Inc()
	return &stats, nil
}

// Set stores a snapshot under the owner filter key (expires after statsTTL).
func (c *StatsCache) Set(ctx context.Context, assignedTo string, stats *ports.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(assignedTo), raw, statsTTL).Err()
}

func (c *StatsCache) key(assignedTo string) string {
	if assignedTo == "" {
		return "stats:all"
	}
	return "stats:" + assignedTo
}
