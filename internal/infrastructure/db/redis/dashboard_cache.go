package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/venturehub/marketplace-api/internal/api/metrics"
	"github.com/venturehub/marketplace-api/internal/core/ports"
)

const summaryTTL = time.Minute

// DashboardCache caches computed dashboard summaries per owner.
// Key format: dashboard:<owner_id>
type DashboardCache struct {
	client *redis.Client
}

// NewDashboardCache creates a DashboardCache wrapping the given Redis client.
func NewDashboardCache(client *redis.Client) *DashboardCache {
	return &DashboardCache{client: client}
}

// Get returns the cached summary for ownerID, or (nil, nil) on a miss.
func (c *DashboardCache) Get(ctx context.Context, ownerID string) (*ports.DashboardSummary, error) {
	raw, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.DashboardCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("dashboard cache get: %w", err)
	}

	var summary ports.DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("dashboard cache decode: %w", err)
	}

	metrics.DashboardCacheTotal.WithLabelValues("hit").Inc()
	return &summary, nil
}

// Set stores the summary for ownerID (expires after summaryTTL).
func (c *DashboardCache) Set(ctx context.Context, ownerID string, summary *ports.DashboardSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("dashboard cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(ownerID), raw, summaryTTL).Err()
}

func (c *DashboardCache) key(ownerID string) string {
	return "dashboard:" + ownerID
}
