package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mams-platform/mams/internal/dashboard/domain"
	"github.com/mams-platform/mams/pkg/logger"
)

// DefaultTTL is short on purpose: summaries are cheap to recompute and the
// dashboard should not lag the ledger by much.
const DefaultTTL = 30 * time.Second

// SummaryCache is a read-through cache for dashboard summaries. A nil Redis
// client disables caching entirely, so callers never need to branch.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSummaryCache(client *redis.Client) *SummaryCache {
	return &SummaryCache{client: client, ttl: DefaultTTL}
}

// Get returns the cached summary for the key, or (nil, false) on a miss or
// when caching is disabled.
func (c *SummaryCache) Get(ctx context.Context, key string) (*domain.Summary, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Summary cache read failed")
		}
		return nil, false
	}
	var summary domain.Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Summary cache entry corrupt")
		return nil, false
	}
	return &summary, true
}

// Set stores a summary under the key. Failures are logged and swallowed;
// the cache is best-effort.
func (c *SummaryCache) Set(ctx context.Context, key string, summary *domain.Summary) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Summary cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Summary cache write failed")
	}
}

// Key derives a stable cache key from the resolved scope and period.
func Key(scope domain.Scope, period domain.DateRange) string {
	raw := fmt.Sprintf("%v:%v:%v:%v",
		uintOrAll(scope.BaseID),
		uintOrAll(scope.EquipmentTypeID),
		timeOrOpen(period.Start),
		timeOrOpen(period.End),
	)
	hash := sha256.Sum256([]byte(raw))
	return "dashboard:summary:" + hex.EncodeToString(hash[:])
}

func uintOrAll(v *uint) string {
	if v == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *v)
}

func timeOrOpen(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return t.UTC().Format(time.RFC3339)
}
