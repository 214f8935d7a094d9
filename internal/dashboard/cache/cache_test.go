package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mams-platform/mams/internal/dashboard/domain"
)

func uintPtr(v uint) *uint { return &v }

func TestKeyIsStable(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	scope := domain.Scope{BaseID: uintPtr(1), EquipmentTypeID: uintPtr(2)}
	period := domain.DateRange{Start: &start}

	assert.Equal(t, Key(scope, period), Key(scope, period))
}

func TestKeyVariesWithScope(t *testing.T) {
	assert.NotEqual(t,
		Key(domain.Scope{BaseID: uintPtr(1)}, domain.DateRange{}),
		Key(domain.Scope{BaseID: uintPtr(2)}, domain.DateRange{}),
	)
	assert.NotEqual(t,
		Key(domain.Scope{}, domain.DateRange{}),
		Key(domain.Scope{EquipmentTypeID: uintPtr(1)}, domain.DateRange{}),
	)
}

func TestDisabledCacheIsSafe(t *testing.T) {
	var c *SummaryCache
	ctx := context.Background()

	_, ok := c.Get(ctx, "any")
	assert.False(t, ok)
	c.Set(ctx, "any", &domain.Summary{})

	c = NewSummaryCache(nil)
	_, ok = c.Get(ctx, "any")
	assert.False(t, ok)
	c.Set(ctx, "any", &domain.Summary{})
}
