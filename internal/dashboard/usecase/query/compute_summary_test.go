package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mams-platform/mams/internal/dashboard/cache"
	"github.com/mams-platform/mams/internal/dashboard/domain"
	directorydomain "github.com/mams-platform/mams/internal/directory/domain"
)

// fixedAggregates returns canned totals regardless of scope
type fixedAggregates struct {
	closing      int64
	purchases    int64
	transfersIn  int64
	transfersOut int64
	assigned     int64
	expended     int64

	lastScope domain.Scope
}

func (f *fixedAggregates) ClosingBalance(_ context.Context, scope domain.Scope) (int64, error) {
	f.lastScope = scope
	return f.closing, nil
}

func (f *fixedAggregates) PurchaseTotal(_ context.Context, _ domain.Scope, _ domain.DateRange) (int64, error) {
	return f.purchases, nil
}

func (f *fixedAggregates) TransferInTotal(_ context.Context, _ domain.Scope, _ domain.DateRange) (int64, error) {
	return f.transfersIn, nil
}

func (f *fixedAggregates) TransferOutTotal(_ context.Context, _ domain.Scope, _ domain.DateRange) (int64, error) {
	return f.transfersOut, nil
}

func (f *fixedAggregates) AssignmentTotal(_ context.Context, _ domain.Scope, _ domain.DateRange) (int64, error) {
	return f.assigned, nil
}

func (f *fixedAggregates) ExpenditureTotal(_ context.Context, _ domain.Scope, _ domain.DateRange) (int64, error) {
	return f.expended, nil
}

func uintPtr(v uint) *uint { return &v }

func TestComputeSummary(t *testing.T) {
	// Base receives 100 by purchase and 30 by transfer, sends 20 away,
	// expends 50 and currently holds 60. Net movement is +60, so the period
	// must have opened at 0.
	repo := &fixedAggregates{
		closing:      60,
		purchases:    100,
		transfersIn:  30,
		transfersOut: 20,
		assigned:     15,
		expended:     50,
	}
	handler := NewComputeSummaryHandler(repo, cache.NewSummaryCache(nil))

	summary, err := handler.Handle(context.Background(), ComputeSummaryQuery{
		BaseID:     uintPtr(1),
		CallerRole: directorydomain.RoleAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(60), summary.ClosingBalance)
	assert.Equal(t, int64(60), summary.NetMovement.Total)
	assert.Equal(t, int64(0), summary.OpeningBalance)
	assert.Equal(t, int64(100), summary.NetMovement.Details.Purchases)
	assert.Equal(t, int64(30), summary.NetMovement.Details.TransfersIn)
	assert.Equal(t, int64(20), summary.NetMovement.Details.TransfersOut)
	assert.Equal(t, int64(50), summary.Expended)

	// Assignments are visible but never part of net movement
	assert.Equal(t, int64(15), summary.Assigned)

	// The reconciliation identity always holds
	assert.Equal(t, summary.ClosingBalance, summary.OpeningBalance+summary.NetMovement.Total)
}

func TestComputeSummaryIdempotent(t *testing.T) {
	repo := &fixedAggregates{closing: 40, purchases: 40}
	handler := NewComputeSummaryHandler(repo, cache.NewSummaryCache(nil))
	q := ComputeSummaryQuery{CallerRole: directorydomain.RoleLogisticsOfficer}

	first, err := handler.Handle(context.Background(), q)
	require.NoError(t, err)
	second, err := handler.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeSummaryCommanderScope(t *testing.T) {
	repo := &fixedAggregates{}
	handler := NewComputeSummaryHandler(repo, cache.NewSummaryCache(nil))

	// Requested base is overridden by the commander's own
	_, err := handler.Handle(context.Background(), ComputeSummaryQuery{
		BaseID:     uintPtr(9),
		CallerRole: directorydomain.RoleBaseCommander,
		CallerBase: uintPtr(2),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastScope.BaseID)
	assert.Equal(t, uint(2), *repo.lastScope.BaseID)

	_, err = handler.Handle(context.Background(), ComputeSummaryQuery{
		CallerRole: directorydomain.RoleBaseCommander,
	})
	assert.ErrorIs(t, err, domain.ErrNoAssignedBase)
}

func TestComputeSummaryEmptyScope(t *testing.T) {
	handler := NewComputeSummaryHandler(&fixedAggregates{}, cache.NewSummaryCache(nil))

	summary, err := handler.Handle(context.Background(), ComputeSummaryQuery{
		CallerRole: directorydomain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.OpeningBalance)
	assert.Equal(t, int64(0), summary.ClosingBalance)
	assert.Equal(t, int64(0), summary.NetMovement.Total)
	assert.Equal(t, "all", summary.FiltersApplied.BaseID)
}
