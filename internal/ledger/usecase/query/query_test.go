package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	directorydomain "github.com/mams-platform/mams/internal/directory/domain"
	"github.com/mams-platform/mams/internal/ledger/domain"
)

// scopeRecorder captures the filter each repository call received
type scopeRecorder struct {
	domain.LedgerRepository

	lastBaseID *uint
	lastFilter domain.HistoryFilter
}

func (r *scopeRecorder) ListInventory(_ context.Context, baseID *uint, _, _ int) ([]domain.InventoryRecord, error) {
	r.lastBaseID = baseID
	return nil, nil
}

func (r *scopeRecorder) ListExpenditures(_ context.Context, f domain.HistoryFilter) ([]domain.ExpenditureRecord, error) {
	r.lastFilter = f
	return nil, nil
}

func (r *scopeRecorder) FindInventory(_ context.Context, baseID, equipmentTypeID uint) (*domain.InventoryRecord, error) {
	return &domain.InventoryRecord{BaseID: baseID, EquipmentTypeID: equipmentTypeID, Quantity: 12}, nil
}

func uintPtr(v uint) *uint { return &v }

func TestListInventoryScoping(t *testing.T) {
	ctx := context.Background()
	repo := &scopeRecorder{}
	handler := NewListInventoryHandler(repo)

	// Admins see whatever they ask for
	_, err := handler.Handle(ctx, ListInventoryQuery{
		CallerRole: directorydomain.RoleAdmin,
		BaseID:     uintPtr(5),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastBaseID)
	assert.Equal(t, uint(5), *repo.lastBaseID)

	// Commanders are pinned to their own base even when asking for another
	_, err = handler.Handle(ctx, ListInventoryQuery{
		CallerRole: directorydomain.RoleBaseCommander,
		CallerBase: uintPtr(2),
		BaseID:     uintPtr(5),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastBaseID)
	assert.Equal(t, uint(2), *repo.lastBaseID)

	// A commander with no base assignment cannot query at all
	_, err = handler.Handle(ctx, ListInventoryQuery{
		CallerRole: directorydomain.RoleBaseCommander,
	})
	assert.Error(t, err)
}

func TestListMovementsScoping(t *testing.T) {
	ctx := context.Background()
	repo := &scopeRecorder{}
	handler := NewListMovementsHandler(repo)

	_, err := handler.Expenditures(ctx, ListMovementsQuery{
		CallerRole:      directorydomain.RoleBaseCommander,
		CallerBase:      uintPtr(3),
		BaseID:          uintPtr(9),
		EquipmentTypeID: uintPtr(4),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.BaseID)
	assert.Equal(t, uint(3), *repo.lastFilter.BaseID)
	require.NotNil(t, repo.lastFilter.EquipmentTypeID)
	assert.Equal(t, uint(4), *repo.lastFilter.EquipmentTypeID)
	assert.Equal(t, 50, repo.lastFilter.Limit)
}

func TestGetInventory(t *testing.T) {
	ctx := context.Background()
	handler := NewGetInventoryHandler(&scopeRecorder{})

	inv, err := handler.Handle(ctx, GetInventoryQuery{BaseID: 1, EquipmentTypeID: 2})
	require.NoError(t, err)
	assert.Equal(t, 12, inv.Quantity)
}
