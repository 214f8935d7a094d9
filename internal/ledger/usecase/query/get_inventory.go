package query

import (
	"context"
	"fmt"

	"github.com/mams-platform/mams/internal/ledger/domain"
)

// GetInventoryQuery represents the query for a single inventory key
type GetInventoryQuery struct {
	BaseID          uint
	EquipmentTypeID uint
}

// GetInventoryHandler handles get inventory query
type GetInventoryHandler struct {
	repo domain.LedgerRepository
}

// NewGetInventoryHandler creates a new get inventory handler
func NewGetInventoryHandler(repo domain.LedgerRepository) *GetInventoryHandler {
	return &GetInventoryHandler{repo: repo}
}

// Handle executes the get inventory query
func (h *GetInventoryHandler) Handle(ctx context.Context, q GetInventoryQuery) (*domain.InventoryRecord, error) {
	if q.BaseID == 0 || q.EquipmentTypeID == 0 {
		return nil, fmt.Errorf("base_id and equipment_type_id are required")
	}
	return h.repo.FindInventory(ctx, q.BaseID, q.EquipmentTypeID)
}
