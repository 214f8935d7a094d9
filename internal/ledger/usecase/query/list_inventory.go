package query

import (
	"context"
	"fmt"

	directorydomain "github.com/mams-platform/mams/internal/directory/domain"
	"github.com/mams-platform/mams/internal/ledger/domain"
)

// ListInventoryQuery represents the query to list inventory records
type ListInventoryQuery struct {
	CallerRole string
	CallerBase *uint
	BaseID     *uint
	Limit      int
	Offset     int
}

// ListInventoryHandler handles list inventory query
type ListInventoryHandler struct {
	repo domain.LedgerRepository
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(repo domain.LedgerRepository) *ListInventoryHandler {
	return &ListInventoryHandler{repo: repo}
}

// Handle executes the list inventory query. Base commanders only see their
// own base regardless of the requested filter.
func (h *ListInventoryHandler) Handle(ctx context.Context, q ListInventoryQuery) ([]domain.InventoryRecord, error) {
	baseID := q.BaseID
	if q.CallerRole == directorydomain.RoleBaseCommander {
		if q.CallerBase == nil {
			return nil, fmt.Errorf("caller has no assigned base")
		}
		baseID = q.CallerBase
	}

	if q.Limit <= 0 {
		q.Limit = 50
	}

	return h.repo.ListInventory(ctx, baseID, q.Limit, q.Offset)
}
