package query

import (
	"context"
	"fmt"

	directorydomain "github.com/mams-platform/mams/internal/directory/domain"
	"github.com/mams-platform/mams/internal/ledger/domain"
)

// ListMovementsQuery represents the query to list movement history of one
// record kind
type ListMovementsQuery struct {
	CallerRole      string
	CallerBase      *uint
	BaseID          *uint
	EquipmentTypeID *uint
	Limit           int
	Offset          int
}

// ListMovementsHandler handles movement history queries
type ListMovementsHandler struct {
	repo domain.LedgerRepository
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(repo domain.LedgerRepository) *ListMovementsHandler {
	return &ListMovementsHandler{repo: repo}
}

func (h *ListMovementsHandler) filter(q ListMovementsQuery) (domain.HistoryFilter, error) {
	baseID := q.BaseID
	if q.CallerRole == directorydomain.RoleBaseCommander {
		if q.CallerBase == nil {
			return domain.HistoryFilter{}, fmt.Errorf("caller has no assigned base")
		}
		baseID = q.CallerBase
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	return domain.HistoryFilter{
		BaseID:          baseID,
		EquipmentTypeID: q.EquipmentTypeID,
		Limit:           limit,
		Offset:          q.Offset,
	}, nil
}

// Purchases returns purchase history visible to the caller
func (h *ListMovementsHandler) Purchases(ctx context.Context, q ListMovementsQuery) ([]domain.PurchaseRecord, error) {
	f, err := h.filter(q)
	if err != nil {
		return nil, err
	}
	return h.repo.ListPurchases(ctx, f)
}

// Transfers returns transfer history visible to the caller. For base
// commanders this covers transfers touching their base on either leg.
func (h *ListMovementsHandler) Transfers(ctx context.Context, q ListMovementsQuery) ([]domain.TransferRecord, error) {
	f, err := h.filter(q)
	if err != nil {
		return nil, err
	}
	return h.repo.ListTransfers(ctx, f)
}

// Assignments returns assignment history visible to the caller
func (h *ListMovementsHandler) Assignments(ctx context.Context, q ListMovementsQuery) ([]domain.AssignmentRecord, error) {
	f, err := h.filter(q)
	if err != nil {
		return nil, err
	}
	return h.repo.ListAssignments(ctx, f)
}

// Expenditures returns expenditure history visible to the caller
func (h *ListMovementsHandler) Expenditures(ctx context.Context, q ListMovementsQuery) ([]domain.ExpenditureRecord, error) {
	f, err := h.filter(q)
	if err != nil {
		return nil, err
	}
	return h.repo.ListExpenditures(ctx, f)
}
