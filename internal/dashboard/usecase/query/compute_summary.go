package query

import (
	"context"
	"time"

	"github.com/mams-platform/mams/internal/dashboard/cache"
	"github.com/mams-platform/mams/internal/dashboard/domain"
	"github.com/mams-platform/mams/pkg/logger"
)

// ComputeSummaryQuery carries the requested scope alongside the caller's
// identity so the handler can enforce role-based scoping.
type ComputeSummaryQuery struct {
	BaseID          *uint
	EquipmentTypeID *uint
	StartDate       *time.Time
	EndDate         *time.Time

	CallerRole string
	CallerBase *uint
}

// ComputeSummaryHandler assembles the reconciled balance view
type ComputeSummaryHandler struct {
	repo  domain.SummaryRepository
	cache *cache.SummaryCache
}

func NewComputeSummaryHandler(repo domain.SummaryRepository, summaryCache *cache.SummaryCache) *ComputeSummaryHandler {
	return &ComputeSummaryHandler{repo: repo, cache: summaryCache}
}

// Handle resolves the caller's scope, then reconciles balances for it:
//
//	net = (purchases + transfers in) - (transfers out + expended)
//	opening = closing - net
//
// Closing balance always reads the live inventory; the period bounds only
// the movement sums. Assignments are reported but excluded from net
// movement, since assigned assets stay on the base's books.
func (h *ComputeSummaryHandler) Handle(ctx context.Context, q ComputeSummaryQuery) (*domain.Summary, error) {
	scope, err := domain.ResolveScope(q.CallerRole, domain.Scope{
		BaseID:          q.BaseID,
		EquipmentTypeID: q.EquipmentTypeID,
	}, q.CallerBase)
	if err != nil {
		return nil, err
	}
	period := domain.DateRange{Start: q.StartDate, End: q.EndDate}

	key := cache.Key(scope, period)
	if cached, ok := h.cache.Get(ctx, key); ok {
		return cached, nil
	}

	closing, err := h.repo.ClosingBalance(ctx, scope)
	if err != nil {
		return nil, err
	}
	purchases, err := h.repo.PurchaseTotal(ctx, scope, period)
	if err != nil {
		return nil, err
	}
	transfersIn, err := h.repo.TransferInTotal(ctx, scope, period)
	if err != nil {
		return nil, err
	}
	transfersOut, err := h.repo.TransferOutTotal(ctx, scope, period)
	if err != nil {
		return nil, err
	}
	assigned, err := h.repo.AssignmentTotal(ctx, scope, period)
	if err != nil {
		return nil, err
	}
	expended, err := h.repo.ExpenditureTotal(ctx, scope, period)
	if err != nil {
		return nil, err
	}

	net := (purchases + transfersIn) - (transfersOut + expended)

	summary := &domain.Summary{
		OpeningBalance: closing - net,
		ClosingBalance: closing,
		Assigned:       assigned,
		Expended:       expended,
	}
	summary.NetMovement.Total = net
	summary.NetMovement.Details.Purchases = purchases
	summary.NetMovement.Details.TransfersIn = transfersIn
	summary.NetMovement.Details.TransfersOut = transfersOut
	summary.FiltersApplied = buildFilters(scope, period)

	h.cache.Set(ctx, key, summary)
	logger.Info(ctx).
		Int64("closing_balance", closing).
		Int64("net_movement", net).
		Msg("Dashboard summary computed")
	return summary, nil
}

func buildFilters(scope domain.Scope, period domain.DateRange) domain.FiltersApplied {
	filters := domain.FiltersApplied{BaseID: "all", EquipmentTypeID: "all"}
	if scope.BaseID != nil {
		filters.BaseID = *scope.BaseID
	}
	if scope.EquipmentTypeID != nil {
		filters.EquipmentTypeID = *scope.EquipmentTypeID
	}
	if period.Start != nil {
		s := period.Start.Format("2006-01-02")
		filters.StartDate = &s
	}
	if period.End != nil {
		e := period.End.Format("2006-01-02")
		filters.EndDate = &e
	}
	return filters
}
