package domain

import (
	"context"
	"errors"
	"time"

	directorydomain "github.com/mams-platform/mams/internal/directory/domain"
)

// ErrNoAssignedBase reports a base commander without a base assignment. This
// is a configuration gap, not bad input: every base-scoped operation needs a
// base to scope to.
var ErrNoAssignedBase = errors.New("caller has no assigned base")

// Scope is the (base, equipment type) filter pair for a summary. Nil fields
// mean "all".
type Scope struct {
	BaseID          *uint
	EquipmentTypeID *uint
}

// DateRange bounds a summary period with inclusive ends. Nil fields mean
// unbounded on that side.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// NetMovement is the period movement total with its component breakdown
type NetMovement struct {
	Total   int64 `json:"total"`
	Details struct {
		Purchases    int64 `json:"purchases"`
		TransfersIn  int64 `json:"transfers_in"`
		TransfersOut int64 `json:"transfers_out"`
	} `json:"details"`
}

// FiltersApplied echoes the resolved scope and period back to the caller
type FiltersApplied struct {
	BaseID          interface{} `json:"base"`
	EquipmentTypeID interface{} `json:"equipment_type"`
	StartDate       *string     `json:"start_date"`
	EndDate         *string     `json:"end_date"`
}

// Summary is the reconciled balance view for a scope and period.
// OpeningBalance is derived: the balance before the period equals the balance
// after it minus everything that moved during it.
type Summary struct {
	FiltersApplied FiltersApplied `json:"filters_applied"`
	OpeningBalance int64          `json:"opening_balance"`
	ClosingBalance int64          `json:"closing_balance"`
	// Assigned totals period assignments for visibility; it is not part of
	// net movement because assigned assets remain on the base's books until
	// expended.
	Assigned    int64       `json:"assigned"`
	Expended    int64       `json:"expended"`
	NetMovement NetMovement `json:"net_movement"`
}

// ResolveScope applies the role-based override to a requested scope. Base
// commanders are always pinned to their own base regardless of what they
// asked for; admins and logistics officers see what they requested.
func ResolveScope(role string, requested Scope, callerBase *uint) (Scope, error) {
	if role == directorydomain.RoleBaseCommander {
		if callerBase == nil {
			return Scope{}, ErrNoAssignedBase
		}
		requested.BaseID = callerBase
	}
	return requested, nil
}

// SummaryRepository aggregates ledger history and current inventory for the
// dashboard
type SummaryRepository interface {
	ClosingBalance(ctx context.Context, scope Scope) (int64, error)
	PurchaseTotal(ctx context.Context, scope Scope, period DateRange) (int64, error)
	TransferInTotal(ctx context.Context, scope Scope, period DateRange) (int64, error)
	TransferOutTotal(ctx context.Context, scope Scope, period DateRange) (int64, error)
	AssignmentTotal(ctx context.Context, scope Scope, period DateRange) (int64, error)
	ExpenditureTotal(ctx context.Context, scope Scope, period DateRange) (int64, error)
}
