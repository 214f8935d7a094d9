package domain

import "context"

// HistoryFilter narrows movement history queries. Nil fields mean no
// restriction. For transfers, BaseID matches either leg.
type HistoryFilter struct {
	BaseID          *uint
	EquipmentTypeID *uint
	Limit           int
	Offset          int
}

// LedgerRepository applies ledger events to the inventory store. Every Apply
// method runs the full check-then-update sequence as one atomic transaction:
// it reads and row-locks the affected inventory keys, validates sufficiency
// for each outflow leg, applies the quantity deltas, and persists the event
// record. Either everything commits or nothing does.
type LedgerRepository interface {
	ApplyPurchase(ctx context.Context, rec *PurchaseRecord) error
	ApplyTransfer(ctx context.Context, rec *TransferRecord) error
	ApplyAssignment(ctx context.Context, rec *AssignmentRecord) error
	ApplyExpenditure(ctx context.Context, rec *ExpenditureRecord) error

	FindInventory(ctx context.Context, baseID, equipmentTypeID uint) (*InventoryRecord, error)
	ListInventory(ctx context.Context, baseID *uint, limit, offset int) ([]InventoryRecord, error)

	ListPurchases(ctx context.Context, f HistoryFilter) ([]PurchaseRecord, error)
	ListTransfers(ctx context.Context, f HistoryFilter) ([]TransferRecord, error)
	ListAssignments(ctx context.Context, f HistoryFilter) ([]AssignmentRecord, error)
	ListExpenditures(ctx context.Context, f HistoryFilter) ([]ExpenditureRecord, error)
}
