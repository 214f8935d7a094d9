package command

import (
	"context"
	"fmt"

	"github.com/mams-platform/mams/internal/ledger/domain"
	"github.com/mams-platform/mams/kafka"
)

// RecordPurchaseCommand represents the command to record an asset purchase
type RecordPurchaseCommand struct {
	EquipmentTypeID uint
	BaseID          uint
	Quantity        int
	Vendor          string
	UnitPrice       *float64
}

// RecordPurchaseHandler handles record purchase command
type RecordPurchaseHandler struct {
	repo      domain.LedgerRepository
	publisher MovementPublisher
}

// NewRecordPurchaseHandler creates a new record purchase handler
func NewRecordPurchaseHandler(repo domain.LedgerRepository, publisher MovementPublisher) *RecordPurchaseHandler {
	return &RecordPurchaseHandler{repo: repo, publisher: publisher}
}

// Handle executes the record purchase command
func (h *RecordPurchaseHandler) Handle(ctx context.Context, cmd RecordPurchaseCommand) (*domain.PurchaseRecord, error) {
	if cmd.EquipmentTypeID == 0 {
		return nil, fmt.Errorf("equipment_type_id is required")
	}
	if cmd.BaseID == 0 {
		return nil, fmt.Errorf("base_id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if cmd.UnitPrice != nil && *cmd.UnitPrice < 0 {
		return nil, fmt.Errorf("unit_price cannot be negative")
	}

	rec := &domain.PurchaseRecord{
		EquipmentTypeID: cmd.EquipmentTypeID,
		BaseID:          cmd.BaseID,
		Quantity:        cmd.Quantity,
		Vendor:          cmd.Vendor,
		UnitPrice:       cmd.UnitPrice,
	}

	if err := h.repo.ApplyPurchase(ctx, rec); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, kafka.AssetMovementEvent{
		EventType:       kafka.EventTypePurchase,
		RecordID:        rec.ID,
		EquipmentTypeID: rec.EquipmentTypeID,
		Quantity:        rec.Quantity,
		BaseID:          rec.BaseID,
	})

	return rec, nil
}
