package command

import (
	"context"
	"fmt"

	"github.com/mams-platform/mams/internal/ledger/domain"
	"github.com/mams-platform/mams/kafka"
)

// RecordTransferCommand represents the command to transfer assets between bases
type RecordTransferCommand struct {
	EquipmentTypeID uint
	FromBaseID      uint
	ToBaseID        uint
	Quantity        int
	InitiatedByID   uint
}

// RecordTransferHandler handles record transfer command
type RecordTransferHandler struct {
	repo      domain.LedgerRepository
	publisher MovementPublisher
}

// NewRecordTransferHandler creates a new record transfer handler
func NewRecordTransferHandler(repo domain.LedgerRepository, publisher MovementPublisher) *RecordTransferHandler {
	return &RecordTransferHandler{repo: repo, publisher: publisher}
}

// Handle executes the record transfer command
func (h *RecordTransferHandler) Handle(ctx context.Context, cmd RecordTransferCommand) (*domain.TransferRecord, error) {
	if cmd.EquipmentTypeID == 0 {
		return nil, fmt.Errorf("equipment_type_id is required")
	}
	if cmd.FromBaseID == 0 || cmd.ToBaseID == 0 {
		return nil, fmt.Errorf("from_base_id and to_base_id are required")
	}
	if cmd.FromBaseID == cmd.ToBaseID {
		return nil, domain.ErrSameBase
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	rec := &domain.TransferRecord{
		EquipmentTypeID: cmd.EquipmentTypeID,
		FromBaseID:      cmd.FromBaseID,
		ToBaseID:        cmd.ToBaseID,
		Quantity:        cmd.Quantity,
		InitiatedByID:   cmd.InitiatedByID,
		Status:          domain.TransferCompleted,
	}

	if err := h.repo.ApplyTransfer(ctx, rec); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, kafka.AssetMovementEvent{
		EventType:       kafka.EventTypeTransfer,
		RecordID:        rec.ID,
		EquipmentTypeID: rec.EquipmentTypeID,
		Quantity:        rec.Quantity,
		FromBaseID:      rec.FromBaseID,
		ToBaseID:        rec.ToBaseID,
		ActorID:         rec.InitiatedByID,
	})

	return rec, nil
}
