package command

import (
	"context"
	"fmt"

	"github.com/mams-platform/mams/internal/ledger/domain"
	"github.com/mams-platform/mams/kafka"
)

// RecordExpenditureCommand represents the command to record asset consumption
type RecordExpenditureCommand struct {
	EquipmentTypeID uint
	BaseID          uint
	Quantity        int
	Notes           string
}

// RecordExpenditureHandler handles record expenditure command
type RecordExpenditureHandler struct {
	repo      domain.LedgerRepository
	publisher MovementPublisher
}

// NewRecordExpenditureHandler creates a new record expenditure handler
func NewRecordExpenditureHandler(repo domain.LedgerRepository, publisher MovementPublisher) *RecordExpenditureHandler {
	return &RecordExpenditureHandler{repo: repo, publisher: publisher}
}

// Handle executes the record expenditure command
func (h *RecordExpenditureHandler) Handle(ctx context.Context, cmd RecordExpenditureCommand) (*domain.ExpenditureRecord, error) {
	if cmd.EquipmentTypeID == 0 {
		return nil, fmt.Errorf("equipment_type_id is required")
	}
	if cmd.BaseID == 0 {
		return nil, fmt.Errorf("base_id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	rec := &domain.ExpenditureRecord{
		EquipmentTypeID: cmd.EquipmentTypeID,
		BaseID:          cmd.BaseID,
		Quantity:        cmd.Quantity,
		Notes:           cmd.Notes,
	}

	if err := h.repo.ApplyExpenditure(ctx, rec); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, kafka.AssetMovementEvent{
		EventType:       kafka.EventTypeExpenditure,
		RecordID:        rec.ID,
		EquipmentTypeID: rec.EquipmentTypeID,
		Quantity:        rec.Quantity,
		BaseID:          rec.BaseID,
	})

	return rec, nil
}
