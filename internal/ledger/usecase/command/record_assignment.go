package command

import (
	"context"
	"fmt"

	"github.com/mams-platform/mams/internal/ledger/domain"
	"github.com/mams-platform/mams/kafka"
)

// RecordAssignmentCommand represents the command to assign assets to personnel
type RecordAssignmentCommand struct {
	EquipmentTypeID uint
	IssuingBaseID   uint
	Quantity        int
	AssignedToID    uint
}

// RecordAssignmentHandler handles record assignment command
type RecordAssignmentHandler struct {
	repo      domain.LedgerRepository
	publisher MovementPublisher
}

// NewRecordAssignmentHandler creates a new record assignment handler
func NewRecordAssignmentHandler(repo domain.LedgerRepository, publisher MovementPublisher) *RecordAssignmentHandler {
	return &RecordAssignmentHandler{repo: repo, publisher: publisher}
}

// Handle executes the record assignment command
func (h *RecordAssignmentHandler) Handle(ctx context.Context, cmd RecordAssignmentCommand) (*domain.AssignmentRecord, error) {
	if cmd.EquipmentTypeID == 0 {
		return nil, fmt.Errorf("equipment_type_id is required")
	}
	if cmd.IssuingBaseID == 0 {
		return nil, fmt.Errorf("issuing_base_id is required")
	}
	if cmd.AssignedToID == 0 {
		return nil, fmt.Errorf("assigned_to_id is required")
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	rec := &domain.AssignmentRecord{
		EquipmentTypeID: cmd.EquipmentTypeID,
		IssuingBaseID:   cmd.IssuingBaseID,
		Quantity:        cmd.Quantity,
		AssignedToID:    cmd.AssignedToID,
	}

	if err := h.repo.ApplyAssignment(ctx, rec); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, kafka.AssetMovementEvent{
		EventType:       kafka.EventTypeAssignment,
		RecordID:        rec.ID,
		EquipmentTypeID: rec.EquipmentTypeID,
		Quantity:        rec.Quantity,
		BaseID:          rec.IssuingBaseID,
		ActorID:         rec.AssignedToID,
	})

	return rec, nil
}
