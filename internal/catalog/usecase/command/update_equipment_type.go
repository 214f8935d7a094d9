package command

import (
	"fmt"

	"github.com/mams-platform/mams/internal/catalog/domain"
)

// UpdateEquipmentTypeCommand represents the command to update an equipment type
type UpdateEquipmentTypeCommand struct {
	ID          uint
	Name        string
	Category    string
	Description string
}

// UpdateEquipmentTypeHandler handles update equipment type command
type UpdateEquipmentTypeHandler struct {
	repo domain.EquipmentTypeRepository
}

// NewUpdateEquipmentTypeHandler creates a new update equipment type handler
func NewUpdateEquipmentTypeHandler(repo domain.EquipmentTypeRepository) *UpdateEquipmentTypeHandler {
	return &UpdateEquipmentTypeHandler{repo: repo}
}

// Handle executes the update equipment type command
func (h *UpdateEquipmentTypeHandler) Handle(cmd UpdateEquipmentTypeCommand) (*domain.EquipmentType, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	equipmentType, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" {
		equipmentType.Name = cmd.Name
	}
	if cmd.Category != "" {
		equipmentType.Category = cmd.Category
	}
	if cmd.Description != "" {
		equipmentType.Description = cmd.Description
	}

	if err := h.repo.Update(equipmentType); err != nil {
		return nil, fmt.Errorf("failed to update equipment type: %w", err)
	}

	return equipmentType, nil
}
