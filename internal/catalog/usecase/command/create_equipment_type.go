package command

import (
	"fmt"

	"github.com/mams-platform/mams/internal/catalog/domain"
)

// CreateEquipmentTypeCommand represents the command to create an equipment type
type CreateEquipmentTypeCommand struct {
	Name        string
	Category    string
	Description string
}

// CreateEquipmentTypeHandler handles create equipment type command
type CreateEquipmentTypeHandler struct {
	repo domain.EquipmentTypeRepository
}

// NewCreateEquipmentTypeHandler creates a new create equipment type handler
func NewCreateEquipmentTypeHandler(repo domain.EquipmentTypeRepository) *CreateEquipmentTypeHandler {
	return &CreateEquipmentTypeHandler{repo: repo}
}

// Handle executes the create equipment type command
func (h *CreateEquipmentTypeHandler) Handle(cmd CreateEquipmentTypeCommand) (*domain.EquipmentType, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Category == "" {
		return nil, fmt.Errorf("category is required")
	}

	equipmentType := &domain.EquipmentType{
		Name:        cmd.Name,
		Category:    cmd.Category,
		Description: cmd.Description,
	}

	if err := h.repo.Create(equipmentType); err != nil {
		return nil, fmt.Errorf("failed to create equipment type: %w", err)
	}

	return equipmentType, nil
}
