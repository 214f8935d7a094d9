package command

import (
	"fmt"

	"github.com/mams-platform/mams/internal/catalog/domain"
)

// DeleteEquipmentTypeCommand represents the command to delete an equipment type
type DeleteEquipmentTypeCommand struct {
	ID uint
}

// DeleteEquipmentTypeHandler handles delete equipment type command
type DeleteEquipmentTypeHandler struct {
	repo domain.EquipmentTypeRepository
}

// NewDeleteEquipmentTypeHandler creates a new delete equipment type handler
func NewDeleteEquipmentTypeHandler(repo domain.EquipmentTypeRepository) *DeleteEquipmentTypeHandler {
	return &DeleteEquipmentTypeHandler{repo: repo}
}

// Handle executes the delete equipment type command
func (h *DeleteEquipmentTypeHandler) Handle(cmd DeleteEquipmentTypeCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}
	return h.repo.Delete(cmd.ID)
}
