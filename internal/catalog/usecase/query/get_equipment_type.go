package query

import (
	"fmt"

	"github.com/mams-platform/mams/internal/catalog/domain"
)

// GetEquipmentTypeQuery represents the query to get an equipment type
type GetEquipmentTypeQuery struct {
	ID uint
}

// GetEquipmentTypeHandler handles get equipment type query
type GetEquipmentTypeHandler struct {
	repo domain.EquipmentTypeRepository
}

// NewGetEquipmentTypeHandler creates a new get equipment type handler
func NewGetEquipmentTypeHandler(repo domain.EquipmentTypeRepository) *GetEquipmentTypeHandler {
	return &GetEquipmentTypeHandler{repo: repo}
}

// Handle executes the get equipment type query
func (h *GetEquipmentTypeHandler) Handle(q GetEquipmentTypeQuery) (*domain.EquipmentType, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}
	return h.repo.FindByID(q.ID)
}
