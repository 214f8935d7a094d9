package query

import (
	"fmt"

	"github.com/mams-platform/mams/internal/catalog/domain"
)

// ListEquipmentTypesQuery represents the query to list equipment types
type ListEquipmentTypesQuery struct {
	Limit  int
	Offset int
}

// ListEquipmentTypesHandler handles list equipment types query
type ListEquipmentTypesHandler struct {
	repo domain.EquipmentTypeRepository
}

// NewListEquipmentTypesHandler creates a new list equipment types handler
func NewListEquipmentTypesHandler(repo domain.EquipmentTypeRepository) *ListEquipmentTypesHandler {
	return &ListEquipmentTypesHandler{repo: repo}
}

// Handle executes the list equipment types query
func (h *ListEquipmentTypesHandler) Handle(q ListEquipmentTypesQuery) ([]domain.EquipmentType, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	types, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment types: %w", err)
	}
	return types, nil
}
