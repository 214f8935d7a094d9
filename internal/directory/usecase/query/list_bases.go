package query

import (
	"fmt"

	"github.com/mams-platform/mams/internal/directory/domain"
)

// ListBasesHandler handles list bases query
type ListBasesHandler struct {
	repo domain.BaseRepository
}

// NewListBasesHandler creates a new list bases handler
func NewListBasesHandler(repo domain.BaseRepository) *ListBasesHandler {
	return &ListBasesHandler{repo: repo}
}

// Handle executes the list bases query
func (h *ListBasesHandler) Handle() ([]domain.Base, error) {
	bases, err := h.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list bases: %w", err)
	}
	return bases, nil
}
