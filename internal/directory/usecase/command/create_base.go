package command

import (
	"fmt"

	"github.com/mams-platform/mams/internal/directory/domain"
)

// CreateBaseCommand represents the command to create a base
type CreateBaseCommand struct {
	Name     string
	Location string
}

// CreateBaseHandler handles create base command
type CreateBaseHandler struct {
	repo domain.BaseRepository
}

// NewCreateBaseHandler creates a new create base handler
func NewCreateBaseHandler(repo domain.BaseRepository) *CreateBaseHandler {
	return &CreateBaseHandler{repo: repo}
}

// Handle executes the create base command
func (h *CreateBaseHandler) Handle(cmd CreateBaseCommand) (*domain.Base, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	base := &domain.Base{
		Name:     cmd.Name,
		Location: cmd.Location,
	}

	if err := h.repo.Create(base); err != nil {
		return nil, err
	}

	return base, nil
}
