package command

import (
	"fmt"

	"github.com/mams-platform/mams/internal/directory/domain"
)

// AssignBaseCommand represents the command to assign a user to a base
type AssignBaseCommand struct {
	UserID uint
	BaseID *uint // nil clears the assignment
}

// AssignBaseHandler handles base assignment command
type AssignBaseHandler struct {
	users domain.UserRepository
	bases domain.BaseRepository
}

// NewAssignBaseHandler creates a new assign base handler
func NewAssignBaseHandler(users domain.UserRepository, bases domain.BaseRepository) *AssignBaseHandler {
	return &AssignBaseHandler{users: users, bases: bases}
}

// Handle executes the assign base command
func (h *AssignBaseHandler) Handle(cmd AssignBaseCommand) (*domain.User, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user_id is required")
	}

	user, err := h.users.FindByID(cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.BaseID != nil {
		if _, err := h.bases.FindByID(*cmd.BaseID); err != nil {
			return nil, fmt.Errorf("invalid base: %w", err)
		}
	}

	user.BaseID = cmd.BaseID
	user.Base = nil

	if err := h.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to assign base: %w", err)
	}

	return user, nil
}
