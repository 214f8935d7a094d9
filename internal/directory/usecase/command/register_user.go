package command

import (
	"fmt"

	"github.com/mams-platform/mams/internal/directory/domain"
	"github.com/mams-platform/mams/pkg/auth"
)

// RegisterUserCommand represents the command to register a user
type RegisterUserCommand struct {
	Username string
	Password string
	FullName string
	Role     string
	BaseID   *uint
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	users domain.UserRepository
	bases domain.BaseRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(users domain.UserRepository, bases domain.BaseRepository) *RegisterUserHandler {
	return &RegisterUserHandler{users: users, bases: bases}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(cmd.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if cmd.Role == "" {
		cmd.Role = domain.RoleLogisticsOfficer
	}
	if !domain.ValidRole(cmd.Role) {
		return nil, fmt.Errorf("unknown role: %s", cmd.Role)
	}

	if cmd.BaseID != nil {
		if _, err := h.bases.FindByID(*cmd.BaseID); err != nil {
			return nil, fmt.Errorf("invalid base: %w", err)
		}
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username: cmd.Username,
		Password: hash,
		FullName: cmd.FullName,
		Role:     cmd.Role,
		BaseID:   cmd.BaseID,
	}

	if err := h.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return user, nil
}
