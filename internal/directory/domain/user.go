package domain

import (
	"errors"
	"time"
)

// Roles
const (
	RoleAdmin            = "ADMIN"
	RoleBaseCommander    = "BASE_COMMANDER"
	RoleLogisticsOfficer = "LOGISTICS_OFFICER"
)

// ErrUserNotFound is returned when a user does not exist
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when registering a username that already exists
var ErrUsernameTaken = errors.New("username already taken")

// User represents personnel with a role and optional home base. Role and
// base together define what the user may see and do.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // Never expose password in JSON
	FullName  string    `json:"full_name"`
	Role      string    `json:"role" gorm:"not null;default:'LOGISTICS_OFFICER'"`
	BaseID    *uint     `json:"base_id" gorm:"index"`
	Base      *Base     `json:"base,omitempty" gorm:"foreignKey:BaseID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether the given role is one of the known roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBaseCommander, RoleLogisticsOfficer:
		return true
	}
	return false
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(user *User) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	FindAll(limit, offset int) ([]User, error)
	Update(user *User) error
}
