package domain

import (
	"errors"
	"time"
)

// ErrBaseNotFound is returned when a base does not exist
var ErrBaseNotFound = errors.New("base not found")

// ErrBaseNameTaken is returned when creating a base with a duplicate name
var ErrBaseNameTaken = errors.New("base name already exists")

// Base is an operating location that holds inventory and personnel
type Base struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Base) TableName() string {
	return "bases"
}

// BaseRepository defines the contract for base data access
type BaseRepository interface {
	Create(base *Base) error
	FindByID(id uint) (*Base, error)
	FindAll() ([]Base, error)
}
