package domain

import (
	"errors"
	"time"
)

// ErrTypeReferenced is returned when deleting an equipment type that ledger
// or inventory rows still reference
var ErrTypeReferenced = errors.New("equipment type is referenced by existing records")

// ErrTypeNotFound is returned when an equipment type does not exist
var ErrTypeNotFound = errors.New("equipment type not found")

// EquipmentType is immutable reference data describing a class of asset,
// e.g. "M4 Rifle" / "Weapon" or "5.56mm Rounds" / "Ammunition"
type EquipmentType struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (EquipmentType) TableName() string {
	return "equipment_types"
}

// EquipmentTypeRepository defines the contract for equipment type data access
type EquipmentTypeRepository interface {
	Create(equipmentType *EquipmentType) error
	FindByID(id uint) (*EquipmentType, error)
	FindAll(limit, offset int) ([]EquipmentType, error)
	Update(equipmentType *EquipmentType) error
	Delete(id uint) error
}
