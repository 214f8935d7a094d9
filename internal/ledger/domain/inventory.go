package domain

import (
	"time"

	catalogdomain "github.com/mams-platform/mams/internal/catalog/domain"
	directorydomain "github.com/mams-platform/mams/internal/directory/domain"
)

// InventoryRecord is the current quantity of an equipment type at a base.
// Exactly one row exists per (base, equipment type) pair; the quantity is the
// running sum of inflows minus outflows for that key and never goes negative.
// The row is created lazily by the first event touching the key and is only
// ever mutated inside the same transaction as the event that moves it.
type InventoryRecord struct {
	ID              uint                         `json:"id" gorm:"primaryKey"`
	BaseID          uint                         `json:"base_id" gorm:"not null;uniqueIndex:idx_inventory_key"`
	EquipmentTypeID uint                         `json:"equipment_type_id" gorm:"not null;uniqueIndex:idx_inventory_key"`
	Quantity        int                          `json:"quantity" gorm:"not null;default:0;check:quantity >= 0"`
	Base            *directorydomain.Base        `json:"base,omitempty" gorm:"foreignKey:BaseID;constraint:OnDelete:RESTRICT"`
	EquipmentType   *catalogdomain.EquipmentType `json:"equipment_type,omitempty" gorm:"foreignKey:EquipmentTypeID;constraint:OnDelete:RESTRICT"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}

// TableName specifies the table name
func (InventoryRecord) TableName() string {
	return "asset_inventories"
}
