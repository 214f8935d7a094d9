package domain

import (
	"time"

	catalogdomain "github.com/mams-platform/mams/internal/catalog/domain"
	directorydomain "github.com/mams-platform/mams/internal/directory/domain"
)

// Transfer statuses
const (
	TransferPending   = "PENDING"
	TransferInTransit = "IN_TRANSIT"
	TransferCompleted = "COMPLETED"
)

// PurchaseRecord logs procurement of new assets for a base. Inflow.
type PurchaseRecord struct {
	ID              uint                         `json:"id" gorm:"primaryKey"`
	EquipmentTypeID uint                         `json:"equipment_type_id" gorm:"not null;index"`
	BaseID          uint                         `json:"base_id" gorm:"not null;index"`
	Quantity        int                          `json:"quantity" gorm:"not null"`
	Vendor          string                       `json:"vendor"`
	UnitPrice       *float64                     `json:"unit_price"`
	EquipmentType   *catalogdomain.EquipmentType `json:"equipment_type,omitempty" gorm:"foreignKey:EquipmentTypeID;constraint:OnDelete:RESTRICT"`
	Base            *directorydomain.Base        `json:"base,omitempty" gorm:"foreignKey:BaseID;constraint:OnDelete:RESTRICT"`
	CreatedAt       time.Time                    `json:"created_at"`
}

// TableName specifies the table name
func (PurchaseRecord) TableName() string {
	return "purchase_records"
}

// TransferRecord logs movement of assets between two bases. Outflow from
// FromBase, inflow to ToBase.
type TransferRecord struct {
	ID              uint                         `json:"id" gorm:"primaryKey"`
	EquipmentTypeID uint                         `json:"equipment_type_id" gorm:"not null;index"`
	Quantity        int                          `json:"quantity" gorm:"not null"`
	FromBaseID      uint                         `json:"from_base_id" gorm:"not null;index"`
	ToBaseID        uint                         `json:"to_base_id" gorm:"not null;index"`
	InitiatedByID   uint                         `json:"initiated_by_id"`
	Status          string                       `json:"status" gorm:"not null;default:'COMPLETED'"`
	EquipmentType   *catalogdomain.EquipmentType `json:"equipment_type,omitempty" gorm:"foreignKey:EquipmentTypeID;constraint:OnDelete:RESTRICT"`
	FromBase        *directorydomain.Base        `json:"from_base,omitempty" gorm:"foreignKey:FromBaseID;constraint:OnDelete:RESTRICT"`
	ToBase          *directorydomain.Base        `json:"to_base,omitempty" gorm:"foreignKey:ToBaseID;constraint:OnDelete:RESTRICT"`
	CreatedAt       time.Time                    `json:"created_at"`
}

// TableName specifies the table name
func (TransferRecord) TableName() string {
	return "transfer_records"
}

// AssignmentRecord logs assets issued to personnel. Outflow from IssuingBase.
type AssignmentRecord struct {
	ID              uint                         `json:"id" gorm:"primaryKey"`
	EquipmentTypeID uint                         `json:"equipment_type_id" gorm:"not null;index"`
	Quantity        int                          `json:"quantity" gorm:"not null"`
	AssignedToID    uint                         `json:"assigned_to_id" gorm:"not null"`
	IssuingBaseID   uint                         `json:"issuing_base_id" gorm:"not null;index"`
	EquipmentType   *catalogdomain.EquipmentType `json:"equipment_type,omitempty" gorm:"foreignKey:EquipmentTypeID;constraint:OnDelete:RESTRICT"`
	AssignedTo      *directorydomain.User        `json:"assigned_to,omitempty" gorm:"foreignKey:AssignedToID;constraint:OnDelete:RESTRICT"`
	IssuingBase     *directorydomain.Base        `json:"issuing_base,omitempty" gorm:"foreignKey:IssuingBaseID;constraint:OnDelete:RESTRICT"`
	CreatedAt       time.Time                    `json:"created_at"`
}

// TableName specifies the table name
func (AssignmentRecord) TableName() string {
	return "assignment_records"
}

// ExpenditureRecord logs consumption of assets, e.g. ammunition spent in a
// training exercise. Outflow.
type ExpenditureRecord struct {
	ID              uint                         `json:"id" gorm:"primaryKey"`
	EquipmentTypeID uint                         `json:"equipment_type_id" gorm:"not null;index"`
	BaseID          uint                         `json:"base_id" gorm:"not null;index"`
	Quantity        int                          `json:"quantity" gorm:"not null"`
	Notes           string                       `json:"notes"`
	EquipmentType   *catalogdomain.EquipmentType `json:"equipment_type,omitempty" gorm:"foreignKey:EquipmentTypeID;constraint:OnDelete:RESTRICT"`
	Base            *directorydomain.Base        `json:"base,omitempty" gorm:"foreignKey:BaseID;constraint:OnDelete:RESTRICT"`
	CreatedAt       time.Time                    `json:"created_at"`
}

// TableName specifies the table name
func (ExpenditureRecord) TableName() string {
	return "expenditure_records"
}
