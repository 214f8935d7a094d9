package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/mams-platform/mams/internal/catalog/domain"
)

// GormEquipmentTypeRepository implements EquipmentTypeRepository using GORM
type GormEquipmentTypeRepository struct {
	db *gorm.DB
}

// NewGormEquipmentTypeRepository creates a new GORM equipment type repository
func NewGormEquipmentTypeRepository(db *gorm.DB) *GormEquipmentTypeRepository {
	return &GormEquipmentTypeRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormEquipmentTypeRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.EquipmentType{})
}

func (r *GormEquipmentTypeRepository) Create(equipmentType *domain.EquipmentType) error {
	if err := r.db.Create(equipmentType).Error; err != nil {
		return fmt.Errorf("failed to create equipment type: %w", err)
	}
	return nil
}

func (r *GormEquipmentTypeRepository) FindByID(id uint) (*domain.EquipmentType, error) {
	var equipmentType domain.EquipmentType
	if err := r.db.First(&equipmentType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTypeNotFound
		}
		return nil, fmt.Errorf("failed to find equipment type: %w", err)
	}
	return &equipmentType, nil
}

func (r *GormEquipmentTypeRepository) FindAll(limit, offset int) ([]domain.EquipmentType, error) {
	var types []domain.EquipmentType
	query := r.db.Order("name ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list equipment types: %w", err)
	}
	return types, nil
}

func (r *GormEquipmentTypeRepository) Update(equipmentType *domain.EquipmentType) error {
	if err := r.db.Save(equipmentType).Error; err != nil {
		return fmt.Errorf("failed to update equipment type: %w", err)
	}
	return nil
}

// Delete removes an equipment type. Ledger tables reference the type with
// RESTRICT foreign keys, so deleting a referenced type surfaces as
// ErrTypeReferenced instead of cascading.
func (r *GormEquipmentTypeRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.EquipmentType{}, id)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrTypeReferenced
		}
		return fmt.Errorf("failed to delete equipment type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTypeNotFound
	}
	return nil
}
