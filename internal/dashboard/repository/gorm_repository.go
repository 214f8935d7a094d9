package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mams-platform/mams/internal/dashboard/domain"
)

// GormSummaryRepository computes dashboard aggregates with SQL SUMs over the
// ledger tables and the inventory table. All sums coalesce to zero so an
// empty scope reads as a zeroed summary rather than NULL.
type GormSummaryRepository struct {
	db *gorm.DB
}

func NewGormSummaryRepository(db *gorm.DB) *GormSummaryRepository {
	return &GormSummaryRepository{db: db}
}

func (r *GormSummaryRepository) ClosingBalance(ctx context.Context, scope domain.Scope) (int64, error) {
	q := r.db.WithContext(ctx).Table("asset_inventories").
		Select("COALESCE(SUM(quantity), 0)")
	if scope.BaseID != nil {
		q = q.Where("base_id = ?", *scope.BaseID)
	}
	if scope.EquipmentTypeID != nil {
		q = q.Where("equipment_type_id = ?", *scope.EquipmentTypeID)
	}
	var total int64
	if err := q.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormSummaryRepository) PurchaseTotal(ctx context.Context, scope domain.Scope, period domain.DateRange) (int64, error) {
	return r.movementTotal(ctx, "purchase_records", "base_id", scope, period)
}

func (r *GormSummaryRepository) TransferInTotal(ctx context.Context, scope domain.Scope, period domain.DateRange) (int64, error) {
	return r.movementTotal(ctx, "transfer_records", "to_base_id", scope, period)
}

func (r *GormSummaryRepository) TransferOutTotal(ctx context.Context, scope domain.Scope, period domain.DateRange) (int64, error) {
	return r.movementTotal(ctx, "transfer_records", "from_base_id", scope, period)
}

func (r *GormSummaryRepository) AssignmentTotal(ctx context.Context, scope domain.Scope, period domain.DateRange) (int64, error) {
	return r.movementTotal(ctx, "assignment_records", "issuing_base_id", scope, period)
}

func (r *GormSummaryRepository) ExpenditureTotal(ctx context.Context, scope domain.Scope, period domain.DateRange) (int64, error) {
	return r.movementTotal(ctx, "expenditure_records", "base_id", scope, period)
}

// movementTotal sums quantity over one ledger table, scoping by the table's
// base column and bounding by created_at.
func (r *GormSummaryRepository) movementTotal(ctx context.Context, table, baseColumn string, scope domain.Scope, period domain.DateRange) (int64, error) {
	q := r.db.WithContext(ctx).Table(table).
		Select("COALESCE(SUM(quantity), 0)")
	if scope.BaseID != nil {
		q = q.Where(baseColumn+" = ?", *scope.BaseID)
	}
	if scope.EquipmentTypeID != nil {
		q = q.Where("equipment_type_id = ?", *scope.EquipmentTypeID)
	}
	if period.Start != nil {
		q = q.Where("created_at >= ?", *period.Start)
	}
	if period.End != nil {
		q = q.Where("created_at <= ?", *period.End)
	}
	var total int64
	if err := q.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
