package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mams-platform/mams/internal/ledger/domain"
	"github.com/mams-platform/mams/pkg/logger"
)

// maxRetries bounds transparent retries after serialization conflicts
const maxRetries = 3

// GormLedgerRepository implements LedgerRepository using GORM transactions
// with row-level locks. The check-then-decrement sequence for every outflow
// runs under SELECT ... FOR UPDATE on the affected inventory rows, so
// concurrent operations on the same key serialize instead of racing a stale
// quantity.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// AutoMigrate runs database migrations for all ledger tables
func (r *GormLedgerRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.InventoryRecord{},
		&domain.PurchaseRecord{},
		&domain.TransferRecord{},
		&domain.AssignmentRecord{},
		&domain.ExpenditureRecord{},
	)
}

// ApplyPurchase increments inventory at the destination base and persists the
// purchase record. Purchases never fail on sufficiency.
func (r *GormLedgerRepository) ApplyPurchase(ctx context.Context, rec *domain.PurchaseRecord) error {
	return r.withRetry(ctx, func(tx *gorm.DB) error {
		if err := ensureInventory(tx, rec.BaseID, rec.EquipmentTypeID); err != nil {
			return err
		}

		inv, err := lockInventory(tx, rec.BaseID, rec.EquipmentTypeID)
		if err != nil {
			return err
		}

		if err := adjustQuantity(tx, inv.ID, rec.Quantity); err != nil {
			return err
		}

		if err := tx.Create(rec).Error; err != nil {
			return mapPgError(err, "failed to create purchase record")
		}
		return nil
	})
}

// ApplyTransfer moves quantity from one base to another. Both inventory rows
// are locked in ascending base order so two transfers with swapped endpoints
// cannot deadlock.
func (r *GormLedgerRepository) ApplyTransfer(ctx context.Context, rec *domain.TransferRecord) error {
	if rec.FromBaseID == rec.ToBaseID {
		return domain.ErrSameBase
	}

	return r.withRetry(ctx, func(tx *gorm.DB) error {
		if err := ensureInventory(tx, rec.ToBaseID, rec.EquipmentTypeID); err != nil {
			return err
		}

		first, second := rec.FromBaseID, rec.ToBaseID
		if second < first {
			first, second = second, first
		}

		locked := make(map[uint]*domain.InventoryRecord, 2)
		for _, baseID := range []uint{first, second} {
			inv, err := lockInventory(tx, baseID, rec.EquipmentTypeID)
			if err != nil {
				return err
			}
			locked[baseID] = inv
		}

		source := locked[rec.FromBaseID]
		if source.Quantity < rec.Quantity {
			return domain.ErrInsufficientStock
		}

		if err := adjustQuantity(tx, source.ID, -rec.Quantity); err != nil {
			return err
		}
		if err := adjustQuantity(tx, locked[rec.ToBaseID].ID, rec.Quantity); err != nil {
			return err
		}

		if rec.Status == "" {
			rec.Status = domain.TransferCompleted
		}
		if err := tx.Create(rec).Error; err != nil {
			return mapPgError(err, "failed to create transfer record")
		}
		return nil
	})
}

// ApplyAssignment decrements inventory at the issuing base and persists the
// assignment record
func (r *GormLedgerRepository) ApplyAssignment(ctx context.Context, rec *domain.AssignmentRecord) error {
	return r.withRetry(ctx, func(tx *gorm.DB) error {
		inv, err := lockInventory(tx, rec.IssuingBaseID, rec.EquipmentTypeID)
		if err != nil {
			return err
		}

		if inv.Quantity < rec.Quantity {
			return domain.ErrInsufficientStock
		}

		if err := adjustQuantity(tx, inv.ID, -rec.Quantity); err != nil {
			return err
		}

		if err := tx.Create(rec).Error; err != nil {
			return mapPgError(err, "failed to create assignment record")
		}
		return nil
	})
}

// ApplyExpenditure decrements inventory at the base and persists the
// expenditure record
func (r *GormLedgerRepository) ApplyExpenditure(ctx context.Context, rec *domain.ExpenditureRecord) error {
	return r.withRetry(ctx, func(tx *gorm.DB) error {
		inv, err := lockInventory(tx, rec.BaseID, rec.EquipmentTypeID)
		if err != nil {
			return err
		}

		if inv.Quantity < rec.Quantity {
			return domain.ErrInsufficientStock
		}

		if err := adjustQuantity(tx, inv.ID, -rec.Quantity); err != nil {
			return err
		}

		if err := tx.Create(rec).Error; err != nil {
			return mapPgError(err, "failed to create expenditure record")
		}
		return nil
	})
}

// FindInventory returns the current inventory record for a (base, equipment
// type) key
func (r *GormLedgerRepository) FindInventory(ctx context.Context, baseID, equipmentTypeID uint) (*domain.InventoryRecord, error) {
	var inv domain.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("base_id = ? AND equipment_type_id = ?", baseID, equipmentTypeID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMissingInventory
		}
		return nil, fmt.Errorf("failed to find inventory record: %w", err)
	}
	return &inv, nil
}

// ListInventory returns inventory records, optionally restricted to a base
func (r *GormLedgerRepository) ListInventory(ctx context.Context, baseID *uint, limit, offset int) ([]domain.InventoryRecord, error) {
	var records []domain.InventoryRecord
	query := r.db.WithContext(ctx).
		Preload("Base").
		Preload("EquipmentType").
		Order("base_id ASC, equipment_type_id ASC")

	if baseID != nil {
		query = query.Where("base_id = ?", *baseID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory records: %w", err)
	}
	return records, nil
}

// ListPurchases returns purchase history, newest first
func (r *GormLedgerRepository) ListPurchases(ctx context.Context, f domain.HistoryFilter) ([]domain.PurchaseRecord, error) {
	var records []domain.PurchaseRecord
	query := r.history(ctx, f)
	if f.BaseID != nil {
		query = query.Where("base_id = ?", *f.BaseID)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchase records: %w", err)
	}
	return records, nil
}

// ListTransfers returns transfer history, newest first. A base filter matches
// either leg of the transfer.
func (r *GormLedgerRepository) ListTransfers(ctx context.Context, f domain.HistoryFilter) ([]domain.TransferRecord, error) {
	var records []domain.TransferRecord
	query := r.history(ctx, f)
	if f.BaseID != nil {
		query = query.Where("from_base_id = ? OR to_base_id = ?", *f.BaseID, *f.BaseID)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list transfer records: %w", err)
	}
	return records, nil
}

// ListAssignments returns assignment history, newest first
func (r *GormLedgerRepository) ListAssignments(ctx context.Context, f domain.HistoryFilter) ([]domain.AssignmentRecord, error) {
	var records []domain.AssignmentRecord
	query := r.history(ctx, f)
	if f.BaseID != nil {
		query = query.Where("issuing_base_id = ?", *f.BaseID)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignment records: %w", err)
	}
	return records, nil
}

// ListExpenditures returns expenditure history, newest first
func (r *GormLedgerRepository) ListExpenditures(ctx context.Context, f domain.HistoryFilter) ([]domain.ExpenditureRecord, error) {
	var records []domain.ExpenditureRecord
	query := r.history(ctx, f)
	if f.BaseID != nil {
		query = query.Where("base_id = ?", *f.BaseID)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenditure records: %w", err)
	}
	return records, nil
}

func (r *GormLedgerRepository) history(ctx context.Context, f domain.HistoryFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if f.EquipmentTypeID != nil {
		query = query.Where("equipment_type_id = ?", *f.EquipmentTypeID)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}
	return query
}

// withRetry runs fn inside a transaction, retrying the whole transaction on
// serialization conflicts up to maxRetries before giving up
func (r *GormLedgerRepository) withRetry(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = r.db.WithContext(ctx).Transaction(fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		logger.Warn(ctx).
			Err(err).
			Int("attempt", attempt).
			Msg("Ledger transaction conflict, retrying")
	}
	return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
}

// ensureInventory creates the inventory row at quantity zero if the key has
// never been touched. ON CONFLICT DO NOTHING makes the get-or-create step
// safe against concurrent first events on the same key.
func ensureInventory(tx *gorm.DB, baseID, equipmentTypeID uint) error {
	inv := &domain.InventoryRecord{
		BaseID:          baseID,
		EquipmentTypeID: equipmentTypeID,
		Quantity:        0,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "base_id"}, {Name: "equipment_type_id"}},
		DoNothing: true,
	}).Create(inv).Error
	if err != nil {
		return mapPgError(err, "failed to ensure inventory record")
	}
	return nil
}

// lockInventory reads the inventory row under FOR UPDATE. A missing row means
// zero stock was ever recorded at the key.
func lockInventory(tx *gorm.DB, baseID, equipmentTypeID uint) (*domain.InventoryRecord, error) {
	var inv domain.InventoryRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("base_id = ? AND equipment_type_id = ?", baseID, equipmentTypeID).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMissingInventory
		}
		return nil, fmt.Errorf("failed to lock inventory record: %w", err)
	}
	return &inv, nil
}

func adjustQuantity(tx *gorm.DB, inventoryID uint, delta int) error {
	err := tx.Model(&domain.InventoryRecord{}).
		Where("id = ?", inventoryID).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
	if err != nil {
		return mapPgError(err, "failed to adjust inventory quantity")
	}
	return nil
}

// mapPgError translates low-level postgres errors into domain errors
func mapPgError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign key violation
			return fmt.Errorf("%w: %s", domain.ErrUnknownReference, pgErr.ConstraintName)
		case "23514": // check violation, quantity went negative
			return domain.ErrInsufficientStock
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// isRetryable reports whether the error is a transient transaction conflict
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
