package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/mams-platform/mams/internal/ledger/domain"
)

var tracer = otel.Tracer("ledger-repository")

// TracedLedgerRepository wraps GormLedgerRepository with tracing spans around
// the mutating operations
type TracedLedgerRepository struct {
	*GormLedgerRepository
}

// NewTracedLedgerRepository creates a new ledger repository with tracing
func NewTracedLedgerRepository(db *gorm.DB) *TracedLedgerRepository {
	return &TracedLedgerRepository{
		GormLedgerRepository: NewGormLedgerRepository(db),
	}
}

func (r *TracedLedgerRepository) ApplyPurchase(ctx context.Context, rec *domain.PurchaseRecord) error {
	ctx, span := tracer.Start(ctx, "repository.ApplyPurchase",
		attributes(rec.EquipmentTypeID, rec.Quantity, attribute.Int64("base.id", int64(rec.BaseID))),
	)
	defer span.End()

	err := r.GormLedgerRepository.ApplyPurchase(ctx, rec)
	return finish(span, err)
}

func (r *TracedLedgerRepository) ApplyTransfer(ctx context.Context, rec *domain.TransferRecord) error {
	ctx, span := tracer.Start(ctx, "repository.ApplyTransfer",
		attributes(rec.EquipmentTypeID, rec.Quantity,
			attribute.Int64("base.from", int64(rec.FromBaseID)),
			attribute.Int64("base.to", int64(rec.ToBaseID)),
		),
	)
	defer span.End()

	err := r.GormLedgerRepository.ApplyTransfer(ctx, rec)
	return finish(span, err)
}

func (r *TracedLedgerRepository) ApplyAssignment(ctx context.Context, rec *domain.AssignmentRecord) error {
	ctx, span := tracer.Start(ctx, "repository.ApplyAssignment",
		attributes(rec.EquipmentTypeID, rec.Quantity, attribute.Int64("base.id", int64(rec.IssuingBaseID))),
	)
	defer span.End()

	err := r.GormLedgerRepository.ApplyAssignment(ctx, rec)
	return finish(span, err)
}

func (r *TracedLedgerRepository) ApplyExpenditure(ctx context.Context, rec *domain.ExpenditureRecord) error {
	ctx, span := tracer.Start(ctx, "repository.ApplyExpenditure",
		attributes(rec.EquipmentTypeID, rec.Quantity, attribute.Int64("base.id", int64(rec.BaseID))),
	)
	defer span.End()

	err := r.GormLedgerRepository.ApplyExpenditure(ctx, rec)
	return finish(span, err)
}

func attributes(equipmentTypeID uint, quantity int, extra ...attribute.KeyValue) trace.SpanStartOption {
	attrs := append([]attribute.KeyValue{
		attribute.Int64("equipment_type.id", int64(equipmentTypeID)),
		attribute.Int("movement.quantity", quantity),
	}, extra...)
	return trace.WithAttributes(attrs...)
}

func finish(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
