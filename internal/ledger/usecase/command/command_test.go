package command

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mams-platform/mams/internal/ledger/domain"
	"github.com/mams-platform/mams/kafka"
)

// inventoryKey identifies one stock row in the fake ledger
type inventoryKey struct {
	baseID          uint
	equipmentTypeID uint
}

// fakeLedger mirrors the transactional ledger semantics in memory: every
// Apply checks sufficiency and mutates under one lock, so each event is
// atomic and quantities never go negative.
type fakeLedger struct {
	mu           sync.Mutex
	stock        map[inventoryKey]int
	purchases    []domain.PurchaseRecord
	transfers    []domain.TransferRecord
	assignments  []domain.AssignmentRecord
	expenditures []domain.ExpenditureRecord
	nextID       uint
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{stock: make(map[inventoryKey]int)}
}

func (f *fakeLedger) seed(baseID, typeID uint, qty int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stock[inventoryKey{baseID, typeID}] = qty
}

func (f *fakeLedger) quantity(baseID, typeID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[inventoryKey{baseID, typeID}]
}

func (f *fakeLedger) snapshot() map[inventoryKey]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[inventoryKey]int, len(f.stock))
	for k, v := range f.stock {
		out[k] = v
	}
	return out
}

func (f *fakeLedger) id() uint {
	f.nextID++
	return f.nextID
}

// debit fails without side effects when the key has no row or too little
// stock, matching the real repository's behavior.
func (f *fakeLedger) debit(key inventoryKey, qty int) error {
	current, exists := f.stock[key]
	if !exists {
		return domain.ErrMissingInventory
	}
	if current < qty {
		return domain.ErrInsufficientStock
	}
	f.stock[key] = current - qty
	return nil
}

func (f *fakeLedger) ApplyPurchase(_ context.Context, rec *domain.PurchaseRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stock[inventoryKey{rec.BaseID, rec.EquipmentTypeID}] += rec.Quantity
	rec.ID = f.id()
	f.purchases = append(f.purchases, *rec)
	return nil
}

func (f *fakeLedger) ApplyTransfer(_ context.Context, rec *domain.TransferRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec.FromBaseID == rec.ToBaseID {
		return domain.ErrSameBase
	}
	if err := f.debit(inventoryKey{rec.FromBaseID, rec.EquipmentTypeID}, rec.Quantity); err != nil {
		return err
	}
	f.stock[inventoryKey{rec.ToBaseID, rec.EquipmentTypeID}] += rec.Quantity
	rec.ID = f.id()
	f.transfers = append(f.transfers, *rec)
	return nil
}

func (f *fakeLedger) ApplyAssignment(_ context.Context, rec *domain.AssignmentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.debit(inventoryKey{rec.IssuingBaseID, rec.EquipmentTypeID}, rec.Quantity); err != nil {
		return err
	}
	rec.ID = f.id()
	f.assignments = append(f.assignments, *rec)
	return nil
}

func (f *fakeLedger) ApplyExpenditure(_ context.Context, rec *domain.ExpenditureRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.debit(inventoryKey{rec.BaseID, rec.EquipmentTypeID}, rec.Quantity); err != nil {
		return err
	}
	rec.ID = f.id()
	f.expenditures = append(f.expenditures, *rec)
	return nil
}

func (f *fakeLedger) FindInventory(_ context.Context, baseID, equipmentTypeID uint) (*domain.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	qty, exists := f.stock[inventoryKey{baseID, equipmentTypeID}]
	if !exists {
		return nil, domain.ErrMissingInventory
	}
	return &domain.InventoryRecord{BaseID: baseID, EquipmentTypeID: equipmentTypeID, Quantity: qty}, nil
}

func (f *fakeLedger) ListInventory(_ context.Context, baseID *uint, _, _ int) ([]domain.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.InventoryRecord
	for k, v := range f.stock {
		if baseID != nil && k.baseID != *baseID {
			continue
		}
		out = append(out, domain.InventoryRecord{BaseID: k.baseID, EquipmentTypeID: k.equipmentTypeID, Quantity: v})
	}
	return out, nil
}

func (f *fakeLedger) ListPurchases(_ context.Context, _ domain.HistoryFilter) ([]domain.PurchaseRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.PurchaseRecord(nil), f.purchases...), nil
}

func (f *fakeLedger) ListTransfers(_ context.Context, _ domain.HistoryFilter) ([]domain.TransferRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.TransferRecord(nil), f.transfers...), nil
}

func (f *fakeLedger) ListAssignments(_ context.Context, _ domain.HistoryFilter) ([]domain.AssignmentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.AssignmentRecord(nil), f.assignments...), nil
}

func (f *fakeLedger) ListExpenditures(_ context.Context, _ domain.HistoryFilter) ([]domain.ExpenditureRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ExpenditureRecord(nil), f.expenditures...), nil
}

// capturingPublisher records events handed to the audit stream
type capturingPublisher struct {
	mu     sync.Mutex
	events []kafka.AssetMovementEvent
}

func (p *capturingPublisher) PublishAssetMovement(_ context.Context, event kafka.AssetMovementEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func TestRecordPurchase(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	publisher := &capturingPublisher{}
	handler := NewRecordPurchaseHandler(ledger, publisher)

	rec, err := handler.Handle(ctx, RecordPurchaseCommand{
		EquipmentTypeID: 1,
		BaseID:          1,
		Quantity:        100,
		Vendor:          "Northrop Logistics",
	})
	require.NoError(t, err)
	require.NotZero(t, rec.ID)
	assert.Equal(t, 100, ledger.quantity(1, 1))

	// A second purchase accumulates on the same inventory key
	_, err = handler.Handle(ctx, RecordPurchaseCommand{EquipmentTypeID: 1, BaseID: 1, Quantity: 50})
	require.NoError(t, err)
	assert.Equal(t, 150, ledger.quantity(1, 1))

	require.Len(t, publisher.events, 2)
	assert.Equal(t, kafka.EventTypePurchase, publisher.events[0].EventType)
}

func TestRecordPurchaseValidation(t *testing.T) {
	ctx := context.Background()
	handler := NewRecordPurchaseHandler(newFakeLedger(), nil)

	_, err := handler.Handle(ctx, RecordPurchaseCommand{EquipmentTypeID: 1, BaseID: 1, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = handler.Handle(ctx, RecordPurchaseCommand{EquipmentTypeID: 1, BaseID: 1, Quantity: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = handler.Handle(ctx, RecordPurchaseCommand{BaseID: 1, Quantity: 10})
	assert.Error(t, err)

	negative := -1.0
	_, err = handler.Handle(ctx, RecordPurchaseCommand{EquipmentTypeID: 1, BaseID: 1, Quantity: 10, UnitPrice: &negative})
	assert.Error(t, err)
}

func TestRecordTransfer(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.seed(1, 7, 80)
	handler := NewRecordTransferHandler(ledger, nil)

	rec, err := handler.Handle(ctx, RecordTransferCommand{
		EquipmentTypeID: 7,
		FromBaseID:      1,
		ToBaseID:        2,
		Quantity:        30,
		InitiatedByID:   42,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransferCompleted, rec.Status)
	assert.Equal(t, 50, ledger.quantity(1, 7))
	assert.Equal(t, 30, ledger.quantity(2, 7))
}

func TestRecordTransferSameBase(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.seed(1, 7, 80)
	handler := NewRecordTransferHandler(ledger, nil)

	_, err := handler.Handle(ctx, RecordTransferCommand{
		EquipmentTypeID: 7,
		FromBaseID:      1,
		ToBaseID:        1,
		Quantity:        10,
	})
	assert.ErrorIs(t, err, domain.ErrSameBase)
	assert.Equal(t, 80, ledger.quantity(1, 7))
}

func TestRecordTransferInsufficientStock(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.seed(1, 7, 20)
	handler := NewRecordTransferHandler(ledger, nil)

	before := ledger.snapshot()
	_, err := handler.Handle(ctx, RecordTransferCommand{
		EquipmentTypeID: 7,
		FromBaseID:      1,
		ToBaseID:        2,
		Quantity:        25,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// A rejected transfer leaves no partial effect on either leg
	assert.Equal(t, before, ledger.snapshot())
}

func TestRecordExpenditure(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.seed(3, 9, 500)
	handler := NewRecordExpenditureHandler(ledger, nil)

	_, err := handler.Handle(ctx, RecordExpenditureCommand{
		EquipmentTypeID: 9,
		BaseID:          3,
		Quantity:        200,
		Notes:           "live fire exercise",
	})
	require.NoError(t, err)
	assert.Equal(t, 300, ledger.quantity(3, 9))
}

func TestRecordExpenditureMissingInventory(t *testing.T) {
	ctx := context.Background()
	handler := NewRecordExpenditureHandler(newFakeLedger(), nil)

	// No inventory row at the key reads as zero available
	_, err := handler.Handle(ctx, RecordExpenditureCommand{
		EquipmentTypeID: 9,
		BaseID:          3,
		Quantity:        1,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRecordAssignment(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.seed(2, 4, 10)
	handler := NewRecordAssignmentHandler(ledger, nil)

	_, err := handler.Handle(ctx, RecordAssignmentCommand{
		EquipmentTypeID: 4,
		IssuingBaseID:   2,
		Quantity:        3,
		AssignedToID:    17,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, ledger.quantity(2, 4))

	_, err = handler.Handle(ctx, RecordAssignmentCommand{
		EquipmentTypeID: 4,
		IssuingBaseID:   2,
		Quantity:        8,
		AssignedToID:    17,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 7, ledger.quantity(2, 4))
}

// TestMovementSequence walks a purchase and two transfers through one key:
// the second transfer must fail on sufficiency and change nothing.
func TestMovementSequence(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	purchase := NewRecordPurchaseHandler(ledger, nil)
	transfer := NewRecordTransferHandler(ledger, nil)

	_, err := purchase.Handle(ctx, RecordPurchaseCommand{EquipmentTypeID: 1, BaseID: 1, Quantity: 50})
	require.NoError(t, err)
	assert.Equal(t, 50, ledger.quantity(1, 1))

	_, err = transfer.Handle(ctx, RecordTransferCommand{EquipmentTypeID: 1, FromBaseID: 1, ToBaseID: 2, Quantity: 30})
	require.NoError(t, err)
	assert.Equal(t, 20, ledger.quantity(1, 1))
	assert.Equal(t, 30, ledger.quantity(2, 1))

	before := ledger.snapshot()
	_, err = transfer.Handle(ctx, RecordTransferCommand{EquipmentTypeID: 1, FromBaseID: 1, ToBaseID: 2, Quantity: 25})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, before, ledger.snapshot())
}

// TestConcurrentExpenditurePair races two expenditures of 15 against a stock
// of 20: exactly one may pass the sufficiency check.
func TestConcurrentExpenditurePair(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.seed(1, 1, 20)
	handler := NewRecordExpenditureHandler(ledger, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = handler.Handle(ctx, RecordExpenditureCommand{
				EquipmentTypeID: 1,
				BaseID:          1,
				Quantity:        15,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 5, ledger.quantity(1, 1))
}

// TestConcurrentExpenditures races many expenditures against one key. The
// combined success total must never exceed the seeded stock and the final
// quantity must be exactly stock minus what succeeded.
func TestConcurrentExpenditures(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.seed(1, 1, 100)
	handler := NewRecordExpenditureHandler(ledger, nil)

	const workers = 20
	const each = 10

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Handle(ctx, RecordExpenditureCommand{
				EquipmentTypeID: 1,
				BaseID:          1,
				Quantity:        each,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 0, ledger.quantity(1, 1))
	assert.Len(t, ledger.expenditures, 10)
}
