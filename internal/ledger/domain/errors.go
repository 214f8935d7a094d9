package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuantity rejects non-positive movement quantities
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrSameBase rejects transfers where source and destination match
	ErrSameBase = errors.New("source and destination base must differ")

	// ErrInsufficientStock rejects an outflow larger than the available
	// quantity at the source key. The operation leaves no partial effect.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrMissingInventory is an outflow against a key with no inventory
	// record, meaning zero available. It matches ErrInsufficientStock under
	// errors.Is.
	ErrMissingInventory = fmt.Errorf("%w: no inventory record at source", ErrInsufficientStock)

	// ErrUnknownReference rejects records pointing at a base, equipment type
	// or user that does not exist
	ErrUnknownReference = errors.New("unknown reference")

	// ErrConcurrencyConflict surfaces after the bounded retry budget for
	// serialization conflicts is exhausted
	ErrConcurrencyConflict = errors.New("operation aborted after repeated conflicts")
)
