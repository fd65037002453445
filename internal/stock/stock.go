// Package stock is the authoritative held-quantity ledger, keyed by
// (warehouse, product). Held quantities never go negative: a batch that
// would take any row below zero is rejected as a whole.
package stock

import (
	"context"
	"errors"
)

// Alteration is one signed change to a ledger row.
type Alteration struct {
	ProductID int
	Delta     int
}

// ErrAtomicityViolation means a batch write did not apply uniformly and was
// rolled back. After a passing sufficiency check it indicates a concurrent
// decrement or a store bug, so callers treat it as fatal.
var ErrAtomicityViolation = errors.New("stock batch did not apply atomically")

type Ledger interface {
	// ReadHeld returns held quantities for the given products. Products with
	// no ledger row are absent from the map; callers treat absence as zero.
	ReadHeld(ctx context.Context, warehouseID int, productIDs []int) (map[int]int, error)
	// HeldByWarehouse returns every held quantity in one warehouse.
	HeldByWarehouse(ctx context.Context, warehouseID int) (map[int]int, error)
	// ApplyDelta applies all alterations as one atomic batch. Positive deltas
	// create the row if needed; negative deltas only apply when the row holds
	// enough stock. On any failure the ledger is left unchanged and
	// ErrAtomicityViolation is returned.
	ApplyDelta(ctx context.Context, warehouseID int, deltas []Alteration) error
}
