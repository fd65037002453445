package stock

import (
	"context"
	"fmt"
	"sync"
)

type key struct{ warehouseID, productID int }

// Memory is a mutex-guarded in-memory Ledger with the same all-or-nothing
// batch contract as the Postgres repo. Used by tests and local runs.
type Memory struct {
	mu   sync.Mutex
	held map[key]int
}

func NewMemory() *Memory {
	return &Memory{held: make(map[key]int)}
}

func (m *Memory) ReadHeld(_ context.Context, warehouseID int, productIDs []int) (map[int]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int]int, len(productIDs))
	for _, id := range productIDs {
		if held, ok := m.held[key{warehouseID, id}]; ok {
			out[id] = held
		}
	}
	return out, nil
}

func (m *Memory) HeldByWarehouse(_ context.Context, warehouseID int) (map[int]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[int]int{}
	for k, held := range m.held {
		if k.warehouseID == warehouseID {
			out[k.productID] = held
		}
	}
	return out, nil
}

func (m *Memory) ApplyDelta(_ context.Context, warehouseID int, deltas []Alteration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Stage the whole batch before touching the live map.
	staged := make(map[key]int, len(deltas))
	for _, d := range deltas {
		k := key{warehouseID, d.ProductID}
		held, ok := staged[k]
		if !ok {
			held = m.held[k]
		}
		next := held + d.Delta
		if next < 0 {
			return fmt.Errorf("product %d in warehouse %d: %w",
				d.ProductID, warehouseID, ErrAtomicityViolation)
		}
		staged[k] = next
	}
	for k, held := range staged {
		m.held[k] = held
	}
	return nil
}
