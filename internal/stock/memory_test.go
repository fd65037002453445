package stock

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestApplyDeltaIncrementThenDecrement(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.ApplyDelta(ctx, 1, []Alteration{{ProductID: 7, Delta: 100}}); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := m.ApplyDelta(ctx, 1, []Alteration{{ProductID: 7, Delta: -40}}); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	held, err := m.ReadHeld(ctx, 1, []int{7})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if held[7] != 60 {
		t.Errorf("held = %d, want 60", held[7])
	}
}

func TestApplyDeltaNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.ApplyDelta(ctx, 1, []Alteration{{ProductID: 7, Delta: 10}})

	err := m.ApplyDelta(ctx, 1, []Alteration{{ProductID: 7, Delta: -11}})
	if !errors.Is(err, ErrAtomicityViolation) {
		t.Fatalf("err = %v, want ErrAtomicityViolation", err)
	}

	held, _ := m.ReadHeld(ctx, 1, []int{7})
	if held[7] != 10 {
		t.Errorf("held = %d, want 10 (rejected batch must not mutate)", held[7])
	}
}

func TestApplyDeltaBatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.ApplyDelta(ctx, 1, []Alteration{
		{ProductID: 1, Delta: 50},
		{ProductID: 2, Delta: 50},
	})

	// Product 99 has no stock row, so the whole batch must roll back.
	err := m.ApplyDelta(ctx, 1, []Alteration{
		{ProductID: 1, Delta: -10},
		{ProductID: 99, Delta: -10},
		{ProductID: 2, Delta: -10},
	})
	if !errors.Is(err, ErrAtomicityViolation) {
		t.Fatalf("err = %v, want ErrAtomicityViolation", err)
	}

	held, _ := m.ReadHeld(ctx, 1, []int{1, 2})
	if held[1] != 50 || held[2] != 50 {
		t.Errorf("held = %v, want both rows unchanged at 50", held)
	}
}

func TestApplyDeltaAbsentRowIsZeroStock(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	held, err := m.ReadHeld(ctx, 1, []int{42})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, ok := held[42]; ok {
		t.Errorf("expected product 42 to be absent, got %v", held)
	}
}

func TestApplyDeltaWarehousesAreIndependent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.ApplyDelta(ctx, 1, []Alteration{{ProductID: 7, Delta: 10}})
	_ = m.ApplyDelta(ctx, 2, []Alteration{{ProductID: 7, Delta: 3}})

	byWarehouse, err := m.HeldByWarehouse(ctx, 2)
	if err != nil {
		t.Fatalf("held by warehouse: %v", err)
	}
	if len(byWarehouse) != 1 || byWarehouse[7] != 3 {
		t.Errorf("warehouse 2 = %v, want map[7:3]", byWarehouse)
	}
}

func TestApplyDeltaConcurrentDecrements(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.ApplyDelta(ctx, 1, []Alteration{{ProductID: 7, Delta: 100}})

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0
	for i := 0; i < 150; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.ApplyDelta(ctx, 1, []Alteration{{ProductID: 7, Delta: -1}}); err == nil {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	held, _ := m.ReadHeld(ctx, 1, []int{7})
	if held[7] < 0 {
		t.Fatalf("held went negative: %d", held[7])
	}
	if applied != 100 || held[7] != 0 {
		t.Errorf("applied = %d held = %d, want exactly 100 applied and 0 left", applied, held[7])
	}
}
