package truck

import (
	"strings"
	"testing"
)

func TestLoadSingleLineFitsOneTruck(t *testing.T) {
	l := NewLoader(2000)
	manifest, err := l.Load([]ProductOrder{
		{Gtin: "5000169111112", Name: "Widget", UnitWeightKg: 5, Quantity: 40},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(manifest, "This order requires 1 trucks.") {
		t.Errorf("manifest header wrong:\n%s", manifest)
	}
	if !strings.Contains(manifest, "(total load 200kg)") {
		t.Errorf("expected truck load of 200kg:\n%s", manifest)
	}
	if !strings.Contains(manifest, "40 x GTIN: 5000169111112 (Widget)  --  5kg x 40 = 200kg") {
		t.Errorf("item line wrong:\n%s", manifest)
	}
}

func TestSplitOversizedLine(t *testing.T) {
	// 250 units x 10kg = 2500kg: splits into 200 units (2000kg) + 50 units (500kg).
	l := NewLoader(2000)
	split, err := l.splitOversized([]ProductOrder{
		{Gtin: "1", Name: "Brick", UnitWeightKg: 10, Quantity: 250},
	})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(split) != 2 {
		t.Fatalf("got %d lines, want 2", len(split))
	}
	if split[0].Quantity != 200 || split[0].WeightKg() != 2000 {
		t.Errorf("full line = %dx (%gkg), want 200x (2000kg)", split[0].Quantity, split[0].WeightKg())
	}
	if split[1].Quantity != 50 || split[1].WeightKg() != 500 {
		t.Errorf("remainder = %dx (%gkg), want 50x (500kg)", split[1].Quantity, split[1].WeightKg())
	}
}

func TestCapacityInvariant(t *testing.T) {
	l := NewLoader(2000)
	lines := []ProductOrder{
		{Gtin: "1", Name: "A", UnitWeightKg: 10, Quantity: 250},
		{Gtin: "2", Name: "B", UnitWeightKg: 799, Quantity: 3},
		{Gtin: "3", Name: "C", UnitWeightKg: 1.5, Quantity: 7},
		{Gtin: "4", Name: "D", UnitWeightKg: 2000, Quantity: 2},
	}
	split, err := l.splitOversized(lines)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	trucks := []*Truck{newTruck(l.CapacityKg)}
	for _, o := range split {
		placed := false
		for _, tr := range trucks {
			if tr.HasRoomFor(o) {
				_ = tr.Add(o)
				placed = true
				break
			}
		}
		if !placed {
			tr := newTruck(l.CapacityKg)
			if err := tr.Add(o); err != nil {
				t.Fatalf("fresh truck rejected split line: %v", err)
			}
			trucks = append(trucks, tr)
		}
	}
	for i, tr := range trucks {
		if tr.TotalWeightKg() > l.CapacityKg {
			t.Errorf("truck %d overloaded: %gkg", i+1, tr.TotalWeightKg())
		}
	}
}

func TestTruckRejectsOverload(t *testing.T) {
	tr := newTruck(2000)
	if err := tr.Add(ProductOrder{Gtin: "1", UnitWeightKg: 1000, Quantity: 2}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := tr.Add(ProductOrder{Gtin: "2", UnitWeightKg: 1, Quantity: 1}); err == nil {
		t.Error("expected full truck to reject another item")
	}
	if tr.TotalWeightKg() != 2000 {
		t.Errorf("rejected add mutated the truck: %gkg", tr.TotalWeightKg())
	}
}

func TestSingleUnitHeavierThanTruckFails(t *testing.T) {
	l := NewLoader(2000)
	_, err := l.Load([]ProductOrder{
		{Gtin: "9", Name: "Turbine", UnitWeightKg: 2500, Quantity: 1},
	})
	if err == nil {
		t.Fatal("expected error for unit heavier than a truck")
	}
	if !strings.Contains(err.Error(), "2500kg") {
		t.Errorf("error should name the unit weight, got: %v", err)
	}
}

func TestLoadIsDeterministicAndStateless(t *testing.T) {
	lines := []ProductOrder{
		{Gtin: "1", Name: "A", UnitWeightKg: 700, Quantity: 2},
		{Gtin: "2", Name: "B", UnitWeightKg: 700, Quantity: 2}, // equal weight: order must be stable
		{Gtin: "3", Name: "C", UnitWeightKg: 300, Quantity: 1},
	}
	l := NewLoader(2000)
	first, err := l.Load(lines)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := l.Load(lines)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second {
		t.Errorf("two runs differ:\n--- first\n%s\n--- second\n%s", first, second)
	}
}

func TestLightestFirstPlacement(t *testing.T) {
	l := NewLoader(2000)
	manifest, err := l.Load([]ProductOrder{
		{Gtin: "heavy", Name: "H", UnitWeightKg: 1500, Quantity: 1},
		{Gtin: "light", Name: "L", UnitWeightKg: 100, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// Both fit one truck; the lighter line must be listed first.
	lightAt := strings.Index(manifest, "GTIN: light")
	heavyAt := strings.Index(manifest, "GTIN: heavy")
	if lightAt < 0 || heavyAt < 0 || lightAt > heavyAt {
		t.Errorf("expected lightest-first load order:\n%s", manifest)
	}
}
