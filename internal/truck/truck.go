// Package truck turns a picked outbound order into a loading plan for a
// fleet of fixed-capacity trucks.
package truck

import "fmt"

// DefaultCapacityKg is the per-vehicle weight limit used when the loader is
// not configured otherwise.
const DefaultCapacityKg = 2000

// ProductOrder is one line to load: a resolved product and a quantity. Line
// weight is derived, so it stays consistent when a line is split.
type ProductOrder struct {
	Gtin         string
	Name         string
	UnitWeightKg float64
	Quantity     int
}

func (o ProductOrder) WeightKg() float64 {
	return o.UnitWeightKg * float64(o.Quantity)
}

// Truck holds loaded lines and enforces its own capacity; callers never
// truncate a load silently.
type Truck struct {
	capacityKg    float64
	totalWeightKg float64
	load          []ProductOrder
}

func newTruck(capacityKg float64) *Truck {
	return &Truck{capacityKg: capacityKg}
}

func (t *Truck) HasRoomFor(o ProductOrder) bool {
	return t.capacityKg-t.totalWeightKg >= o.WeightKg()
}

func (t *Truck) Add(o ProductOrder) error {
	if !t.HasRoomFor(o) {
		return fmt.Errorf("truck at %gkg of %gkg has no room for %dx gtin %s",
			t.totalWeightKg, t.capacityKg, o.Quantity, o.Gtin)
	}
	t.totalWeightKg += o.WeightKg()
	t.load = append(t.load, o)
	return nil
}

func (t *Truck) TotalWeightKg() float64 { return t.totalWeightKg }

func (t *Truck) Load() []ProductOrder { return t.load }
