package truck

import (
	"fmt"
	"sort"
	"strings"
)

// Loader computes loading plans. It keeps no state between calls: every Load
// starts from a single empty truck.
type Loader struct {
	CapacityKg float64
}

func NewLoader(capacityKg float64) Loader {
	if capacityKg <= 0 {
		capacityKg = DefaultCapacityKg
	}
	return Loader{CapacityKg: capacityKg}
}

// Load splits oversized lines, packs lightest-first into the first truck
// with room, and renders the manifest. The lightest-first, first-fit order
// is part of the output contract; it is deliberately not an optimal packer.
func (l Loader) Load(orders []ProductOrder) (string, error) {
	split, err := l.splitOversized(orders)
	if err != nil {
		return "", err
	}

	sort.SliceStable(split, func(i, j int) bool {
		return split[i].WeightKg() < split[j].WeightKg()
	})

	trucks := []*Truck{newTruck(l.CapacityKg)}
	for _, o := range split {
		loaded := false
		for _, t := range trucks {
			if t.HasRoomFor(o) {
				if err := t.Add(o); err != nil {
					return "", err
				}
				loaded = true
				break
			}
		}
		if !loaded {
			t := newTruck(l.CapacityKg)
			if err := t.Add(o); err != nil {
				return "", err
			}
			trucks = append(trucks, t)
		}
	}

	return render(trucks), nil
}

// splitOversized replaces any line heavier than one truck with as many
// full-truck lines as fit plus a remainder, so every line entering packing
// fits an empty truck on its own.
func (l Loader) splitOversized(orders []ProductOrder) ([]ProductOrder, error) {
	out := make([]ProductOrder, 0, len(orders))
	for _, o := range orders {
		if o.WeightKg() <= l.CapacityKg {
			out = append(out, o)
			continue
		}

		perTruck := int(l.CapacityKg / o.UnitWeightKg)
		if perTruck == 0 {
			return nil, fmt.Errorf("gtin %s: one unit weighs %gkg, over the %gkg truck capacity",
				o.Gtin, o.UnitWeightKg, l.CapacityKg)
		}
		fullTrucks := o.Quantity / perTruck
		remainder := o.Quantity % perTruck

		for i := 0; i < fullTrucks; i++ {
			full := o
			full.Quantity = perTruck
			out = append(out, full)
		}
		if remainder > 0 {
			rest := o
			rest.Quantity = remainder
			out = append(out, rest)
		}
	}
	return out, nil
}

func render(trucks []*Truck) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This order requires %d trucks.\n\n", len(trucks))
	for i, t := range trucks {
		fmt.Fprintf(&b, "For truck #%d, (total load %gkg) load the following:\n", i+1, t.TotalWeightKg())
		for _, o := range t.Load() {
			fmt.Fprintf(&b, "    %d x GTIN: %s (%s)  --  %gkg x %d = %gkg\n",
				o.Quantity, o.Gtin, o.Name, o.UnitWeightKg, o.Quantity, o.WeightKg())
		}
		b.WriteString("\n")
	}
	return b.String()
}
