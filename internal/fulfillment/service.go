// Package fulfillment orchestrates outbound orders and inbound manifests
// over the catalog and stock ledger capabilities.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"warehouse-fulfillment/internal/catalog"
	"warehouse-fulfillment/internal/stock"
	"warehouse-fulfillment/internal/truck"
)

type Service struct {
	Catalog catalog.Catalog
	Ledger  stock.Ledger
	Loader  truck.Loader
}

func New(cat catalog.Catalog, ledger stock.Ledger, loader truck.Loader) *Service {
	return &Service{Catalog: cat, Ledger: ledger, Loader: loader}
}

// Fulfill runs the outbound pipeline: validate, read held quantities, gate
// on sufficiency, decrement the ledger in one atomic batch, then compute the
// truck loading manifest. Each phase runs only if the previous one produced
// no errors; the only mutating step is the ledger decrement.
func (s *Service) Fulfill(ctx context.Context, warehouseID int, lines []OrderLine) (string, error) {
	resolved, err := s.validateLines(ctx, lines)
	if err != nil {
		return "", err
	}

	productIDs := make([]int, len(resolved))
	for i, r := range resolved {
		productIDs[i] = r.Product.ID
	}
	held, err := s.Ledger.ReadHeld(ctx, warehouseID, productIDs)
	if err != nil {
		return "", fmt.Errorf("read held quantities: %w", err)
	}

	// Read-only gate: report every shortage, mutate nothing.
	var shortages []string
	for _, r := range resolved {
		h, ok := held[r.Product.ID]
		if !ok {
			if r.Quantity > 0 {
				shortages = append(shortages, fmt.Sprintf("Product: %s, no stock held", r.Product.Gtin))
			}
			continue
		}
		if r.Quantity > h {
			shortages = append(shortages, fmt.Sprintf("Product: %s, stock held: %d, stock to remove: %d",
				r.Product.Gtin, h, r.Quantity))
		}
	}
	if len(shortages) > 0 {
		return "", newError(KindInsufficientStock, shortages...)
	}

	deltas := make([]stock.Alteration, len(resolved))
	for i, r := range resolved {
		deltas[i] = stock.Alteration{ProductID: r.Product.ID, Delta: -r.Quantity}
	}
	if err := s.Ledger.ApplyDelta(ctx, warehouseID, deltas); err != nil {
		if errors.Is(err, stock.ErrAtomicityViolation) {
			// The gate already confirmed feasibility, so this is a lost race
			// or a store bug. Fatal, never retried here.
			return "", newError(KindAtomicityViolation, err.Error())
		}
		return "", fmt.Errorf("decrement stock: %w", err)
	}

	orders := make([]truck.ProductOrder, len(resolved))
	for i, r := range resolved {
		orders[i] = truck.ProductOrder{
			Gtin:         r.Product.Gtin,
			Name:         r.Product.Name,
			UnitWeightKg: r.Product.WeightKg,
			Quantity:     r.Quantity,
		}
	}
	manifest, err := s.Loader.Load(orders)
	if err != nil {
		return "", newError(KindPackingInfeasible, err.Error())
	}
	return manifest, nil
}

// Manifest is an inbound delivery: lines declared by one shipper.
type Manifest struct {
	WarehouseID int         `json:"warehouse_id"`
	Gcp         string      `json:"gcp"`
	Lines       []OrderLine `json:"lines"`
}

// Replenish validates an inbound manifest and applies it as one atomic batch
// increment. Unknown gtins and shipper/product GCP mismatches are collected
// and reported together.
func (s *Service) Replenish(ctx context.Context, m Manifest) error {
	gtins, err := dedupedGtins(m.Lines)
	if err != nil {
		return err
	}
	products, err := s.Catalog.ResolveManyByGtin(ctx, gtins)
	if err != nil {
		return fmt.Errorf("resolve products: %w", err)
	}

	var deltas []stock.Alteration
	var problems []string
	sawUnknown := false
	for _, line := range m.Lines {
		p, ok := products[line.Gtin]
		if !ok {
			problems = append(problems, fmt.Sprintf("Unknown product gtin: %s", line.Gtin))
			sawUnknown = true
			continue
		}
		if p.Gcp != m.Gcp {
			problems = append(problems, fmt.Sprintf("Manifest GCP (%s) doesn't match Product GCP (%s)", m.Gcp, p.Gcp))
			continue
		}
		deltas = append(deltas, stock.Alteration{ProductID: p.ID, Delta: line.Quantity})
	}
	if len(problems) > 0 {
		kind := KindGcpMismatch
		if sawUnknown {
			kind = KindUnknownItem
		}
		return newError(kind, problems...)
	}

	if err := s.Ledger.ApplyDelta(ctx, m.WarehouseID, deltas); err != nil {
		if errors.Is(err, stock.ErrAtomicityViolation) {
			return newError(KindAtomicityViolation, err.Error())
		}
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}

// ReorderLine is a suggested replenishment order for one product.
type ReorderLine struct {
	Gtin     string `json:"gtin"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ReorderSegment groups suggested lines by the supplying company.
type ReorderSegment struct {
	Company catalog.Company `json:"company"`
	Lines   []ReorderLine   `json:"lines"`
}

// ReorderSuggestions lists, per supplying company, the products in a
// warehouse that have fallen below their lower threshold. Suggested quantity
// tops the product back up to three times its threshold, floored at the
// product's minimum order quantity. Discontinued products are skipped.
func (s *Service) ReorderSuggestions(ctx context.Context, warehouseID int) ([]ReorderSegment, error) {
	held, err := s.Ledger.HeldByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("read warehouse stock: %w", err)
	}
	ids := make([]int, 0, len(held))
	for id := range held {
		ids = append(ids, id)
	}
	products, err := s.Catalog.ResolveByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	linesByGcp := map[string][]ReorderLine{}
	for id, h := range held {
		p, ok := products[id]
		if !ok || p.Discontinued || h >= p.LowerThreshold {
			continue
		}
		qty := 3*p.LowerThreshold - h
		if qty < p.MinOrderQty {
			qty = p.MinOrderQty
		}
		linesByGcp[p.Gcp] = append(linesByGcp[p.Gcp], ReorderLine{Gtin: p.Gtin, Name: p.Name, Quantity: qty})
	}

	segments := make([]ReorderSegment, 0, len(linesByGcp))
	for gcp, lines := range linesByGcp {
		company, err := s.Catalog.CompanyByGcp(ctx, gcp)
		if errors.Is(err, catalog.ErrNotFound) {
			company = catalog.Company{Gcp: gcp}
		} else if err != nil {
			return nil, fmt.Errorf("resolve company %s: %w", gcp, err)
		}
		sort.Slice(lines, func(i, j int) bool { return lines[i].Gtin < lines[j].Gtin })
		segments = append(segments, ReorderSegment{Company: company, Lines: lines})
	}
	sort.Slice(segments, func(i, j int) bool { return segments[i].Company.Gcp < segments[j].Company.Gcp })
	return segments, nil
}
