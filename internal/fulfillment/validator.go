package fulfillment

import (
	"context"
	"fmt"

	"warehouse-fulfillment/internal/catalog"
)

// OrderLine is one raw request line: an item code and a quantity.
type OrderLine struct {
	Gtin     string `json:"gtin"`
	Quantity int    `json:"quantity"`
}

// Resolved pairs a request line with its catalog product.
type Resolved struct {
	Product  catalog.Product
	Quantity int
}

// validateLines deduplicates, resolves every line against the catalog and
// aggregates unknown-item errors. It reads the catalog only; nothing is
// mutated here.
func (s *Service) validateLines(ctx context.Context, lines []OrderLine) ([]Resolved, error) {
	gtins, err := dedupedGtins(lines)
	if err != nil {
		return nil, err
	}

	products, err := s.Catalog.ResolveManyByGtin(ctx, gtins)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	resolved := make([]Resolved, 0, len(lines))
	var unknown []string
	for _, line := range lines {
		p, ok := products[line.Gtin]
		if !ok {
			unknown = append(unknown, fmt.Sprintf("Unknown product gtin: %s", line.Gtin))
			continue
		}
		resolved = append(resolved, Resolved{Product: p, Quantity: line.Quantity})
	}
	if len(unknown) > 0 {
		return nil, newError(KindUnknownItem, unknown...)
	}
	return resolved, nil
}

// dedupedGtins rejects the whole request on the first repeated gtin, before
// any catalog lookup happens.
func dedupedGtins(lines []OrderLine) ([]string, error) {
	seen := make(map[string]bool, len(lines))
	gtins := make([]string, 0, len(lines))
	for _, line := range lines {
		if seen[line.Gtin] {
			return nil, newError(KindDuplicateItem,
				fmt.Sprintf("Request contains duplicate product gtin: %s", line.Gtin))
		}
		seen[line.Gtin] = true
		gtins = append(gtins, line.Gtin)
	}
	return gtins, nil
}
