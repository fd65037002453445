// Package catalog resolves product master data. The fulfillment core only
// reads it; ownership of the data lives elsewhere.
package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found in catalog")

type Product struct {
	ID             int     `json:"id"`
	Gtin           string  `json:"gtin"` // globally unique item code
	Gcp            string  `json:"gcp"`  // owning-company prefix
	Name           string  `json:"name"`
	WeightKg       float64 `json:"weight_kg"` // per unit
	LowerThreshold int     `json:"lower_threshold"`
	MinOrderQty    int     `json:"min_order_qty"`
	Discontinued   bool    `json:"discontinued"`
}

type Company struct {
	Gcp  string `json:"gcp"`
	Name string `json:"name"`
}

type Catalog interface {
	// ResolveByGtin returns ErrNotFound when the gtin is unknown.
	ResolveByGtin(ctx context.Context, gtin string) (Product, error)
	// ResolveManyByGtin omits unknown gtins from the result map.
	ResolveManyByGtin(ctx context.Context, gtins []string) (map[string]Product, error)
	// ResolveByIDs omits unknown ids from the result map.
	ResolveByIDs(ctx context.Context, ids []int) (map[int]Product, error)
	CompanyByGcp(ctx context.Context, gcp string) (Company, error)
}
