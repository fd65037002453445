package redisx

import "time"

const (
	// Catalog read-through cache: catalog:gtin:{gtin} -> product JSON
	KeyProductByGtin = "catalog:gtin:%s"

	// Negative catalog lookup: catalog:miss:{gtin} -> 1
	KeyProductMiss = "catalog:miss:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLProductCache = 10 * time.Minute
	TTLProductMiss  = 1 * time.Minute
	TTLDedup        = 48 * time.Hour
)
