package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"warehouse-fulfillment/internal/redisx"
)

// Cache is a read-through Redis decorator over another Catalog. Product rows
// change rarely, so a short TTL is enough; the backing catalog stays the
// source of truth.
type Cache struct {
	Next  Catalog
	Redis *redis.Client
}

func (c *Cache) ResolveByGtin(ctx context.Context, gtin string) (Product, error) {
	key := fmt.Sprintf(redisx.KeyProductByGtin, gtin)
	if s, err := c.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		var p Product
		if json.Unmarshal([]byte(s), &p) == nil {
			return p, nil
		}
	}
	missKey := fmt.Sprintf(redisx.KeyProductMiss, gtin)
	if ok, _ := redisx.Exists(ctx, c.Redis, missKey); ok {
		return Product{}, ErrNotFound
	}

	p, err := c.Next.ResolveByGtin(ctx, gtin)
	if errors.Is(err, ErrNotFound) {
		_ = c.Redis.Set(ctx, missKey, "1", redisx.TTLProductMiss).Err()
		return Product{}, err
	}
	if err != nil {
		return Product{}, err
	}
	c.store(ctx, p)
	return p, nil
}

func (c *Cache) ResolveManyByGtin(ctx context.Context, gtins []string) (map[string]Product, error) {
	out := make(map[string]Product, len(gtins))
	var misses []string
	for _, gtin := range gtins {
		key := fmt.Sprintf(redisx.KeyProductByGtin, gtin)
		s, err := c.Redis.Get(ctx, key).Result()
		if err != nil || s == "" {
			misses = append(misses, gtin)
			continue
		}
		var p Product
		if json.Unmarshal([]byte(s), &p) != nil {
			misses = append(misses, gtin)
			continue
		}
		out[gtin] = p
	}
	if len(misses) == 0 {
		return out, nil
	}

	fetched, err := c.Next.ResolveManyByGtin(ctx, misses)
	if err != nil {
		return nil, err
	}
	for gtin, p := range fetched {
		out[gtin] = p
		c.store(ctx, p)
	}
	return out, nil
}

// ResolveByIDs and CompanyByGcp are only used by the low-volume reorder
// report; they go straight through.
func (c *Cache) ResolveByIDs(ctx context.Context, ids []int) (map[int]Product, error) {
	return c.Next.ResolveByIDs(ctx, ids)
}

func (c *Cache) CompanyByGcp(ctx context.Context, gcp string) (Company, error) {
	return c.Next.CompanyByGcp(ctx, gcp)
}

func (c *Cache) store(ctx context.Context, p Product) {
	b, err := json.Marshal(p)
	if err != nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyProductByGtin, p.Gtin)
	_ = c.Redis.Set(ctx, key, b, redisx.TTLProductCache).Err()
}
