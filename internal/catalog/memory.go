package catalog

import (
	"context"
	"sync"
)

// Memory is a map-backed Catalog for tests and local runs.
type Memory struct {
	mu        sync.RWMutex
	byGtin    map[string]Product
	byID      map[int]Product
	companies map[string]Company
}

func NewMemory() *Memory {
	return &Memory{
		byGtin:    make(map[string]Product),
		byID:      make(map[int]Product),
		companies: make(map[string]Company),
	}
}

func (m *Memory) AddProduct(p Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byGtin[p.Gtin] = p
	m.byID[p.ID] = p
}

func (m *Memory) AddCompany(c Company) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[c.Gcp] = c
}

func (m *Memory) ResolveByGtin(_ context.Context, gtin string) (Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.byGtin[gtin]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) ResolveManyByGtin(_ context.Context, gtins []string) (map[string]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]Product, len(gtins))
	for _, gtin := range gtins {
		if p, ok := m.byGtin[gtin]; ok {
			out[gtin] = p
		}
	}
	return out, nil
}

func (m *Memory) ResolveByIDs(_ context.Context, ids []int) (map[int]Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[int]Product, len(ids))
	for _, id := range ids {
		if p, ok := m.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *Memory) CompanyByGcp(_ context.Context, gcp string) (Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.companies[gcp]
	if !ok {
		return Company{}, ErrNotFound
	}
	return c, nil
}
