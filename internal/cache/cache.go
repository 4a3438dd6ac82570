// Package cache keeps the active product list close to the catalog service.
// Prices are never cached separately: quotes are resolved per viewer on
// every read, so one cached list serves every tier.
package cache

import (
	"context"
	"sync"
	"time"

	"julex/internal/domain"
)

type ProductCache interface {
	// Products returns the cached active list and whether it was a hit.
	Products(ctx context.Context) ([]domain.Product, bool)
	Store(ctx context.Context, products []domain.Product)
	Invalidate(ctx context.Context)
}

// Nop never hits.
type Nop struct{}

func (Nop) Products(context.Context) ([]domain.Product, bool) { return nil, false }
func (Nop) Store(context.Context, []domain.Product)           {}
func (Nop) Invalidate(context.Context)                        {}

// Memory is an in-process cache used when no Redis address is configured.
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	items   []domain.Product
	expires time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now}
}

func (m *Memory) Products(context.Context) ([]domain.Product, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.items == nil || !m.now().Before(m.expires) {
		return nil, false
	}
	out := make([]domain.Product, len(m.items))
	copy(out, m.items)
	return out, true
}

func (m *Memory) Store(_ context.Context, products []domain.Product) {
	cp := make([]domain.Product, len(products))
	copy(cp, products)
	m.mu.Lock()
	m.items, m.expires = cp, m.now().Add(m.ttl)
	m.mu.Unlock()
}

func (m *Memory) Invalidate(context.Context) {
	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()
}
