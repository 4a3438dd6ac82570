package services

import (
	"context"

	"julex/internal/cache"
	"julex/internal/domain"
	"julex/internal/repos"
)

const lowStockThreshold = 5

type InventoryService struct {
	Inv   *repos.InventoryRepo
	Cache cache.ProductCache
}

func NewInventoryService(inv *repos.InventoryRepo, c cache.ProductCache) *InventoryService {
	if c == nil {
		c = cache.Nop{}
	}
	return &InventoryService{Inv: inv, Cache: c}
}

// Availability maps a stock level to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func Availability(qty int) domain.Availability {
	status := "OUT_OF_STOCK"
	switch {
	case qty >= lowStockThreshold:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}
}

func (s *InventoryService) CheckAvailability(ctx context.Context, productID string) (domain.Availability, error) {
	qty, err := s.Inv.Qty(ctx, productID)
	if err != nil {
		return domain.Availability{}, err
	}
	return Availability(qty), nil
}

func (s *InventoryService) List(ctx context.Context) ([]repos.InventoryRow, error) {
	return s.Inv.ListAll(ctx)
}

func (s *InventoryService) SetStock(ctx context.Context, productID string, qty int) error {
	if qty < 0 {
		return domain.Invalid("qty", "must not be negative")
	}
	if err := s.Inv.SetQty(ctx, productID, qty); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}
