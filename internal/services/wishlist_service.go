package services

import (
	"context"

	"julex/internal/catalog"
	"julex/internal/domain"
	"julex/internal/repos"
)

type WishlistService struct {
	Repo  *repos.WishlistRepo
	Prods *repos.ProductRepo
}

func NewWishlistService(r *repos.WishlistRepo, prods *repos.ProductRepo) *WishlistService {
	return &WishlistService{Repo: r, Prods: prods}
}

func (s *WishlistService) Save(ctx context.Context, v domain.Viewer, productID string) error {
	if v.IsAnonymous() {
		return ErrAuthRequired
	}
	p, err := s.Prods.Get(ctx, productID)
	if err != nil {
		return err
	}
	if !p.IsActive {
		return domain.NotFound("product", productID)
	}
	return s.Repo.Add(ctx, v.UserID, p.ID)
}

func (s *WishlistService) Unsave(ctx context.Context, v domain.Viewer, productID string) error {
	if v.IsAnonymous() {
		return ErrAuthRequired
	}
	return s.Repo.Remove(ctx, v.UserID, productID)
}

// List runs the saved products through the catalog filter so the wishlist
// can be searched, sorted and paged like the storefront.
func (s *WishlistService) List(ctx context.Context, c catalog.Criteria) (catalog.Result, error) {
	if c.Viewer.IsAnonymous() {
		return catalog.Result{}, ErrAuthRequired
	}
	ps, err := s.Repo.List(ctx, c.Viewer.UserID)
	if err != nil {
		return catalog.Result{}, err
	}
	return catalog.Filter(ps, c)
}
