package services

import (
	"context"

	"github.com/shopspring/decimal"

	"julex/internal/domain"
	"julex/internal/pricing"
	"julex/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService {
	return &CartService{Carts: carts}
}

// Add puts qty units of a product into the viewer's cart, merging with an
// existing line. It returns the resulting line quantity.
func (s *CartService) Add(ctx context.Context, v domain.Viewer, productID string, qty int) (int, error) {
	if v.IsAnonymous() {
		return 0, ErrAuthRequired
	}
	if qty < 1 {
		return 0, domain.Invalid("quantity", "must be at least 1")
	}
	return s.Carts.Add(ctx, v.UserID, productID, qty)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, v domain.Viewer, productID string, qty int) error {
	if v.IsAnonymous() {
		return ErrAuthRequired
	}
	if qty <= 0 {
		return s.Carts.Remove(ctx, v.UserID, productID)
	}
	return s.Carts.SetQuantity(ctx, v.UserID, productID, qty)
}

func (s *CartService) Remove(ctx context.Context, v domain.Viewer, productID string) error {
	if v.IsAnonymous() {
		return ErrAuthRequired
	}
	return s.Carts.Remove(ctx, v.UserID, productID)
}

type CartLine struct {
	ProductID string `json:"productId"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
	InStock   int    `json:"stockQuantity"`
	pricing.Quote
	LineTotal float64 `json:"lineTotal"`
}

type CartView struct {
	Items     []CartLine `json:"items"`
	ItemCount int        `json:"itemCount"`
	Subtotal  float64    `json:"subtotal"`
}

// View prices every line for the viewer. Nothing price-related is stored
// with the cart, so the subtotal always reflects current prices and tier.
func (s *CartService) View(ctx context.Context, v domain.Viewer) (CartView, error) {
	if v.IsAnonymous() {
		return CartView{}, ErrAuthRequired
	}
	rows, err := s.Carts.Items(ctx, v.UserID)
	if err != nil {
		return CartView{}, err
	}
	view := CartView{Items: make([]CartLine, 0, len(rows))}
	sum := decimal.Zero
	for _, r := range rows {
		q := pricing.Resolve(r.Product, v)
		line := pricing.LineTotal(q.EffectivePrice, r.Quantity)
		cl := CartLine{
			ProductID: r.Product.ID, Slug: r.Product.Slug, Name: r.Product.Name,
			Quantity: r.Quantity, InStock: r.Product.StockQuantity,
			Quote: q, LineTotal: money(line),
		}
		if len(r.Product.Images) > 0 {
			cl.Image = r.Product.Images[0]
		}
		view.Items = append(view.Items, cl)
		view.ItemCount += r.Quantity
		sum = sum.Add(line)
	}
	view.Subtotal = money(sum)
	return view, nil
}
