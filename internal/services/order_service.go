package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"julex/internal/cache"
	"julex/internal/domain"
	"julex/internal/pricing"
	"julex/internal/repos"
	"julex/internal/validate"
)

type OrderService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	Cache  cache.ProductCache
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo, c cache.ProductCache) *OrderService {
	if c == nil {
		c = cache.Nop{}
	}
	return &OrderService{Carts: carts, Orders: orders, Cache: c}
}

type CheckoutInput struct {
	ShippingInfo  domain.ShippingInfo `json:"shippingInfo"`
	PaymentMethod string              `json:"paymentMethod" validate:"required,oneof=razorpay upi cod"`
}

// Checkout turns the viewer's cart into a pending order. Unit prices are
// taken from the viewer's quote at this moment and stored on each line.
func (s *OrderService) Checkout(ctx context.Context, v domain.Viewer, in CheckoutInput) (domain.Order, error) {
	if v.IsAnonymous() {
		return domain.Order{}, ErrAuthRequired
	}
	if err := validate.Struct(in); err != nil {
		return domain.Order{}, err
	}
	lines, err := s.Carts.Items(ctx, v.UserID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, domain.Invalid("cart", "is empty")
	}

	o := domain.Order{
		ID:            uuid.NewString(),
		UserID:        v.UserID,
		OrderType:     "B2C",
		Status:        domain.OrderPending,
		PaymentMethod: in.PaymentMethod,
		ShippingInfo:  in.ShippingInfo,
		CreatedAt:     stamp(),
		Items:         make([]domain.OrderItem, 0, len(lines)),
	}
	subtotal := decimal.Zero
	for _, l := range lines {
		if !l.Product.IsActive {
			return domain.Order{}, domain.NotFound("product", l.Product.ID)
		}
		q := pricing.Resolve(l.Product, v)
		if q.IsWholesale {
			o.OrderType = "B2B"
		}
		o.Items = append(o.Items, domain.OrderItem{
			OrderID: o.ID, ProductID: l.Product.ID, ProductName: l.Product.Name,
			Quantity: l.Quantity, UnitPrice: q.EffectivePrice, IsWholesale: q.IsWholesale,
		})
		subtotal = subtotal.Add(pricing.LineTotal(q.EffectivePrice, l.Quantity))
	}
	// shipping is free
	o.Subtotal = money(subtotal)
	o.Shipping = 0
	o.Total = money(subtotal)

	if err := s.Orders.Place(ctx, &o); err != nil {
		return domain.Order{}, err
	}
	s.Cache.Invalidate(ctx)
	return s.Orders.Get(ctx, o.ID)
}

func (s *OrderService) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

// Get returns the order when u owns it or is an admin. Other callers get
// ErrNotFound so order ids cannot be probed.
func (s *OrderService) Get(ctx context.Context, u *domain.User, id string) (domain.Order, error) {
	o, err := s.Orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if u == nil || (u.Role != domain.RoleAdmin && u.ID != o.UserID) {
		return domain.Order{}, domain.NotFound("order", id)
	}
	return o, nil
}

func (s *OrderService) AdminList(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.Orders.ListLatest(ctx, limit)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	if !domain.ValidOrderStatus(status) {
		return domain.Invalid("status", "must be one of pending, paid, failed, refunded")
	}
	return s.Orders.UpdateStatus(ctx, id, status)
}
