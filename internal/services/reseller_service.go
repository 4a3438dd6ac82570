package services

import (
	"context"

	"github.com/shopspring/decimal"

	"julex/internal/domain"
	"julex/internal/repos"
	"julex/internal/validate"
)

type ResellerService struct {
	Users  *repos.UserRepo
	Orders *repos.OrderRepo
}

func NewResellerService(users *repos.UserRepo, orders *repos.OrderRepo) *ResellerService {
	return &ResellerService{Users: users, Orders: orders}
}

type ResellerApplication struct {
	BusinessName string `json:"businessName" validate:"required,max=120"`
	BusinessType string `json:"businessType" validate:"omitempty,oneof=retail wholesale online boutique other"`
	GSTNumber    string `json:"gstNumber"`
}

// Apply records a business profile. The account becomes an unverified
// reseller and keeps consumer pricing until an admin verifies it.
func (s *ResellerService) Apply(ctx context.Context, userID string, in ResellerApplication) (*domain.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	gst, ok := validate.GST(in.GSTNumber)
	if !ok {
		return nil, domain.Invalid("gstNumber", "must be a valid GSTIN")
	}
	if err := s.Users.UpsertReseller(ctx, domain.Reseller{
		UserID: userID, BusinessName: in.BusinessName, BusinessType: in.BusinessType, GSTNumber: gst,
	}); err != nil {
		return nil, err
	}
	return s.Users.ByID(ctx, userID)
}

func (s *ResellerService) Verify(ctx context.Context, userID string, verified bool) error {
	return s.Users.SetResellerVerified(ctx, userID, verified)
}

type Dashboard struct {
	TotalOrders   int            `json:"totalOrders"`
	TotalRevenue  float64        `json:"totalRevenue"`
	PendingOrders int            `json:"pendingOrders"`
	AvgOrderValue float64        `json:"avgOrderValue"`
	RecentOrders  []domain.Order `json:"recentOrders"`
}

const recentOrders = 5

// Dashboard summarises a reseller's orders. Failed and refunded orders do
// not count towards revenue.
func (s *ResellerService) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	orders, err := s.Orders.ListByUser(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	d := Dashboard{TotalOrders: len(orders), RecentOrders: orders}
	if len(orders) > recentOrders {
		d.RecentOrders = orders[:recentOrders]
	}
	revenue := decimal.Zero
	counted := 0
	for _, o := range orders {
		switch o.Status {
		case domain.OrderPending:
			d.PendingOrders++
			fallthrough
		case domain.OrderPaid:
			revenue = revenue.Add(decimal.NewFromFloat(o.Total))
			counted++
		}
	}
	d.TotalRevenue = money(revenue)
	if counted > 0 {
		d.AvgOrderValue = money(revenue.Div(decimal.NewFromInt(int64(counted))))
	}
	return d, nil
}
