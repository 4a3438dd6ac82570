package repos_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"julex/internal/domain"
	"julex/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSeededCatalog(t *testing.T) {
	ctx := context.Background()
	db := memdb(t)
	pr := repos.NewProductRepo(db)

	all, err := pr.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, all, 13)
	assert.Equal(t, "jx-013", all[0].ID, "last seeded product is newest")

	p, err := pr.Get(ctx, "royal-kundan-necklace")
	require.NoError(t, err)
	assert.Equal(t, "jx-013", p.ID)
	assert.Equal(t, "Necklaces", p.Category.Name)
	require.NotNil(t, p.PriceB2B)
	assert.Equal(t, 1999.0, *p.PriceB2B)
	require.NotNil(t, p.DiscountPercent)
	assert.Equal(t, 20.0, *p.DiscountPercent)

	_, err = pr.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cats, err := repos.NewCategoryRepo(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 4)

	// seeding again is a no-op
	require.NoError(t, repos.SeedDefaults(db))
	all, err = pr.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 13)
}

func TestSeedCatalogFromYAML(t *testing.T) {
	db := memdb(t)
	c, err := repos.ParseCatalog(strings.NewReader(`
categories:
  - { name: Anklets }
products:
  - name: Beaded Anklet
    category: anklets
    weight: 4
    priceB2c: 199
    stock: 3
    waterproof: true
    images: [/img/anklet.jpg]
`))
	require.NoError(t, err)
	cats, prods, err := repos.SeedCatalog(db, c)
	require.NoError(t, err)
	assert.Equal(t, 1, cats)
	assert.Equal(t, 1, prods)

	p, err := repos.NewProductRepo(db).Get(context.Background(), "beaded-anklet")
	require.NoError(t, err)
	assert.Nil(t, p.PriceB2B)
	assert.True(t, p.IsWaterproof)
	assert.Equal(t, []string{"/img/anklet.jpg"}, p.Images)

	_, err = repos.ParseCatalog(strings.NewReader("products:\n  - name: X\n    colour: red\n"))
	assert.Error(t, err)
}

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	db := memdb(t)
	pr := repos.NewProductRepo(db)

	b2b := 150.0
	p := domain.Product{
		ID: "p-new", Slug: "plain-band", Name: "Plain Band", Weight: 2, PriceB2C: 199, PriceB2B: &b2b,
		StockQuantity: 4, IsActive: true, CategoryID: "rings", CreatedAt: "2030-01-01T00:00:00.000000000Z",
	}
	require.NoError(t, pr.Create(ctx, p))
	taken, err := pr.SlugTaken(ctx, "plain-band", "other")
	require.NoError(t, err)
	assert.True(t, taken)

	p.Name, p.PriceB2B, p.IsActive = "Plain Gold Band", nil, false
	require.NoError(t, pr.Update(ctx, p))
	got, err := pr.Get(ctx, "p-new")
	require.NoError(t, err)
	assert.Equal(t, "Plain Gold Band", got.Name)
	assert.Nil(t, got.PriceB2B)
	assert.Equal(t, []string{}, got.Images)

	active, err := pr.ListActive(ctx)
	require.NoError(t, err)
	for _, a := range active {
		assert.NotEqual(t, "p-new", a.ID)
	}

	require.NoError(t, pr.Delete(ctx, "p-new"))
	assert.ErrorIs(t, pr.Delete(ctx, "p-new"), domain.ErrNotFound)
}

func TestCartAddAccumulatesWithinStock(t *testing.T) {
	ctx := context.Background()
	cart := repos.NewCartRepo(memdb(t))

	q, err := cart.Add(ctx, "u-priya", "jx-013", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, q)
	q, err = cart.Add(ctx, "u-priya", "jx-013", 2)
	require.NoError(t, err)
	assert.Equal(t, 5, q)

	_, err = cart.Add(ctx, "u-priya", "jx-013", 1)
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 6, se.Requested)
	assert.Equal(t, 5, se.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = cart.Add(ctx, "u-priya", "missing", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	lines, err := cart.Items(ctx, "u-priya")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "Royal Kundan Necklace", lines[0].Product.Name)

	require.NoError(t, cart.SetQuantity(ctx, "u-priya", "jx-013", 2))
	assert.ErrorIs(t, cart.SetQuantity(ctx, "u-priya", "jx-013", 9), domain.ErrInsufficientStock)
	assert.ErrorIs(t, cart.SetQuantity(ctx, "u-priya", "jx-001", 1), domain.ErrNotFound)

	require.NoError(t, cart.Remove(ctx, "u-priya", "jx-013"))
	assert.ErrorIs(t, cart.Remove(ctx, "u-priya", "jx-013"), domain.ErrNotFound)
}

func TestCartConcurrentAddsNeverOversell(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	db, err := repos.OpenDB("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	cart := repos.NewCartRepo(db)

	var ok atomic.Int32
	var g errgroup.Group
	for i := 0; i < 12; i++ {
		g.Go(func() error {
			_, err := cart.Add(ctx, "u-arjun", "jx-013", 1)
			if errors.Is(err, domain.ErrInsufficientStock) {
				return nil
			}
			if err == nil {
				ok.Add(1)
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.EqualValues(t, 5, ok.Load())
	q, err := cart.Quantity(ctx, "u-arjun", "jx-013")
	require.NoError(t, err)
	assert.Equal(t, 5, q)
}

func TestOrderPlaceIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := memdb(t)
	cart := repos.NewCartRepo(db)
	orders := repos.NewOrderRepo(db)
	inv := repos.NewInventoryRepo(db)

	_, err := cart.Add(ctx, "u-priya", "jx-001", 2)
	require.NoError(t, err)

	o := &domain.Order{
		ID: "o-1", UserID: "u-priya", OrderType: "B2C", Status: domain.OrderPending,
		Subtotal: 1398, Total: 1398, PaymentMethod: "upi", CreatedAt: "2030-01-01T00:00:00.000000000Z",
		ShippingInfo: domain.ShippingInfo{Name: "Priya", Email: "priya@julex.test", Phone: "9999999999",
			Address: "1 MG Road", City: "Pune", State: "MH", Pincode: "411001"},
		Items: []domain.OrderItem{{ProductID: "jx-001", ProductName: "Golden Heart Necklace", Quantity: 2, UnitPrice: 699}},
	}
	require.NoError(t, orders.Place(ctx, o))

	qty, err := inv.Qty(ctx, "jx-001")
	require.NoError(t, err)
	assert.Equal(t, 13, qty)
	lines, err := cart.Items(ctx, "u-priya")
	require.NoError(t, err)
	assert.Empty(t, lines)

	got, err := orders.Get(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "Pune", got.ShippingInfo.City)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 699.0, got.Items[0].UnitPrice)

	// second line oversells: nothing from this attempt may stick
	bad := &domain.Order{
		ID: "o-2", UserID: "u-priya", OrderType: "B2C", Status: domain.OrderPending, PaymentMethod: "upi",
		CreatedAt: "2030-01-02T00:00:00.000000000Z", ShippingInfo: o.ShippingInfo,
		Items: []domain.OrderItem{
			{ProductID: "jx-001", ProductName: "Golden Heart Necklace", Quantity: 1, UnitPrice: 699},
			{ProductID: "jx-013", ProductName: "Royal Kundan Necklace", Quantity: 6, UnitPrice: 2499},
		},
	}
	assert.ErrorIs(t, orders.Place(ctx, bad), domain.ErrInsufficientStock)
	qty, err = inv.Qty(ctx, "jx-001")
	require.NoError(t, err)
	assert.Equal(t, 13, qty)
	_, err = orders.Get(ctx, "o-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, orders.UpdateStatus(ctx, "o-1", domain.OrderPaid))
	list, err := orders.ListByUser(ctx, "u-priya")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.OrderPaid, list[0].Status)
	assert.ErrorIs(t, orders.UpdateStatus(ctx, "o-x", domain.OrderPaid), domain.ErrNotFound)
}

func TestOrderPlaceKeepsLinesAddedDuringCheckout(t *testing.T) {
	ctx := context.Background()
	db := memdb(t)
	cart := repos.NewCartRepo(db)
	orders := repos.NewOrderRepo(db)
	inv := repos.NewInventoryRepo(db)

	_, err := cart.Add(ctx, "u-arjun", "jx-001", 1)
	require.NoError(t, err)
	snapshot, err := cart.Items(ctx, "u-arjun")
	require.NoError(t, err)
	require.Len(t, snapshot, 1)

	order := func(id string) *domain.Order {
		o := &domain.Order{
			ID: id, UserID: "u-arjun", OrderType: "B2C", Status: domain.OrderPending,
			PaymentMethod: "cod", CreatedAt: "2030-01-01T00:00:00.000000000Z",
			ShippingInfo: domain.ShippingInfo{Name: "Arjun", Email: "arjun@julex.test", Phone: "9999999999",
				Address: "2 Park St", City: "Kolkata", State: "WB", Pincode: "700016"},
		}
		for _, l := range snapshot {
			o.Items = append(o.Items, domain.OrderItem{ProductID: l.Product.ID, ProductName: l.Product.Name,
				Quantity: l.Quantity, UnitPrice: l.Product.PriceB2C})
		}
		return o
	}

	// a new line lands after the cart was read: it stays in the cart
	_, err = cart.Add(ctx, "u-arjun", "jx-005", 1)
	require.NoError(t, err)
	require.NoError(t, orders.Place(ctx, order("o-a")))
	lines, err := cart.Items(ctx, "u-arjun")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "jx-005", lines[0].Product.ID)

	// an ordered line grows after the cart was read: the order is refused
	snapshot = lines
	_, err = cart.Add(ctx, "u-arjun", "jx-005", 2)
	require.NoError(t, err)
	err = orders.Place(ctx, order("o-b"))
	assert.ErrorIs(t, err, domain.ErrCartChanged)

	q, err := cart.Quantity(ctx, "u-arjun", "jx-005")
	require.NoError(t, err)
	assert.Equal(t, 3, q)
	qty, err := inv.Qty(ctx, "jx-005")
	require.NoError(t, err)
	assert.Equal(t, 25, qty)
	_, err = orders.Get(ctx, "o-b")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUsersSessionsAndResellers(t *testing.T) {
	ctx := context.Background()
	db := memdb(t)
	users := repos.NewUserRepo(db)

	meera, err := users.ByEmail(ctx, "MEERA@julex.test")
	require.NoError(t, err)
	require.NotNil(t, meera.Reseller)
	assert.True(t, meera.Reseller.IsVerified)
	assert.True(t, meera.Viewer().IsVerifiedReseller())

	kabir, err := users.ByID(ctx, "u-kabir")
	require.NoError(t, err)
	assert.False(t, kabir.Viewer().IsVerifiedReseller())
	require.NoError(t, users.SetResellerVerified(ctx, "u-kabir", true))
	kabir, err = users.ByID(ctx, "u-kabir")
	require.NoError(t, err)
	assert.True(t, kabir.Viewer().IsVerifiedReseller())

	require.NoError(t, users.BindSession(ctx, "sid-1", "u-priya"))
	u, err := users.SessionUser(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "u-priya", u.ID)
	require.NoError(t, users.UnbindSession(ctx, "sid-1"))
	_, err = users.SessionUser(ctx, "sid-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, users.UpsertReseller(ctx, domain.Reseller{UserID: "u-arjun", BusinessName: "Arjun Jewels"}))
	arjun, err := users.ByID(ctx, "u-arjun")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleReseller, arjun.Role)
	assert.False(t, arjun.Reseller.IsVerified)
	assert.ErrorIs(t, users.UpsertReseller(ctx, domain.Reseller{UserID: "u-admin", BusinessName: "X"}), domain.ErrValidation)

	_, err = repos.NewCartRepo(db).Add(ctx, "u-arjun", "jx-002", 1)
	require.NoError(t, err)
	require.NoError(t, users.DeleteUserCascade(ctx, "u-arjun"))
	_, err = users.ByID(ctx, "u-arjun")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, users.DeleteUserCascade(ctx, "u-arjun"), domain.ErrNotFound)
}

func TestWishlist(t *testing.T) {
	ctx := context.Background()
	w := repos.NewWishlistRepo(memdb(t))
	require.NoError(t, w.Add(ctx, "u-priya", "jx-002"))
	require.NoError(t, w.Add(ctx, "u-priya", "jx-002"))
	list, err := w.List(ctx, "u-priya")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Crystal Drop Earrings", list[0].Name)
	require.NoError(t, w.Remove(ctx, "u-priya", "jx-002"))
	assert.ErrorIs(t, w.Remove(ctx, "u-priya", "jx-002"), domain.ErrNotFound)
}
