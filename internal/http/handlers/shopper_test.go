package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"julex/internal/http/handlers"
)

type cartResponse struct {
	Items []struct {
		ProductID      string  `json:"productId"`
		Quantity       int     `json:"quantity"`
		EffectivePrice float64 `json:"effectivePrice"`
		LineTotal      float64 `json:"lineTotal"`
	} `json:"items"`
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
}

func shippingBody() map[string]any {
	return map[string]any{
		"name": "Priya", "email": "priya@julex.test", "phone": "9876543210",
		"address": "4 FC Road", "city": "Pune", "state": "MH", "pincode": "411004",
	}
}

func TestCartFlow(t *testing.T) {
	ta := newTestApp(t, handlers.Options{})

	resp := ta.do(t, "POST", "/api/cart", "", map[string]any{"productId": "jx-013"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var added struct {
		Quantity int `json:"quantity"`
	}
	resp = ta.do(t, "POST", "/api/cart", "tok-priya", map[string]any{"productId": "jx-013", "quantity": 2}, &added)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, added.Quantity)
	ta.do(t, "POST", "/api/cart?qty=2", "tok-priya", map[string]any{"productId": "jx-013"}, &added)
	assert.Equal(t, 4, added.Quantity)

	var e errResponse
	resp = ta.do(t, "POST", "/api/cart", "tok-priya", map[string]any{"productId": "jx-013", "quantity": 2}, &e)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "jx-013", e.ProductID)
	assert.Equal(t, 6, e.Requested)
	require.NotNil(t, e.Available)
	assert.Equal(t, 5, *e.Available)

	resp = ta.do(t, "POST", "/api/cart", "tok-priya", map[string]any{"productId": "ghost"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = ta.do(t, "POST", "/api/cart", "tok-priya", map[string]any{"productId": "jx-001", "quantity": 0}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	ta.do(t, "POST", "/api/cart", "tok-priya", map[string]any{"productId": "jx-001"}, nil)
	var cart cartResponse
	ta.do(t, "GET", "/api/cart", "tok-priya", nil, &cart)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 5, cart.ItemCount)
	assert.Equal(t, 4*2499.0+699.0, cart.Subtotal)

	resp = ta.do(t, "PUT", "/api/cart/jx-013", "tok-priya", map[string]any{"quantity": 1}, &cart)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2499.0+699.0, cart.Subtotal)

	resp = ta.do(t, "PUT", "/api/cart/jx-001", "tok-priya", map[string]any{"quantity": 0}, &cart)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, cart.Items, 1)

	resp = ta.do(t, "DELETE", "/api/cart/jx-013", "tok-priya", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = ta.do(t, "DELETE", "/api/cart/jx-013", "tok-priya", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckoutRecomputesTotals(t *testing.T) {
	ta := newTestApp(t, handlers.Options{})

	ta.do(t, "POST", "/api/cart", "tok-meera", map[string]any{"productId": "jx-013", "quantity": 2}, nil)

	var e errResponse
	resp := ta.do(t, "POST", "/api/orders", "tok-meera", map[string]any{"paymentMethod": "upi"}, &e)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEmpty(t, e.Fields)

	var o struct {
		ID        string  `json:"id"`
		OrderType string  `json:"orderType"`
		Status    string  `json:"status"`
		Total     float64 `json:"total"`
		Items     []struct {
			UnitPrice   float64 `json:"unitPrice"`
			IsWholesale bool    `json:"isWholesale"`
		} `json:"items"`
	}
	// a client-supplied total is ignored
	resp = ta.do(t, "POST", "/api/orders", "tok-meera", map[string]any{
		"paymentMethod": "razorpay", "shippingInfo": shippingBody(), "total": 1,
	}, &o)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "B2B", o.OrderType)
	assert.Equal(t, "pending", o.Status)
	assert.Equal(t, 3998.0, o.Total)
	require.Len(t, o.Items, 1)
	assert.True(t, o.Items[0].IsWholesale)

	var hist struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	ta.do(t, "GET", "/api/orders", "tok-meera", nil, &hist)
	require.Len(t, hist.Items, 1)
	assert.Equal(t, o.ID, hist.Items[0].ID)

	resp = ta.do(t, "GET", "/api/orders/"+o.ID, "tok-priya", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = ta.do(t, "GET", "/api/orders/"+o.ID, "tok-admin", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ta.do(t, "POST", "/api/admin/orders/"+o.ID+"/status", "tok-admin", map[string]any{"status": "shipped"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp = ta.do(t, "POST", "/api/admin/orders/"+o.ID+"/status", "tok-admin", map[string]any{"status": "paid"}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var all struct {
		Items []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"items"`
	}
	resp = ta.do(t, "GET", "/api/admin/orders?limit=10", "tok-admin", nil, &all)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, all.Items, 1)
	assert.Equal(t, o.ID, all.Items[0].ID)
	assert.Equal(t, "paid", all.Items[0].Status)
	resp = ta.do(t, "GET", "/api/admin/orders", "tok-meera", nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var dash struct {
		Stats struct {
			TotalOrders  int     `json:"totalOrders"`
			TotalRevenue float64 `json:"totalRevenue"`
		} `json:"stats"`
		Verified bool `json:"verified"`
	}
	resp = ta.do(t, "GET", "/api/reseller/dashboard", "tok-meera", nil, &dash)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, dash.Stats.TotalOrders)
	assert.Equal(t, 3998.0, dash.Stats.TotalRevenue)
	assert.True(t, dash.Verified)

	resp = ta.do(t, "GET", "/api/reseller/dashboard", "tok-priya", nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var avail struct {
		Qty int `json:"qty"`
	}
	ta.do(t, "GET", "/api/products/jx-013/availability", "", nil, &avail)
	assert.Equal(t, 3, avail.Qty)
}

func TestWishlistAndReseller(t *testing.T) {
	ta := newTestApp(t, handlers.Options{})

	resp := ta.do(t, "POST", "/api/wishlist", "tok-arjun", map[string]any{"productId": "jx-010"}, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	var wl listResponse
	ta.do(t, "GET", "/api/wishlist", "tok-arjun", nil, &wl)
	require.Len(t, wl.Items, 1)
	assert.Equal(t, "jx-010", wl.Items[0].ID)
	resp = ta.do(t, "DELETE", "/api/wishlist/jx-010", "tok-arjun", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ta.do(t, "POST", "/api/reseller/apply", "tok-arjun", map[string]any{"businessName": ""}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp = ta.do(t, "POST", "/api/reseller/apply", "tok-arjun", map[string]any{
		"businessName": "Arjun Jewels", "businessType": "online",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var p listResponse
	ta.do(t, "GET", "/api/products?search=tennis", "tok-arjun", nil, &p)
	assert.Equal(t, 699.0, p.Items[0].Quote.EffectivePrice, "pending verification")

	resp = ta.do(t, "POST", "/api/admin/resellers/u-arjun/verify", "tok-arjun", nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = ta.do(t, "POST", "/api/admin/resellers/u-arjun/verify", "tok-admin", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ta.do(t, "GET", "/api/products?search=tennis", "tok-arjun", nil, &p)
	assert.Equal(t, 489.0, p.Items[0].Quote.EffectivePrice)
}
