package domain

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Slug      string `db:"slug" json:"slug"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// Product is a catalog item. PriceB2B and DiscountPercent are optional.
type Product struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Material        string   `json:"material"`
	Weight          float64  `json:"weight"`
	PriceB2C        float64  `json:"priceB2c"`
	PriceB2B        *float64 `json:"priceB2b,omitempty"`
	DiscountPercent *float64 `json:"discountPercent,omitempty"`
	StockQuantity   int      `json:"stockQuantity"`
	IsAntiTarnish   bool     `json:"isAntiTarnish"`
	IsWaterproof    bool     `json:"isWaterproof"`
	IsActive        bool     `json:"isActive"`
	Images          []string `json:"images"`
	CategoryID      string   `json:"categoryId"`
	Category        Category `json:"category"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}

const (
	OrderPending  = "pending"
	OrderPaid     = "paid"
	OrderFailed   = "failed"
	OrderRefunded = "refunded"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPaid, OrderFailed, OrderRefunded:
		return true
	}
	return false
}

type ShippingInfo struct {
	Name    string `json:"name" validate:"required,max=80"`
	Email   string `json:"email" validate:"required,email,max=80"`
	Phone   string `json:"phone" validate:"required,min=7,max=20"`
	Address string `json:"address" validate:"required,max=200"`
	City    string `json:"city" validate:"required,max=60"`
	State   string `json:"state" validate:"required,max=60"`
	Pincode string `json:"pincode" validate:"required,numeric,len=6"`
}

type Order struct {
	ID            string       `db:"id" json:"id"`
	UserID        string       `db:"user_id" json:"userId"`
	OrderType     string       `db:"order_type" json:"orderType"` // B2C | B2B
	Status        string       `db:"status" json:"status"`
	Subtotal      float64      `db:"subtotal" json:"subtotal"`
	Shipping      float64      `db:"shipping" json:"shipping"`
	Total         float64      `db:"total" json:"total"`
	PaymentMethod string       `db:"payment_method" json:"paymentMethod"`
	ShipName      string       `db:"ship_name" json:"-"`
	ShipEmail     string       `db:"ship_email" json:"-"`
	ShipPhone     string       `db:"ship_phone" json:"-"`
	ShipAddress   string       `db:"ship_address" json:"-"`
	ShipCity      string       `db:"ship_city" json:"-"`
	ShipState     string       `db:"ship_state" json:"-"`
	ShipPincode   string       `db:"ship_pincode" json:"-"`
	CreatedAt     string       `db:"created_at" json:"createdAt"`
	UpdatedAt     string       `db:"updated_at" json:"updatedAt,omitempty"`
	Items         []OrderItem  `db:"-" json:"items,omitempty"`
	ShippingInfo  ShippingInfo `db:"-" json:"shippingInfo"`
}

type OrderItem struct {
	OrderID     string  `db:"order_id" json:"-"`
	ProductID   string  `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName"`
	Quantity    int     `db:"quantity" json:"quantity"`
	UnitPrice   float64 `db:"unit_price" json:"unitPrice"`
	IsWholesale bool    `db:"is_wholesale" json:"isWholesale"`
}

// FillShipping copies the flattened shipping columns into ShippingInfo.
func (o *Order) FillShipping() {
	o.ShippingInfo = ShippingInfo{
		Name: o.ShipName, Email: o.ShipEmail, Phone: o.ShipPhone,
		Address: o.ShipAddress, City: o.ShipCity, State: o.ShipState, Pincode: o.ShipPincode,
	}
}
