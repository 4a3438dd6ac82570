// Package pricing resolves the B2C/B2B price a viewer sees for a product.
package pricing

import (
	"github.com/shopspring/decimal"

	"julex/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Quote is the price shown to one viewer for one product.
type Quote struct {
	EffectivePrice float64  `json:"effectivePrice"`
	IsWholesale    bool     `json:"isWholesale"`
	OriginalPrice  *float64 `json:"originalPrice,omitempty"`
	Savings        *float64 `json:"savings,omitempty"`
}

// Resolve picks the wholesale price only for a verified reseller when the
// product has one; every other viewer gets the consumer price. An inverted
// priceB2b > priceB2c is passed through unchanged.
func Resolve(p domain.Product, v domain.Viewer) Quote {
	effective := decimal.NewFromFloat(p.PriceB2C)
	q := Quote{}
	if v.IsVerifiedReseller() && p.PriceB2B != nil {
		effective = decimal.NewFromFloat(*p.PriceB2B)
		q.IsWholesale = true
	}
	q.EffectivePrice = effective.InexactFloat64()

	if p.DiscountPercent != nil {
		factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(*p.DiscountPercent).Div(hundred))
		original := decimal.NewFromFloat(p.PriceB2C).Mul(factor).Round(0)
		o := original.InexactFloat64()
		s := original.Sub(effective).InexactFloat64()
		q.OriginalPrice = &o
		q.Savings = &s
	}
	return q
}

// Effective is shorthand for Resolve(p, v).EffectivePrice.
func Effective(p domain.Product, v domain.Viewer) float64 {
	return Resolve(p, v).EffectivePrice
}

// LineTotal multiplies a unit price by qty without float drift.
func LineTotal(unit float64, qty int) decimal.Decimal {
	return decimal.NewFromFloat(unit).Mul(decimal.NewFromInt(int64(qty)))
}
