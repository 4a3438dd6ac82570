// Package catalog narrows, orders and pages a product list. The same Filter
// backs the HTTP listing, the wishlist view and the Lambda catalog handler.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"julex/internal/domain"
	"julex/internal/pricing"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortName      SortKey = "name"
)

// Criteria is the caller-supplied filter, sort and pagination request.
// Nil bounds and false flags are not applied.
type Criteria struct {
	Search      string
	Category    string
	AntiTarnish bool
	Waterproof  bool
	MinPrice    *float64
	MaxPrice    *float64
	Page        int
	Limit       int
	Sort        SortKey
	Viewer      domain.Viewer
}

type Item struct {
	domain.Product
	Quote pricing.Quote `json:"quote"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type Result struct {
	Items      []Item     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Filter applies every predicate in c to products, sorts the matches and
// returns the requested page. The input slice is not modified.
func Filter(products []domain.Product, c Criteria) (Result, error) {
	if c.Page <= 0 || c.Limit <= 0 {
		return Result{}, fmt.Errorf("page=%d limit=%d: %w", c.Page, c.Limit, domain.ErrInvalidCriteria)
	}

	matched := make([]Item, 0, len(products))
	for _, p := range products {
		q := pricing.Resolve(p, c.Viewer)
		if c.matches(p, q.EffectivePrice) {
			matched = append(matched, Item{Product: p, Quote: q})
		}
	}
	sortItems(matched, c.Sort)

	total := len(matched)
	pages := total / c.Limit
	if total%c.Limit != 0 {
		pages++
	}
	res := Result{
		Items:      []Item{},
		Pagination: Pagination{Page: c.Page, Limit: c.Limit, Total: total, Pages: pages},
	}
	// compare page numbers before multiplying so huge values cannot overflow
	if c.Page > pages {
		return res, nil
	}
	skip := (c.Page - 1) * c.Limit
	end := total
	if total-skip > c.Limit {
		end = skip + c.Limit
	}
	res.Items = append(res.Items, matched[skip:end]...)
	return res, nil
}

func (c Criteria) matches(p domain.Product, price float64) bool {
	if s := strings.ToLower(strings.TrimSpace(c.Search)); s != "" {
		if !strings.Contains(strings.ToLower(p.Name), s) &&
			!strings.Contains(strings.ToLower(p.Description), s) &&
			!strings.Contains(strings.ToLower(p.Material), s) {
			return false
		}
	}
	if cat := strings.TrimSpace(c.Category); cat != "" && cat != "all" && p.Category.Slug != cat {
		return false
	}
	if c.AntiTarnish && !p.IsAntiTarnish {
		return false
	}
	if c.Waterproof && !p.IsWaterproof {
		return false
	}
	if c.MinPrice != nil && price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && price > *c.MaxPrice {
		return false
	}
	return true
}

func sortItems(items []Item, key SortKey) {
	var less func(a, b Item) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b Item) bool { return a.Quote.EffectivePrice < b.Quote.EffectivePrice }
	case SortPriceDesc:
		less = func(a, b Item) bool { return a.Quote.EffectivePrice > b.Quote.EffectivePrice }
	case SortName:
		less = func(a, b Item) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	default:
		// domain.TimeLayout timestamps compare lexically
		less = func(a, b Item) bool { return a.CreatedAt > b.CreatedAt }
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// Products unwraps the items of a result.
func (r Result) Products() []domain.Product {
	out := make([]domain.Product, len(r.Items))
	for i, it := range r.Items {
		out[i] = it.Product
	}
	return out
}
