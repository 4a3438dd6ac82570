package catalog

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// ParseQuery decodes listing parameters through get (fiber's c.Query, a
// url.Values.Get, or a Lambda query map lookup). Unparsable optional values
// are dropped; explicit non-positive page or limit are kept so that Filter
// can reject them.
func ParseQuery(get func(key string) string) Criteria {
	c := Criteria{
		Search:      strings.TrimSpace(get("search")),
		Category:    strings.TrimSpace(get("category")),
		AntiTarnish: flag(get("isAntiTarnish")),
		Waterproof:  flag(get("isWaterproof")),
		MinPrice:    price(get("minPrice")),
		MaxPrice:    price(get("maxPrice")),
		Page:        intOr(get("page"), DefaultPage),
		Limit:       intOr(get("limit"), DefaultLimit),
		Sort:        sortKey(get("sort")),
	}
	if c.Limit > MaxLimit {
		c.Limit = MaxLimit
	}
	return c
}

func flag(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

func price(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v || v < 0 {
		return nil
	}
	return &v
}

func intOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func sortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPriceAsc, SortPriceDesc, SortName:
		return k
	}
	return SortNewest
}
