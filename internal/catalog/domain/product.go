package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Harga dikirim sebagai angka JSON (19.99), bukan string "19.99"
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID     int             `json:"id" yaml:"id"`
	Name   string          `json:"name" yaml:"name"`
	Price  decimal.Decimal `json:"price" yaml:"price"`
	Image  string          `json:"image" yaml:"image"`
	Type   string          `json:"type" yaml:"type"`
	Gender string          `json:"gender" yaml:"gender"`
}

type PriceBucket string

const (
	PriceAny    PriceBucket = ""
	PriceUpTo30 PriceBucket = "0-30"
	Price30To60 PriceBucket = "30-60"
	PriceOver60 PriceBucket = "60+"
)

const filterAllFlag = "all"

var (
	thirty = decimal.NewFromInt(30)
	sixty  = decimal.NewFromInt(60)
)

// ParsePriceBucket maps a query value to a bucket. Unknown values and
// "all" disable the price filter.
func ParsePriceBucket(v string) PriceBucket {
	switch b := PriceBucket(strings.TrimSpace(v)); b {
	case PriceUpTo30, Price30To60, PriceOver60:
		return b
	default:
		return PriceAny
	}
}

func (b PriceBucket) Contains(price decimal.Decimal) bool {
	switch b {
	case PriceUpTo30:
		return price.LessThanOrEqual(thirty)
	case Price30To60:
		return price.GreaterThan(thirty) && price.LessThanOrEqual(sixty)
	case PriceOver60:
		return price.GreaterThan(sixty)
	default:
		return true
	}
}

// Filter is the catalog search. Zero value matches every product.
type Filter struct {
	Type   string
	Gender string
	Price  PriceBucket
	Search string
}

func NewFilter(productType, gender, price, search string) Filter {
	return Filter{
		Type:   normalizeTag(productType),
		Gender: normalizeTag(gender),
		Price:  ParsePriceBucket(price),
		Search: strings.TrimSpace(search),
	}
}

func normalizeTag(v string) string {
	v = strings.TrimSpace(v)
	if v == filterAllFlag {
		return ""
	}
	return v
}

func (f Filter) Match(p Product) bool {
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Gender != "" && p.Gender != f.Gender {
		return false
	}
	if !f.Price.Contains(p.Price) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Page is one slice of a filtered listing.
type Page struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
	Total      int       `json:"total"`
}
