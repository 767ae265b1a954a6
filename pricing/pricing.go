// Package pricing resolves per-variant book prices for the caller's region.
// Prices are whole units of the region's currency, matching the granularity
// stored on orders.
package pricing

import (
	"strings"

	"github.com/inkpress/bookshop-backend-go/models"
)

type Prices struct {
	Paperback int    `json:"paperback"`
	Hardcover int    `json:"hardcover"`
	Ebook     int    `json:"ebook"`
	Currency  string `json:"currency"`
}

// For returns the unit price for a variant.
func (p Prices) For(variant models.Variant) int {
	switch variant {
	case models.VariantPaperback:
		return p.Paperback
	case models.VariantHardcover:
		return p.Hardcover
	case models.VariantEbook:
		return p.Ebook
	}
	return 0
}

const defaultRegion = "IN"

type Resolver struct {
	regions map[string]Prices
}

func NewResolver() *Resolver {
	return &Resolver{
		regions: map[string]Prices{
			"IN": {Paperback: 499, Hardcover: 799, Ebook: 199, Currency: "INR"},
			"US": {Paperback: 14, Hardcover: 24, Ebook: 7, Currency: "USD"},
			"GB": {Paperback: 12, Hardcover: 20, Ebook: 6, Currency: "GBP"},
			"AE": {Paperback: 45, Hardcover: 79, Ebook: 22, Currency: "AED"},
		},
	}
}

// Resolve maps an ISO country code to that region's price list. Unknown or
// empty locations fall back to the home region.
func (r *Resolver) Resolve(country string) Prices {
	if prices, ok := r.regions[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return prices
	}
	return r.regions[defaultRegion]
}
