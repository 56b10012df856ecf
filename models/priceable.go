package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Priceable is the uniform view of anything a purchase price can be stored
// against: a simple product or a single variation. Listing columns, the
// inventory report and order-line resolution all work on this view instead of
// branching on the product type.
type Priceable struct {
	ItemID    uint
	Name      string
	SKU       string
	Stock     *int
	SalePrice decimal.Decimal
}

// HasPrice reports whether the item has an effective sale price.
func (p Priceable) HasPrice() bool {
	return !p.SalePrice.IsZero()
}

// InStock reports whether the item has tracked, positive stock.
func (p Priceable) InStock() bool {
	return p.Stock != nil && *p.Stock > 0
}

// PriceableFromProduct views a simple product as a priceable item.
func PriceableFromProduct(p *Product) Priceable {
	return Priceable{
		ItemID:    p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Stock:     p.Stock,
		SalePrice: p.EffectivePrice(),
	}
}

// TermLookup resolves an (attribute, term slug) pair to a display label.
type TermLookup func(attribute, slug string) (string, bool)

// PriceableFromVariation views one variation as a priceable item. The display
// name is the parent name followed by the attribute pairs, e.g.
// "Shirt (Color: Navy Blue, Size: M)". Term slugs without a matching label
// fall back to the raw slug.
func PriceableFromVariation(parent *Product, v *Variation, terms TermLookup) Priceable {
	name := parent.Name
	if len(v.Attributes) > 0 {
		pairs := make([]string, 0, len(v.Attributes))
		for _, a := range v.Attributes {
			value := a.Value
			if terms != nil {
				if label, ok := terms(a.Name, a.Value); ok {
					value = label
				}
			}
			pairs = append(pairs, fmt.Sprintf("%s: %s", AttributeLabel(a.Name), value))
		}
		name = fmt.Sprintf("%s (%s)", name, strings.Join(pairs, ", "))
	}
	return Priceable{
		ItemID:    v.ID,
		Name:      name,
		SKU:       v.SKU,
		Stock:     v.Stock,
		SalePrice: v.Price,
	}
}
