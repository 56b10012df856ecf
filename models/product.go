package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	StatusPublished = "published"
	StatusDraft     = "draft"

	TypeSimple   = "simple"
	TypeVariable = "variable"
)

// Product represents a catalog product.
// A zero price means the field is unset; a nil Stock means stock is not tracked.
type Product struct {
	ID           uint            `gorm:"primaryKey"`
	Name         string          `gorm:"not null"`
	SKU          string          `gorm:"uniqueIndex;not null"`
	Status       string          `gorm:"not null;default:published"`
	Type         string          `gorm:"not null;default:simple"`
	RegularPrice decimal.Decimal `gorm:"type:decimal(10,2)"`
	SalePrice    decimal.Decimal `gorm:"type:decimal(10,2)"`
	Stock        *int
	Variations   []Variation `gorm:"foreignKey:ProductID"`
}

func (p *Product) TableName() string {
	return "products"
}

// EffectivePrice is the sale price when one is set, otherwise the regular price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if !p.SalePrice.IsZero() {
		return p.SalePrice
	}
	return p.RegularPrice
}

// Variation is one sellable combination of a variable product's attributes.
type Variation struct {
	ID         uint `gorm:"primaryKey"`
	ProductID  uint `gorm:"index;not null"`
	SKU        string
	Price      decimal.Decimal `gorm:"type:decimal(10,2)"`
	Stock      *int
	Attributes []VariationAttribute `gorm:"foreignKey:VariationID"`
}

func (v *Variation) TableName() string {
	return "product_variations"
}

// VariationAttribute is one attribute/term pair of a variation, both as slugs.
type VariationAttribute struct {
	ID          uint   `gorm:"primaryKey"`
	VariationID uint   `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Value       string `gorm:"not null"`
}

func (a *VariationAttribute) TableName() string {
	return "variation_attributes"
}

// AttributeTerm maps an attribute term slug to its display label.
type AttributeTerm struct {
	ID        uint   `gorm:"primaryKey"`
	Attribute string `gorm:"uniqueIndex:idx_attribute_slug;not null"`
	Slug      string `gorm:"uniqueIndex:idx_attribute_slug;not null"`
	Label     string `gorm:"not null"`
}

func (t *AttributeTerm) TableName() string {
	return "attribute_terms"
}

// AttributeLabel turns an attribute slug into a display label,
// e.g. "shirt-size" becomes "Shirt Size".
func AttributeLabel(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "_", "-"), "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
