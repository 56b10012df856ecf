package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrItemNotFound is returned when a product or variation is not found.
var ErrItemNotFound = errors.New("catalog item not found")

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{
		db: db,
	}
}

// GetPublishedProducts returns every published product with its variations
// and their attributes preloaded.
func (r *CatalogRepository) GetPublishedProducts() ([]Product, error) {
	var products []Product
	if err := r.db.
		Preload("Variations.Attributes").
		Preload("Variations").
		Where("status = ?", StatusPublished).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProducts returns one page of the product listing plus the total count.
func (r *CatalogRepository) GetProducts(offset, limit int) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.Model(&Product{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Variations").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *CatalogRepository) GetProductByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Variations.Attributes").
		Preload("Variations").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// ResolveItem returns the priceable view of an order line's target: the
// variation when variationID is nonzero, else the product itself.
// ErrItemNotFound covers both a missing product and a variation id that is
// not a child of the product.
func (r *CatalogRepository) ResolveItem(productID, variationID uint) (*Priceable, error) {
	product, err := r.GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	if variationID == 0 {
		item := PriceableFromProduct(product)
		return &item, nil
	}

	for i := range product.Variations {
		if product.Variations[i].ID == variationID {
			item := PriceableFromVariation(product, &product.Variations[i], r.TermLookup())
			return &item, nil
		}
	}
	return nil, ErrItemNotFound
}

// TermLookup returns a TermLookup backed by the attribute_terms table.
func (r *CatalogRepository) TermLookup() TermLookup {
	return func(attribute, slug string) (string, bool) {
		var term AttributeTerm
		err := r.db.
			Where("attribute = ? AND slug = ?", attribute, slug).
			First(&term).Error
		if err != nil {
			return "", false
		}
		return term.Label, true
	}
}
