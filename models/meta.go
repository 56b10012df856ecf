package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchasePriceKey is the meta key the cost basis is stored under.
const PurchasePriceKey = "_purchase_price"

// ProductMeta is a generic per-item key-value record. Purchase prices are one
// of its keys; nothing in the schema restricts it to them.
type ProductMeta struct {
	ID     uint   `gorm:"primaryKey"`
	ItemID uint   `gorm:"uniqueIndex:idx_item_key;not null"`
	Key    string `gorm:"uniqueIndex:idx_item_key;not null;column:meta_key"`
	Value  string `gorm:"column:meta_value"`
}

func (m *ProductMeta) TableName() string {
	return "product_meta"
}

// PurchasePriceStore reads and writes the purchase price stored per catalog
// item id (product or variation).
type PurchasePriceStore struct {
	db *gorm.DB
}

func NewPurchasePriceStore(db *gorm.DB) *PurchasePriceStore {
	return &PurchasePriceStore{db: db}
}

// Get returns the stored purchase price for an item. ok is false when no
// value is stored, or the stored value is empty, non-numeric or zero.
func (s *PurchasePriceStore) Get(itemID uint) (decimal.Decimal, bool, error) {
	var meta ProductMeta
	err := s.db.
		Where("item_id = ? AND meta_key = ?", itemID, PurchasePriceKey).
		First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("load purchase price: %w", err)
	}
	price, ok := parsePrice(meta.Value)
	return price, ok, nil
}

// GetMany returns the purchase prices for a set of item ids. The map carries
// entries only for items with a set value.
func (s *PurchasePriceStore) GetMany(itemIDs []uint) (map[uint]decimal.Decimal, error) {
	prices := make(map[uint]decimal.Decimal, len(itemIDs))
	if len(itemIDs) == 0 {
		return prices, nil
	}
	var metas []ProductMeta
	if err := s.db.
		Where("item_id IN ? AND meta_key = ?", itemIDs, PurchasePriceKey).
		Find(&metas).Error; err != nil {
		return nil, fmt.Errorf("load purchase prices: %w", err)
	}
	for _, m := range metas {
		if price, ok := parsePrice(m.Value); ok {
			prices[m.ItemID] = price
		}
	}
	return prices, nil
}

// Set stores the raw submitted value, overwriting any prior one. The value is
// only whitespace-trimmed; numeric sanity is judged at read time, so a
// non-numeric submission simply reads back as unset.
func (s *PurchasePriceStore) Set(itemID uint, raw string) error {
	meta := ProductMeta{
		ItemID: itemID,
		Key:    PurchasePriceKey,
		Value:  strings.TrimSpace(raw),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "meta_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"meta_value"}),
	}).Create(&meta).Error
	if err != nil {
		return fmt.Errorf("store purchase price: %w", err)
	}
	return nil
}

// parsePrice interprets a stored meta value. Empty, non-numeric and zero
// values all count as "no purchase price set".
func parsePrice(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsZero() {
		return decimal.Zero, false
	}
	return price, true
}
