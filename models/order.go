package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderCompleted  = "completed"
	OrderProcessing = "processing"
	OrderPending    = "pending"
	OrderCancelled  = "cancelled"
)

// Order is a customer order with its line items.
type Order struct {
	ID        uint        `gorm:"primaryKey"`
	Status    string      `gorm:"index;not null"`
	CreatedAt time.Time   `gorm:"index"`
	Lines     []OrderLine `gorm:"foreignKey:OrderID"`
}

func (o *Order) TableName() string {
	return "orders"
}

// OrderLine references a product and, when the customer bought a specific
// variation, its variation id. Total is the line total after discounts.
type OrderLine struct {
	ID          uint `gorm:"primaryKey"`
	OrderID     uint `gorm:"index;not null"`
	ProductID   uint `gorm:"not null"`
	VariationID uint
	Quantity    int             `gorm:"not null"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (l *OrderLine) TableName() string {
	return "order_lines"
}

// EffectiveItemID is the id the purchase price is stored under: the variation
// id when the line references one, else the product id.
func (l *OrderLine) EffectiveItemID() uint {
	if l.VariationID != 0 {
		return l.VariationID
	}
	return l.ProductID
}
