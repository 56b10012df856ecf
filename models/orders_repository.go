package models

import (
	"time"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		db: db,
	}
}

// GetByStatusAndDateRange returns orders whose status is one of statuses and
// whose creation timestamp falls within [start, end], with line items
// preloaded. Both bounds are inclusive; callers pass day boundaries.
func (r *OrdersRepository) GetByStatusAndDateRange(statuses []string, start, end time.Time) ([]Order, error) {
	var orders []Order
	if err := r.db.
		Preload("Lines").
		Where("status IN ?", statuses).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
