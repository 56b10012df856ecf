// Package database owns the store connection and schema migration.
package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/autoazul/store-profit/models"
)

// Connect opens the store through database/sql with the pq driver and hands
// the live connection to gorm.
func Connect(dsn string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("init gorm: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every model the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Variation{},
		&models.VariationAttribute{},
		&models.AttributeTerm{},
		&models.Order{},
		&models.OrderLine{},
		&models.ProductMeta{},
	)
}
