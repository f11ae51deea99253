package database

import (
	"fmt"

	"tradejournal_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persisted model.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Trade{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
