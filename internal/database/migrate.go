package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/chefcommunity/client/internal/models"
)

// Migrate creates the key/value table used for session storage.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.StorageEntry{}); err != nil {
		return fmt.Errorf("failed to migrate session storage: %w", err)
	}
	return nil
}
