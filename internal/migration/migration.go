package migration

import (
	"errors"
	"fmt"

	catalogservice "github.com/smallbiznis/shopdesk/internal/catalog/service"
	"gorm.io/gorm"
)

// RunMigrations brings the catalog schema up to date so a fresh database
// is usable out of the box for local and self-hosted environments.
func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}
	if err := catalogservice.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate catalog schema: %w", err)
	}
	return nil
}
