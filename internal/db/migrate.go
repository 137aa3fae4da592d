package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dsmorokov/teamup/internal/models"
)

// Migrate brings the schema up to date for all domain models.
func Migrate(db *gorm.DB) error {
	for _, m := range []any{&models.User{}, &models.Game{}, &models.Message{}} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	// sanity check: ensure required core tables exist
	for _, table := range []string{"users", "games", "messages"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}
