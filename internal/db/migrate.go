package db

import (
	"fmt"

	"github.com/voxedgemedia/media-api/internal/models"
	"gorm.io/gorm"
)

// Migrate runs database migrations for all persisted entities.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if errAutoMigrate := conn.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.OTP{},
		&models.Booking{},
		&models.Service{},
		&models.Plan{},
		&models.Content{},
		&models.Contact{},
	); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}
	return nil
}
