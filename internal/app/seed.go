package app

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/voxedgemedia/media-api/internal/config"
	"github.com/voxedgemedia/media-api/internal/models"
	"github.com/voxedgemedia/media-api/internal/security"
)

// EnsureAdmin creates the seeded admin account when it does not exist yet.
// An existing account is left untouched so password changes survive restarts.
func EnsureAdmin(conn *gorm.DB, seed config.AdminSeed) error {
	if conn == nil {
		return fmt.Errorf("ensure admin: nil connection")
	}
	email := strings.ToLower(strings.TrimSpace(seed.Email))
	if email == "" {
		return nil
	}
	if strings.TrimSpace(seed.Password) == "" {
		return fmt.Errorf("ensure admin: password is required when admin email is set")
	}

	var existing models.Admin
	errFind := conn.Where("email = ?", email).First(&existing).Error
	if errFind == nil {
		return nil
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return fmt.Errorf("ensure admin: %w", errFind)
	}

	hashed, errHash := security.HashPassword(seed.Password)
	if errHash != nil {
		return fmt.Errorf("ensure admin: hash password: %w", errHash)
	}
	admin := models.Admin{
		Email:    email,
		Password: hashed,
	}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("ensure admin: %w", errCreate)
	}
	log.Infof("seeded admin account %s", email)
	return nil
}
