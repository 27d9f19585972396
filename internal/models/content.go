package models

import (
	"time"

	"gorm.io/datatypes"
)

// Content represents an editable page content block addressed by key.
type Content struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Key   string `gorm:"type:text;not null;uniqueIndex"` // Lookup key, e.g. "about" or "footer".
	Title string `gorm:"type:text;not null"`             // Block title.
	Body  string `gorm:"type:text"`                      // Main text content.

	MetaDescription string         `gorm:"type:text"`                        // SEO description.
	Images          datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"` // Image URL list.
	Data            datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"` // Structured extras (contact details, links).

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
