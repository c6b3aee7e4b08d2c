package models

import (
	"time"

	"github.com/google/uuid"
)

// Brand groups products by manufacturer.
type Brand struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	Slug           string    `gorm:"column:slug;not null;uniqueIndex"`
	Description    *string   `gorm:"column:description"`
	Logo           *string   `gorm:"column:logo"`
	Active         bool      `gorm:"column:active;not null;default:true"`
	SEOTitle       *string   `gorm:"column:seo_title"`
	SEODescription *string   `gorm:"column:seo_description"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
