package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a storefront navigation node; ParentID allows one level of nesting.
type Category struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string     `gorm:"column:name;not null"`
	Slug           string     `gorm:"column:slug;not null;uniqueIndex"`
	ParentID       *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	Image          *string    `gorm:"column:image"`
	BannerImage    *string    `gorm:"column:banner_image"`
	SortOrder      *int       `gorm:"column:sort_order"`
	Active         bool       `gorm:"column:active;not null;default:true"`
	SEOTitle       *string    `gorm:"column:seo_title"`
	SEODescription *string    `gorm:"column:seo_description"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}
