package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/pkg/enums"
)

// BlogPost is an editorial article managed from the back office.
type BlogPost struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AuthorID       uuid.UUID        `gorm:"column:author_id;type:uuid;not null"`
	Title          string           `gorm:"column:title;not null"`
	Slug           string           `gorm:"column:slug;not null;uniqueIndex"`
	Excerpt        *string          `gorm:"column:excerpt"`
	Content        *string          `gorm:"column:content"`
	FeaturedImage  *string          `gorm:"column:featured_image"`
	Status         enums.BlogStatus `gorm:"column:status;not null;default:draft"`
	PublishedAt    *time.Time       `gorm:"column:published_at"`
	ScheduledAt    *time.Time       `gorm:"column:scheduled_at"`
	ViewCount      int              `gorm:"column:view_count;not null;default:0"`
	SEOTitle       *string          `gorm:"column:seo_title"`
	SEODescription *string          `gorm:"column:seo_description"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
