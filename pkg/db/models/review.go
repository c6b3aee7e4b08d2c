package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/pkg/enums"
)

// Review is a customer product review awaiting moderation.
type Review struct {
	ID               uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID        uuid.UUID          `gorm:"column:product_id;type:uuid;not null"`
	UserID           uuid.UUID          `gorm:"column:user_id;type:uuid;not null"`
	Rating           int                `gorm:"column:rating;not null"`
	Title            *string            `gorm:"column:title"`
	Content          *string            `gorm:"column:content"`
	Status           enums.ReviewStatus `gorm:"column:status;not null;default:pending"`
	VerifiedPurchase bool               `gorm:"column:verified_purchase;not null;default:false"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
