package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/junavolabs/junavo-backend/pkg/enums"
)

// Coupon is a checkout discount code. Discount is a flat amount for
// DiscountTypeFixed and a 0-100 percentage for DiscountTypePercent.
type Coupon struct {
	ID                   uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code                 string             `gorm:"column:code;not null;uniqueIndex"`
	Discount             decimal.Decimal    `gorm:"column:discount;type:numeric(10,2);not null"`
	DiscountType         enums.DiscountType `gorm:"column:discount_type;not null;default:fixed"`
	MinPurchase          *decimal.Decimal   `gorm:"column:min_purchase;type:numeric(10,2)"`
	ApplicableCategories pq.StringArray     `gorm:"column:applicable_categories;type:text[]"`
	UsageLimit           *int               `gorm:"column:usage_limit"`
	UsageCount           int                `gorm:"column:usage_count;not null;default:0"`
	PerUserLimit         *int               `gorm:"column:per_user_limit"`
	ExpiresAt            *time.Time         `gorm:"column:expires_at"`
	Active               bool               `gorm:"column:active;not null;default:true"`
	CreatedAt            time.Time          `gorm:"column:created_at;autoCreateTime"`
}
