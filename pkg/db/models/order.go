package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/junavolabs/junavo-backend/pkg/enums"
)

// Order stores the priced totals computed at submission time. Items are written
// separately after the order row exists.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          *uuid.UUID          `gorm:"column:user_id;type:uuid"`
	BillingName     *string             `gorm:"column:billing_name"`
	BillingEmail    *string             `gorm:"column:billing_email"`
	BillingPhone    *string             `gorm:"column:billing_phone"`
	BillingAddress  *string             `gorm:"column:billing_address"`
	BillingCity     *string             `gorm:"column:billing_city"`
	BillingZip      *string             `gorm:"column:billing_zip"`
	ShippingName    *string             `gorm:"column:shipping_name"`
	ShippingAddress *string             `gorm:"column:shipping_address"`
	ShippingCity    *string             `gorm:"column:shipping_city"`
	ShippingZip     *string             `gorm:"column:shipping_zip"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method"`
	Subtotal        decimal.Decimal     `gorm:"column:subtotal;type:numeric(10,2);not null;default:0"`
	Discount        decimal.Decimal     `gorm:"column:discount;type:numeric(10,2);not null;default:0"`
	Shipping        decimal.Decimal     `gorm:"column:shipping;type:numeric(10,2);not null;default:0"`
	Total           decimal.Decimal     `gorm:"column:total;type:numeric(10,2);not null;default:0"`
	Status          enums.OrderStatus   `gorm:"column:status;not null;default:pending"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
