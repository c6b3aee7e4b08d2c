package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/pkg/enums"
)

// StockHistory records every stock movement with before/after quantities.
type StockHistory struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID        uuid.UUID             `gorm:"column:product_id;type:uuid;not null"`
	AdminID          *uuid.UUID            `gorm:"column:admin_id;type:uuid"`
	ChangeType       enums.StockChangeType `gorm:"column:change_type;not null"`
	PreviousQuantity int                   `gorm:"column:previous_quantity;not null"`
	NewQuantity      int                   `gorm:"column:new_quantity;not null"`
	Reason           *string               `gorm:"column:reason"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
}
