package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AdminLog is an append-only audit entry for back-office actions.
type AdminLog struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AdminID    uuid.UUID       `gorm:"column:admin_id;type:uuid;not null"`
	Action     string          `gorm:"column:action;not null"`
	EntityType *string         `gorm:"column:entity_type"`
	EntityID   *uuid.UUID      `gorm:"column:entity_id;type:uuid"`
	Details    json.RawMessage `gorm:"column:details;type:jsonb"`
	IPAddress  *string         `gorm:"column:ip_address"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
