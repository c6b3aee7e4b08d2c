package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SiteSetting is a keyed JSON configuration value editable from the back office.
type SiteSetting struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Category  string          `gorm:"column:category;not null;default:general"`
	Key       string          `gorm:"column:key;not null;uniqueIndex"`
	Value     json.RawMessage `gorm:"column:value;type:jsonb;not null"`
	UpdatedBy *uuid.UUID      `gorm:"column:updated_by;type:uuid"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
