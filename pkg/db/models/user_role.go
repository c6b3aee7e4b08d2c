package models

import (
	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/pkg/enums"
)

// UserRole grants a role to a user. Roles live in their own table so a user
// can hold several.
type UserRole struct {
	ID     uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID     `gorm:"column:user_id;type:uuid;not null;uniqueIndex:ux_user_roles_user_role"`
	Role   enums.AppRole `gorm:"column:role;not null;uniqueIndex:ux_user_roles_user_role"`
}
