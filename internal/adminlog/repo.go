package adminlog

import (
	"context"

	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
)

// Repository encapsulates audit log persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an audit log repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends an audit entry.
func (r *Repository) Create(ctx context.Context, entry *models.AdminLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns the newest entries up to limit.
func (r *Repository) List(ctx context.Context, limit int) ([]models.AdminLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []models.AdminLog
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).
		Error; err != nil {
		return nil, err
	}
	return entries, nil
}
