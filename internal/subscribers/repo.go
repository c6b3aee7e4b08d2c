package subscribers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
)

// Repository encapsulates newsletter subscriber persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a subscriber repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a subscriber row. Duplicate emails surface as a unique
// constraint violation for the caller to translate.
func (r *Repository) Create(ctx context.Context, subscriber *models.Subscriber) error {
	return r.db.WithContext(ctx).Create(subscriber).Error
}

// List returns every subscriber, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&subscribers).
		Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}

// Delete removes a subscriber by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Subscriber{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
