package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
)

// Repository encapsulates site setting persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a settings repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByKey loads a setting by its unique key.
func (r *Repository) FindByKey(ctx context.Context, key string) (*models.SiteSetting, error) {
	var setting models.SiteSetting
	if err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// ListByCategory returns every setting in a category, keyed alphabetically.
func (r *Repository) ListByCategory(ctx context.Context, category string) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("key ASC").
		Find(&settings).
		Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// ListAll returns every setting grouped by category then key.
func (r *Repository) ListAll(ctx context.Context) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	if err := r.db.WithContext(ctx).
		Order("category ASC").
		Order("key ASC").
		Find(&settings).
		Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// Upsert inserts the setting or replaces its value when the key exists.
func (r *Repository) Upsert(ctx context.Context, setting *models.SiteSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"category", "value", "updated_by", "updated_at"}),
		}).
		Create(setting).
		Error
}
