package brands

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
)

// Repository encapsulates brand persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a brand repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a brand by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// FindBySlug loads a brand by slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

// ListActive returns the active brands alphabetically.
func (r *Repository) ListActive(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&brands).
		Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// ListAll returns every brand for the back office.
func (r *Repository) ListAll(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&brands).
		Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// Create inserts a brand row.
func (r *Repository) Create(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

// Update saves the full brand row.
func (r *Repository) Update(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

// Delete removes a brand by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Brand{}, "id = ?", id).Error
}
