package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
)

// Repository encapsulates category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a category repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a category by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindBySlug loads a category by slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListActive returns the active categories in navigation order, used to
// seed the storefront read model.
func (r *Repository) ListActive(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC NULLS LAST").
		Order("name ASC").
		Find(&categories).
		Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListAll returns every category for the back office.
func (r *Repository) ListAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC NULLS LAST").
		Order("name ASC").
		Find(&categories).
		Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateTx inserts a category inside the caller's transaction.
func (r *Repository) CreateTx(tx *gorm.DB, category *models.Category) error {
	return tx.Create(category).Error
}

// UpdateTx saves the full category row inside the caller's transaction.
func (r *Repository) UpdateTx(tx *gorm.DB, category *models.Category) error {
	return tx.Save(category).Error
}

// DeleteTx removes a category inside the caller's transaction.
func (r *Repository) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&models.Category{}, "id = ?", id).Error
}

// ReplaceAllTx deletes every category and inserts the provided set, used
// by the seeding command.
func (r *Repository) ReplaceAllTx(tx *gorm.DB, categories []models.Category) error {
	if err := tx.Exec("DELETE FROM categories").Error; err != nil {
		return err
	}
	if len(categories) == 0 {
		return nil
	}
	return tx.Create(&categories).Error
}
