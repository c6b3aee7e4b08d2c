package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
)

// Repository encapsulates product persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a product by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySlug loads a product by slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SlugExists reports whether another product already uses the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListActive returns all active products newest first, used to seed the
// storefront read model.
func (r *Repository) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&products).
		Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListAll returns every product newest first for the back office.
func (r *Repository) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&products).
		Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CreateTx inserts a product inside the caller's transaction.
func (r *Repository) CreateTx(tx *gorm.DB, product *models.Product) error {
	return tx.Create(product).Error
}

// UpdateTx saves the full product row inside the caller's transaction.
func (r *Repository) UpdateTx(tx *gorm.DB, product *models.Product) error {
	return tx.Save(product).Error
}

// DeleteTx removes a product inside the caller's transaction.
func (r *Repository) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&models.Product{}, "id = ?", id).Error
}

// InsertStockHistoryTx records a stock movement inside the caller's transaction.
func (r *Repository) InsertStockHistoryTx(tx *gorm.DB, entry *models.StockHistory) error {
	return tx.Create(entry).Error
}

// ListStockHistory returns the stock movements for a product, newest first.
func (r *Repository) ListStockHistory(ctx context.Context, productID uuid.UUID) ([]models.StockHistory, error) {
	var entries []models.StockHistory
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&entries).
		Error; err != nil {
		return nil, err
	}
	return entries, nil
}
