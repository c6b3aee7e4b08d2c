package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
)

// Repository encapsulates review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a review repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a review by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListApprovedForProduct returns approved reviews for a product, newest first.
func (r *Repository) ListApprovedForProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, enums.ReviewStatusApproved).
		Order("created_at DESC").
		Find(&reviews).
		Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByStatus returns reviews in the given moderation state, oldest first so
// moderators work the queue in arrival order.
func (r *Repository) ListByStatus(ctx context.Context, status enums.ReviewStatus) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&reviews).
		Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Create inserts a review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// UpdateStatusTx flips the moderation state inside the caller's transaction.
func (r *Repository) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status enums.ReviewStatus) error {
	result := tx.Model(&models.Review{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AverageApprovedRatingTx computes the mean approved rating for a product
// inside the caller's transaction. Products with no approved reviews yield 0.
func (r *Repository) AverageApprovedRatingTx(tx *gorm.DB, productID uuid.UUID) (float64, error) {
	var avg *float64
	err := tx.Model(&models.Review{}).
		Select("AVG(rating)").
		Where("product_id = ? AND status = ?", productID, enums.ReviewStatusApproved).
		Scan(&avg).
		Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// HasPurchased reports whether the user has an order containing the product.
func (r *Repository) HasPurchased(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ?", userID, productID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateProductRatingTx writes the recomputed rating onto the product row.
func (r *Repository) UpdateProductRatingTx(tx *gorm.DB, productID uuid.UUID, rating float64) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("rating", rating).
		Error
}
