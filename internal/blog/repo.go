package blog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
)

// Repository encapsulates blog post persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a blog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a post by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindPublishedBySlug loads a published post by slug.
func (r *Repository) FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, enums.BlogStatusPublished).
		First(&post).
		Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPublished returns published posts, newest publication first.
func (r *Repository) ListPublished(ctx context.Context, limit int) ([]models.BlogPost, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", enums.BlogStatusPublished).
		Order("published_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var posts []models.BlogPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListAll returns every post for the back office, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&posts).
		Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Create inserts a post row.
func (r *Repository) Create(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update saves the full post row.
func (r *Repository) Update(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes a post by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.BlogPost{}, "id = ?", id).Error
}

// IncrementViewCount bumps the counter atomically. Best effort from the
// caller's perspective; a lost increment never blocks the page.
func (r *Repository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).
		Error
}

// SlugExists reports whether another post already owns the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BlogPost{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
