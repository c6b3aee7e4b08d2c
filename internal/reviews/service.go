package reviews

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SubmitInput carries a customer review submission.
type SubmitInput struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Title     *string
	Content   *string
}

// ServiceParams groups dependencies for the review service.
type ServiceParams struct {
	DB     txRunner
	Repo   *Repository
	Logger *logger.Logger
}

// Service exposes review submission and moderation.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Review, error)
	Moderate(ctx context.Context, id uuid.UUID, status enums.ReviewStatus) error
	ListApproved(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	ListPending(ctx context.Context) ([]models.Review, error)
}

type service struct {
	db   txRunner
	repo *Repository
	logg *logger.Logger
}

// NewService builds a review service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "database client is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{db: params.DB, repo: params.Repo, logg: params.Logger}, nil
}

// Submit stores a pending review. Verified purchase is derived, never
// client-supplied.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Review, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	verified, err := s.repo.HasPurchased(ctx, input.UserID, input.ProductID)
	if err != nil {
		// Purchase lookup failure downgrades the badge rather than blocking
		// the submission.
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "verified purchase lookup failed")
		verified = false
	}

	review := &models.Review{
		ID:               uuid.New(),
		ProductID:        input.ProductID,
		UserID:           input.UserID,
		Rating:           input.Rating,
		Title:            trimmed(input.Title),
		Content:          trimmed(input.Content),
		Status:           enums.ReviewStatusPending,
		VerifiedPurchase: verified,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return review, nil
}

// Moderate flips a review's status. Approval recomputes the product rating
// in the same transaction so the listing never shows a stale average.
func (s *service) Moderate(ctx context.Context, id uuid.UUID, status enums.ReviewStatus) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	if status != enums.ReviewStatusApproved && status != enums.ReviewStatusRejected {
		return pkgerrors.New(pkgerrors.CodeValidation, "status must be approved or rejected")
	}

	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatusTx(tx, id, status); err != nil {
			return err
		}
		if status != enums.ReviewStatusApproved {
			return nil
		}
		avg, err := s.repo.AverageApprovedRatingTx(tx, review.ProductID)
		if err != nil {
			return err
		}
		return s.repo.UpdateProductRatingTx(tx, review.ProductID, roundRating(avg))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "moderate review")
	}
	return nil
}

// ListApproved returns the public reviews for a product.
func (s *service) ListApproved(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	reviews, err := s.repo.ListApprovedForProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return reviews, nil
}

// ListPending returns the moderation queue.
func (s *service) ListPending(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.repo.ListByStatus(ctx, enums.ReviewStatusPending)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return reviews, nil
}

// roundRating keeps two decimal places, matching the numeric(3,2) column.
func roundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := strings.TrimSpace(*value)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
