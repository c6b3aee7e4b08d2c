package subscribers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db"
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
)

const emailConstraint = "ux_subscribers_email"

// ServiceParams groups dependencies for the subscriber service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes newsletter signup and back-office management.
type Service interface {
	Subscribe(ctx context.Context, email string) (*models.Subscriber, error)
	List(ctx context.Context) ([]models.Subscriber, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     *Repository
	validate *validator.Validate
}

// NewService builds a subscriber service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subscriber repo is required")
	}
	return &service{
		repo:     params.Repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// Subscribe records a newsletter signup. Email is stored lowercased so the
// unique index deduplicates case variants.
func (s *service) Subscribe(ctx context.Context, email string) (*models.Subscriber, error) {
	cleaned := strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(cleaned, "required,email"); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email address is required")
	}

	subscriber := &models.Subscriber{ID: uuid.New(), Email: cleaned}
	if err := s.repo.Create(ctx, subscriber); err != nil {
		if db.IsUniqueViolation(err, emailConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already subscribed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subscriber")
	}
	return subscriber, nil
}

// List returns every subscriber for the back office.
func (s *service) List(ctx context.Context) ([]models.Subscriber, error) {
	subscribers, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscribers")
	}
	return subscribers, nil
}

// Delete removes a subscriber.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "subscriber id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "subscriber not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete subscriber")
	}
	return nil
}
