package categories

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/internal/catalog"
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// CategoryInput carries the admin-editable category fields.
type CategoryInput struct {
	Name           string
	ParentID       *uuid.UUID
	Image          *string
	BannerImage    *string
	SortOrder      *int
	Active         bool
	SEOTitle       *string
	SEODescription *string
}

// ServiceParams groups dependencies for the category service.
type ServiceParams struct {
	DB     txRunner
	Repo   *Repository
	Outbox eventEmitter
}

// Service exposes category management and storefront queries.
type Service interface {
	Create(ctx context.Context, input CategoryInput, actor *outbox.ActorRef) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input CategoryInput, actor *outbox.ActorRef) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID, actor *outbox.ActorRef) error
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListActive(ctx context.Context) ([]models.Category, error)
	ListAll(ctx context.Context) ([]models.Category, error)
}

type service struct {
	db     txRunner
	repo   *Repository
	outbox eventEmitter
}

// NewService builds a category service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "database client is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category repo is required")
	}
	if params.Outbox == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "outbox service is required")
	}
	return &service{db: params.DB, repo: params.Repo, outbox: params.Outbox}, nil
}

// Create inserts a category and queues the catalog change event.
func (s *service) Create(ctx context.Context, input CategoryInput, actor *outbox.ActorRef) (*models.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	category := applyInput(&models.Category{}, input)
	category.Slug = slugify(input.Name)

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, category); err != nil {
			return err
		}
		return s.emit(ctx, tx, enums.OutboxEventCategoryCreated, category, actor)
	})
	if err != nil {
		return nil, wrapWriteError(err, "create category")
	}
	return category, nil
}

// Update saves the category and queues the catalog change event.
func (s *service) Update(ctx context.Context, id uuid.UUID, input CategoryInput, actor *outbox.ActorRef) (*models.Category, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	category := applyInput(existing, input)
	category.Slug = slugify(input.Name)

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, category); err != nil {
			return err
		}
		return s.emit(ctx, tx, enums.OutboxEventCategoryUpdated, category, actor)
	})
	if err != nil {
		return nil, wrapWriteError(err, "update category")
	}
	return category, nil
}

// Delete removes the category and queues the catalog removal event.
func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *outbox.ActorRef) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return err
		}
		return s.emit(ctx, tx, enums.OutboxEventCategoryDeleted, existing, actor)
	})
	if err != nil {
		return wrapWriteError(err, "delete category")
	}
	return nil
}

// GetBySlug loads a category by slug.
func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.repo.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

// ListActive returns the storefront category set.
func (s *service) ListActive(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}

// ListAll returns every category for the back office.
func (s *service) ListAll(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}

func (s *service) emit(ctx context.Context, tx *gorm.DB, eventType enums.OutboxEventType, category *models.Category, actor *outbox.ActorRef) error {
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: enums.OutboxAggregateCategory,
		AggregateID:   category.ID,
		Actor:         actor,
		Data:          catalog.CategoryEventPayload{Category: *category},
		Version:       1,
	})
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func applyInput(category *models.Category, input CategoryInput) *models.Category {
	category.Name = strings.TrimSpace(input.Name)
	category.ParentID = input.ParentID
	category.Image = input.Image
	category.BannerImage = input.BannerImage
	category.SortOrder = input.SortOrder
	category.Active = input.Active
	category.SEOTitle = input.SEOTitle
	category.SEODescription = input.SEODescription
	return category
}

func wrapWriteError(err error, message string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
