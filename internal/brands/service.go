package brands

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
)

// BrandInput carries the admin-editable brand fields.
type BrandInput struct {
	Name           string
	Description    *string
	Logo           *string
	Active         bool
	SEOTitle       *string
	SEODescription *string
}

// ServiceParams groups dependencies for the brand service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes brand management and storefront queries.
type Service interface {
	Create(ctx context.Context, input BrandInput) (*models.Brand, error)
	Update(ctx context.Context, id uuid.UUID, input BrandInput) (*models.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetBySlug(ctx context.Context, slug string) (*models.Brand, error)
	ListActive(ctx context.Context) ([]models.Brand, error)
	ListAll(ctx context.Context) ([]models.Brand, error)
}

type service struct {
	repo *Repository
}

// NewService builds a brand service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// Create inserts a brand.
func (s *service) Create(ctx context.Context, input BrandInput) (*models.Brand, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	brand := applyInput(&models.Brand{}, input)
	brand.Slug = slugify(input.Name)
	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create brand")
	}
	return brand, nil
}

// Update saves the brand.
func (s *service) Update(ctx context.Context, id uuid.UUID, input BrandInput) (*models.Brand, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}

	brand := applyInput(existing, input)
	brand.Slug = slugify(input.Name)
	if err := s.repo.Update(ctx, brand); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update brand")
	}
	return brand, nil
}

// Delete removes the brand.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "brand id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete brand")
	}
	return nil
}

// GetBySlug loads a brand by slug.
func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	brand, err := s.repo.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "brand not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load brand")
	}
	return brand, nil
}

// ListActive returns the storefront brand set.
func (s *service) ListActive(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return brands, nil
}

// ListAll returns every brand for the back office.
func (s *service) ListAll(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	return brands, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func applyInput(brand *models.Brand, input BrandInput) *models.Brand {
	brand.Name = strings.TrimSpace(input.Name)
	brand.Description = input.Description
	brand.Logo = input.Logo
	brand.Active = input.Active
	brand.SEOTitle = input.SEOTitle
	brand.SEODescription = input.SEODescription
	return brand
}
