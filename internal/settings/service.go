package settings

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
)

// PutInput carries a setting write.
type PutInput struct {
	Key       string
	Category  string
	Value     json.RawMessage
	UpdatedBy *uuid.UUID
}

// ServiceParams groups dependencies for the settings service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes keyed JSON site configuration.
type Service interface {
	Get(ctx context.Context, key string) (*models.SiteSetting, error)
	ListByCategory(ctx context.Context, category string) ([]models.SiteSetting, error)
	ListAll(ctx context.Context) ([]models.SiteSetting, error)
	Put(ctx context.Context, input PutInput) (*models.SiteSetting, error)
}

type service struct {
	repo *Repository
}

// NewService builds a settings service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// Get loads a single setting by key.
func (s *service) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	cleaned := strings.TrimSpace(key)
	if cleaned == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting key is required")
	}
	setting, err := s.repo.FindByKey(ctx, cleaned)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "setting not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load setting")
	}
	return setting, nil
}

// ListByCategory returns the settings grouped under one category.
func (s *service) ListByCategory(ctx context.Context, category string) ([]models.SiteSetting, error) {
	cleaned := strings.TrimSpace(category)
	if cleaned == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	settings, err := s.repo.ListByCategory(ctx, cleaned)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list settings")
	}
	return settings, nil
}

// ListAll returns every setting for the back office.
func (s *service) ListAll(ctx context.Context) ([]models.SiteSetting, error) {
	settings, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list settings")
	}
	return settings, nil
}

// Put upserts a setting. The value must be valid JSON since the column is
// jsonb.
func (s *service) Put(ctx context.Context, input PutInput) (*models.SiteSetting, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting key is required")
	}
	if len(input.Value) == 0 || !json.Valid(input.Value) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "value must be valid JSON")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "general"
	}

	setting := &models.SiteSetting{
		ID:        uuid.New(),
		Category:  category,
		Key:       key,
		Value:     input.Value,
		UpdatedBy: input.UpdatedBy,
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save setting")
	}
	return setting, nil
}
