package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
)

// ProfileInput carries the user-editable profile fields.
type ProfileInput struct {
	DisplayName *string
	Email       *string
	Phone       *string
	Address     *string
}

// ServiceParams groups dependencies for the user service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes account and profile queries used outside the login flow.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Roles(ctx context.Context, userID uuid.UUID) ([]enums.AppRole, error)
	HasRole(ctx context.Context, userID uuid.UUID, role enums.AppRole) (bool, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	SaveProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*models.Profile, error)
}

type service struct {
	repo *Repository
}

// NewService builds a user service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// GetByID loads an account.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

// Roles lists every role the user holds.
func (s *service) Roles(ctx context.Context, userID uuid.UUID) ([]enums.AppRole, error) {
	roles, err := s.repo.ListRoles(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list roles")
	}
	return roles, nil
}

// HasRole reports whether the user holds the role.
func (s *service) HasRole(ctx context.Context, userID uuid.UUID, role enums.AppRole) (bool, error) {
	if !role.IsValid() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}
	held, err := s.repo.HasRole(ctx, userID, role)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check role")
	}
	return held, nil
}

// GetProfile loads the user's profile, returning an empty one when none has
// been saved yet.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Profile{UserID: userID}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return profile, nil
}

// SaveProfile upserts the user's profile.
func (s *service) SaveProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	profile := &models.Profile{
		UserID:      userID,
		DisplayName: cleanedPtr(input.DisplayName),
		Email:       cleanedPtr(input.Email),
		Phone:       cleanedPtr(input.Phone),
		Address:     cleanedPtr(input.Address),
	}
	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save profile")
	}
	return profile, nil
}

func cleanedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := strings.TrimSpace(*value)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
