package adminlog

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

// Entry describes one back-office action to record.
type Entry struct {
	AdminID    uuid.UUID
	Action     string
	EntityType *string
	EntityID   *uuid.UUID
	Details    any
	IPAddress  *string
}

// ServiceParams groups dependencies for the audit log service.
type ServiceParams struct {
	Repo   *Repository
	Logger *logger.Logger
}

// Service records and lists back-office audit entries.
type Service interface {
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, limit int) ([]models.AdminLog, error)
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService builds an audit log service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin log repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

// Record appends an audit entry. Auditing never fails the mutation it
// describes; write errors are logged and swallowed.
func (s *service) Record(ctx context.Context, entry Entry) {
	if entry.AdminID == uuid.Nil || strings.TrimSpace(entry.Action) == "" {
		s.logg.Warn(ctx, "audit entry missing admin id or action, dropped")
		return
	}

	var details json.RawMessage
	if entry.Details != nil {
		encoded, err := json.Marshal(entry.Details)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "audit details marshal failed")
		} else {
			details = encoded
		}
	}

	row := &models.AdminLog{
		ID:         uuid.New(),
		AdminID:    entry.AdminID,
		Action:     strings.TrimSpace(entry.Action),
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    details,
		IPAddress:  entry.IPAddress,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "audit entry write failed")
	}
}

// List returns recent audit entries for the back office.
func (s *service) List(ctx context.Context, limit int) ([]models.AdminLog, error) {
	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit entries")
	}
	return entries, nil
}
