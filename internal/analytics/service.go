package analytics

import (
	"context"
	"time"

	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
)

// Dashboard is the full admin analytics payload for one window.
type Dashboard struct {
	From        time.Time    `json:"from"`
	To          time.Time    `json:"to"`
	Totals      Totals       `json:"totals"`
	Daily       []DailyPoint `json:"daily"`
	TopProducts []TopProduct `json:"top_products"`
}

// ServiceParams groups dependencies for the analytics service.
type ServiceParams struct {
	Repo *Repository
}

// Service aggregates order activity for the admin dashboard.
type Service interface {
	Dashboard(ctx context.Context, from, to time.Time) (*Dashboard, error)
}

type service struct {
	repo *Repository
}

// NewService builds an analytics service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "analytics repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// Dashboard runs all window aggregates. A zero window defaults to the last
// 30 days.
func (s *service) Dashboard(ctx context.Context, from, to time.Time) (*Dashboard, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if !from.Before(to) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "window start must precede end")
	}

	totals, err := s.repo.WindowTotals(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate totals")
	}
	daily, err := s.repo.DailySeries(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate daily series")
	}
	top, err := s.repo.TopProducts(ctx, from, to, 10)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rank top products")
	}

	return &Dashboard{
		From:        from,
		To:          to,
		Totals:      totals,
		Daily:       daily,
		TopProducts: top,
	}, nil
}
