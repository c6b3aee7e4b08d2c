package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/junavolabs/junavo-backend/api/responses"
	analyticssvc "github.com/junavolabs/junavo-backend/internal/analytics"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

// AdminAnalyticsDashboard serves the aggregated order metrics. The window
// defaults to the last 30 days when from/to are omitted.
func AdminAnalyticsDashboard(svc analyticssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := parseDateParam(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := parseDateParam(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dashboard, err := svc.Dashboard(r.Context(), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}

func parseDateParam(r *http.Request, key string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "dates must use YYYY-MM-DD").WithDetails(map[string]any{"field": key})
	}
	return parsed, nil
}
