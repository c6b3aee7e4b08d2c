package controllers

import (
	"net/http"

	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	adminlogsvc "github.com/junavolabs/junavo-backend/internal/adminlog"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

// AdminLogList serves recent audit entries.
func AdminLogList(svc adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entries, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
