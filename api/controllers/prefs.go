package controllers

import (
	"net/http"

	"github.com/junavolabs/junavo-backend/api/middleware"
	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	prefssvc "github.com/junavolabs/junavo-backend/internal/prefs"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type prefsRequest struct {
	Language string `json:"language" validate:"required"`
	Currency string `json:"currency" validate:"required"`
	Theme    string `json:"theme"`
}

// PrefsGet returns the session's locale preferences.
func PrefsGet(store prefssvc.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		responses.WriteSuccess(w, store.Get(r.Context(), sessionID))
	}
}

// PrefsSet stores the session's locale preferences.
func PrefsSet(store prefssvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload prefsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		saved, err := store.Set(r.Context(), sessionID, prefssvc.Preferences{
			Language: enums.Language(payload.Language),
			Currency: enums.Currency(payload.Currency),
			Theme:    validators.SanitizeString(payload.Theme, 32),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}
