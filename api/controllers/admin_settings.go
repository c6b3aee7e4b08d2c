package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	adminlogsvc "github.com/junavolabs/junavo-backend/internal/adminlog"
	settingssvc "github.com/junavolabs/junavo-backend/internal/settings"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type settingPutRequest struct {
	Category string          `json:"category"`
	Value    json.RawMessage `json:"value" validate:"required"`
}

// AdminSettingsList serves settings, optionally filtered by category.
func AdminSettingsList(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := strings.TrimSpace(r.URL.Query().Get("category"))
		if category != "" {
			settings, err := svc.ListByCategory(r.Context(), category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, settings)
			return
		}

		settings, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

// AdminSettingGet serves a single setting by key.
func AdminSettingGet(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setting, err := svc.Get(r.Context(), urlParam(r, "key"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, setting)
	}
}

// AdminSettingPut upserts a setting by key.
func AdminSettingPut(svc settingssvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload settingPutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adminID, err := contextUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setting, err := svc.Put(r.Context(), settingssvc.PutInput{
			Key:       urlParam(r, "key"),
			Category:  payload.Category,
			Value:     payload.Value,
			UpdatedBy: &adminID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "setting.put", "site_setting", &setting.ID)
		responses.WriteSuccess(w, setting)
	}
}
