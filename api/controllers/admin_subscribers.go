package controllers

import (
	"net/http"

	"github.com/junavolabs/junavo-backend/api/responses"
	adminlogsvc "github.com/junavolabs/junavo-backend/internal/adminlog"
	subscribersvc "github.com/junavolabs/junavo-backend/internal/subscribers"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

// AdminSubscriberList serves every newsletter signup.
func AdminSubscriberList(svc subscribersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subscribers, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, subscribers)
	}
}

// AdminSubscriberDelete removes a signup.
func AdminSubscriberDelete(svc subscribersvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "subscriberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "subscriber.delete", "subscriber", &id)
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
