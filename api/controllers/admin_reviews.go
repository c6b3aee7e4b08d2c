package controllers

import (
	"net/http"

	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	adminlogsvc "github.com/junavolabs/junavo-backend/internal/adminlog"
	reviewsvc "github.com/junavolabs/junavo-backend/internal/reviews"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type reviewModerateRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminReviewQueue lists pending reviews in arrival order.
func AdminReviewQueue(svc reviewsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviews, err := svc.ListPending(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, reviews)
	}
}

// AdminReviewModerate approves or rejects a review. Approval recomputes the
// product's average rating.
func AdminReviewModerate(svc reviewsvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reviewModerateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseReviewStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown review status"))
			return
		}

		if err := svc.Moderate(r.Context(), id, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "review.moderate", "review", &id)
		responses.WriteSuccess(w, map[string]string{"status": string(status)})
	}
}
