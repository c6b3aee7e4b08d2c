package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/api/middleware"
	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	wishlistsvc "github.com/junavolabs/junavo-backend/internal/wishlist"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type wishlistToggleRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type wishlistResponse struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
	Count      int         `json:"count"`
	Added      *bool       `json:"added,omitempty"`
}

// WishlistGet returns the session's wishlist.
func WishlistGet(store wishlistsvc.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		list := store.Get(r.Context(), sessionID)
		responses.WriteSuccess(w, wishlistResponse{ProductIDs: list.ProductIDs, Count: list.Count()})
	}
}

// WishlistToggle adds the product when absent, removes it when present.
func WishlistToggle(store wishlistsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload wishlistToggleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		list, added, err := store.Toggle(r.Context(), sessionID, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistResponse{ProductIDs: list.ProductIDs, Count: list.Count(), Added: &added})
	}
}
