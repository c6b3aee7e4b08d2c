package controllers

import (
	"net/http"
	"strings"

	"github.com/junavolabs/junavo-backend/api/middleware"
	"github.com/junavolabs/junavo-backend/api/responses"
	cartsvc "github.com/junavolabs/junavo-backend/internal/cart"
	"github.com/junavolabs/junavo-backend/internal/pricing"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

// CartQuote prices the session's cart, optionally applying a coupon code
// from the query string.
func CartQuote(store cartsvc.Store, engine pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		current := store.Get(r.Context(), sessionID)

		currency, err := enums.ParseCurrency(strings.TrimSpace(r.URL.Query().Get("currency")))
		if err != nil {
			currency = enums.CurrencyUSD
		}
		couponCode := strings.TrimSpace(r.URL.Query().Get("coupon"))

		quote, err := engine.Quote(r.Context(), current.Items, currency, couponCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
