package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/api/middleware"
	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	checkoutsvc "github.com/junavolabs/junavo-backend/internal/checkout"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type checkoutRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	Address         string `json:"address" validate:"required"`
	City            string `json:"city" validate:"required"`
	Zip             string `json:"zip" validate:"required"`
	ShippingName    string `json:"shipping_name"`
	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingZip     string `json:"shipping_zip"`
	PaymentMethod   string `json:"payment_method" validate:"required"`
	Currency        string `json:"currency"`
	CouponCode      string `json:"coupon_code"`
}

// CheckoutSubmit converts the session's cart into an order.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		currency, err := enums.ParseCurrency(payload.Currency)
		if err != nil {
			currency = enums.CurrencyUSD
		}

		var userID *uuid.UUID
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			if parsed, err := uuid.Parse(raw); err == nil {
				userID = &parsed
			}
		}

		order, err := svc.Submit(r.Context(), checkoutsvc.SubmitInput{
			SessionID: middleware.SessionIDFromContext(r.Context()),
			UserID:    userID,
			Billing: checkoutsvc.BillingForm{
				Name:            payload.Name,
				Email:           payload.Email,
				Phone:           payload.Phone,
				Address:         payload.Address,
				City:            payload.City,
				Zip:             payload.Zip,
				ShippingName:    payload.ShippingName,
				ShippingAddress: payload.ShippingAddress,
				ShippingCity:    payload.ShippingCity,
				ShippingZip:     payload.ShippingZip,
			},
			PaymentMethod: payload.PaymentMethod,
			Currency:      currency,
			CouponCode:    payload.CouponCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
