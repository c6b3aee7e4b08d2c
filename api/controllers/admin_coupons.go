package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	adminlogsvc "github.com/junavolabs/junavo-backend/internal/adminlog"
	couponssvc "github.com/junavolabs/junavo-backend/internal/coupons"
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type couponRequest struct {
	Code                 string           `json:"code" validate:"required"`
	Discount             decimal.Decimal  `json:"discount" validate:"required"`
	DiscountType         string           `json:"discount_type" validate:"required"`
	MinPurchase          *decimal.Decimal `json:"min_purchase"`
	ApplicableCategories []string         `json:"applicable_categories"`
	UsageLimit           *int             `json:"usage_limit"`
	PerUserLimit         *int             `json:"per_user_limit"`
	ExpiresAt            *time.Time       `json:"expires_at"`
	Active               bool             `json:"active"`
}

func (c couponRequest) toModel() (*models.Coupon, error) {
	discountType, err := enums.ParseDiscountType(c.DiscountType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown discount type")
	}
	if c.Discount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount must not be negative")
	}
	return &models.Coupon{
		Code:                 strings.ToUpper(strings.TrimSpace(c.Code)),
		Discount:             c.Discount,
		DiscountType:         discountType,
		MinPurchase:          c.MinPurchase,
		ApplicableCategories: pq.StringArray(c.ApplicableCategories),
		UsageLimit:           c.UsageLimit,
		PerUserLimit:         c.PerUserLimit,
		ExpiresAt:            c.ExpiresAt,
		Active:               c.Active,
	}, nil
}

// AdminCouponList serves every coupon for the back office.
func AdminCouponList(repo *couponssvc.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coupons, err := repo.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons"))
			return
		}
		responses.WriteSuccess(w, coupons)
	}
}

// AdminCouponCreate inserts a coupon.
func AdminCouponCreate(repo *couponssvc.Repository, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload couponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := repo.Create(r.Context(), coupon); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon"))
			return
		}

		recordAudit(r, audit, "coupon.create", "coupon", &coupon.ID)
		responses.WriteSuccessStatus(w, http.StatusCreated, coupon)
	}
}

// AdminCouponUpdate saves a coupon.
func AdminCouponUpdate(repo *couponssvc.Repository, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "couponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		existing, err := repo.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "coupon not found"))
			return
		}

		var payload couponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated.ID = existing.ID
		updated.UsageCount = existing.UsageCount
		updated.CreatedAt = existing.CreatedAt

		if err := repo.Update(r.Context(), updated); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update coupon"))
			return
		}

		recordAudit(r, audit, "coupon.update", "coupon", &updated.ID)
		responses.WriteSuccess(w, updated)
	}
}

// AdminCouponDelete removes a coupon.
func AdminCouponDelete(repo *couponssvc.Repository, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "couponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := repo.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon"))
			return
		}

		recordAudit(r, audit, "coupon.delete", "coupon", &id)
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
