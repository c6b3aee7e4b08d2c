package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/junavolabs/junavo-backend/api/middleware"
	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	adminlogsvc "github.com/junavolabs/junavo-backend/internal/adminlog"
	productssvc "github.com/junavolabs/junavo-backend/internal/products"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
	"github.com/junavolabs/junavo-backend/pkg/outbox"
)

type productRequest struct {
	SKU              string           `json:"sku" validate:"required"`
	Name             string           `json:"name" validate:"required"`
	ShortDescription *string          `json:"short_description"`
	LongDescription  *string          `json:"long_description"`
	CategoryID       *uuid.UUID       `json:"category_id"`
	BrandID          *uuid.UUID       `json:"brand_id"`
	Price            decimal.Decimal  `json:"price" validate:"required"`
	PriceEUR         *decimal.Decimal `json:"price_eur"`
	ComparePrice     *decimal.Decimal `json:"compare_price"`
	Cost             *decimal.Decimal `json:"cost"`
	Stock            int              `json:"stock"`
	MinStockAlert    *int             `json:"min_stock_alert"`
	Image            *string          `json:"image"`
	Images           []string         `json:"images"`
	Tags             []string         `json:"tags"`
	Featured         bool             `json:"featured"`
	Active           bool             `json:"active"`
	SEOTitle         *string          `json:"seo_title"`
	SEODescription   *string          `json:"seo_description"`
	SEOKeywords      *string          `json:"seo_keywords"`
}

type stockAdjustRequest struct {
	NewStock   int     `json:"new_stock"`
	ChangeType string  `json:"change_type" validate:"required"`
	Reason     *string `json:"reason"`
}

func (p productRequest) toInput() productssvc.ProductInput {
	return productssvc.ProductInput{
		SKU:              p.SKU,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		CategoryID:       p.CategoryID,
		BrandID:          p.BrandID,
		Price:            p.Price,
		PriceEUR:         p.PriceEUR,
		ComparePrice:     p.ComparePrice,
		Cost:             p.Cost,
		Stock:            p.Stock,
		MinStockAlert:    p.MinStockAlert,
		Image:            p.Image,
		Images:           p.Images,
		Tags:             p.Tags,
		Featured:         p.Featured,
		Active:           p.Active,
		SEOTitle:         p.SEOTitle,
		SEODescription:   p.SEODescription,
		SEOKeywords:      p.SEOKeywords,
	}
}

func actorFromContext(r *http.Request) *outbox.ActorRef {
	userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return nil
	}
	return &outbox.ActorRef{UserID: userID, Role: middleware.RoleFromContext(r.Context())}
}

// AdminProductList serves every product for the back office.
func AdminProductList(svc productssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// AdminProductCreate inserts a product and feeds the catalog change stream.
func AdminProductCreate(svc productssvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := actorFromContext(r)
		product, err := svc.Create(r.Context(), payload.toInput(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "product.create", "product", &product.ID)
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductUpdate saves a product and feeds the catalog change stream.
func AdminProductUpdate(svc productssvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, payload.toInput(), actorFromContext(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "product.update", "product", &product.ID)
		responses.WriteSuccess(w, product)
	}
}

// AdminProductDelete removes a product and feeds the catalog change stream.
func AdminProductDelete(svc productssvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id, actorFromContext(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "product.delete", "product", &id)
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminStockAdjust applies a manual stock change with history.
func AdminStockAdjust(svc productssvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload stockAdjustRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		changeType, err := enums.ParseStockChangeType(payload.ChangeType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown stock change type"))
			return
		}

		actor := actorFromContext(r)
		var adminID *uuid.UUID
		if actor != nil {
			adminID = &actor.UserID
		}

		product, err := svc.AdjustStock(r.Context(), productssvc.StockAdjustment{
			ProductID:  id,
			AdminID:    adminID,
			NewStock:   payload.NewStock,
			ChangeType: changeType,
			Reason:     payload.Reason,
		}, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "product.stock_adjust", "product", &id)
		responses.WriteSuccess(w, product)
	}
}

// AdminStockHistory lists the stock change log for a product.
func AdminStockHistory(svc productssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		history, err := svc.StockHistory(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}

// AdminConvertPrice converts between USD and EUR at the fixed admin rate.
func AdminConvertPrice(svc productssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a decimal number"))
			return
		}

		var converted decimal.Decimal
		switch r.URL.Query().Get("to") {
		case "eur", "EUR":
			converted = svc.EURFromUSD(amount)
		case "usd", "USD":
			converted = svc.USDFromEUR(amount)
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "target currency must be usd or eur"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"amount": converted.StringFixed(2)})
	}
}

func recordAudit(r *http.Request, audit adminlogsvc.Service, action, entityType string, entityID *uuid.UUID) {
	if audit == nil {
		return
	}
	adminID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return
	}
	ip := r.RemoteAddr
	entity := entityType
	audit.Record(r.Context(), adminlogsvc.Entry{
		AdminID:    adminID,
		Action:     action,
		EntityType: &entity,
		EntityID:   entityID,
		IPAddress:  &ip,
	})
}
