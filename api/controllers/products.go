package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	"github.com/junavolabs/junavo-backend/internal/catalog"
	"github.com/junavolabs/junavo-backend/internal/pricing"
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type productView struct {
	models.Product
	DisplayPrice string `json:"display_price"`
}

func newProductView(product models.Product, currency enums.Currency) productView {
	return productView{
		Product:      product,
		DisplayPrice: pricing.FormatProductPrice(product, currency),
	}
}

func requestCurrency(r *http.Request) enums.Currency {
	currency, err := enums.ParseCurrency(strings.TrimSpace(r.URL.Query().Get("currency")))
	if err != nil {
		return enums.CurrencyUSD
	}
	return currency
}

// ProductList serves the storefront listing from the in-memory read model.
func ProductList(cache *catalog.ProductCache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := catalog.ProductFilter{
			Featured: r.URL.Query().Get("featured") == "true",
			Search:   validators.SanitizeString(r.URL.Query().Get("q"), 120),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("category_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid category id"))
				return
			}
			filter.CategoryID = &id
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.Limit = limit

		currency := requestCurrency(r)
		products := cache.List(filter)
		views := make([]productView, 0, len(products))
		for _, product := range products {
			views = append(views, newProductView(product, currency))
		}
		responses.WriteSuccess(w, views)
	}
}

// ProductDetail serves a single product by slug from the read model.
func ProductDetail(cache *catalog.ProductCache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		product, ok := cache.GetBySlug(slug)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, newProductView(product, requestCurrency(r)))
	}
}

// CategoryList serves the storefront navigation categories.
func CategoryList(cache *catalog.CategoryCache) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, cache.List())
	}
}

// CategoryDetail serves a single category by slug.
func CategoryDetail(cache *catalog.CategoryCache, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := cache.GetBySlug(chi.URLParam(r, "slug"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "category not found"))
			return
		}
		responses.WriteSuccess(w, category)
	}
}
