package controllers

import (
	"net/http"

	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	adminlogsvc "github.com/junavolabs/junavo-backend/internal/adminlog"
	brandssvc "github.com/junavolabs/junavo-backend/internal/brands"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type brandRequest struct {
	Name           string  `json:"name" validate:"required"`
	Description    *string `json:"description"`
	Logo           *string `json:"logo"`
	Active         bool    `json:"active"`
	SEOTitle       *string `json:"seo_title"`
	SEODescription *string `json:"seo_description"`
}

func (b brandRequest) toInput() brandssvc.BrandInput {
	return brandssvc.BrandInput{
		Name:           b.Name,
		Description:    b.Description,
		Logo:           b.Logo,
		Active:         b.Active,
		SEOTitle:       b.SEOTitle,
		SEODescription: b.SEODescription,
	}
}

// AdminBrandList serves every brand for the back office.
func AdminBrandList(svc brandssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

// AdminBrandCreate inserts a brand.
func AdminBrandCreate(svc brandssvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload brandRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "brand.create", "brand", &brand.ID)
		responses.WriteSuccessStatus(w, http.StatusCreated, brand)
	}
}

// AdminBrandUpdate saves a brand.
func AdminBrandUpdate(svc brandssvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload brandRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "brand.update", "brand", &brand.ID)
		responses.WriteSuccess(w, brand)
	}
}

// AdminBrandDelete removes a brand.
func AdminBrandDelete(svc brandssvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "brandId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "brand.delete", "brand", &id)
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
