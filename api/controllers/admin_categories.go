package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	adminlogsvc "github.com/junavolabs/junavo-backend/internal/adminlog"
	categoriessvc "github.com/junavolabs/junavo-backend/internal/categories"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type categoryRequest struct {
	Name           string     `json:"name" validate:"required"`
	ParentID       *uuid.UUID `json:"parent_id"`
	Image          *string    `json:"image"`
	BannerImage    *string    `json:"banner_image"`
	SortOrder      *int       `json:"sort_order"`
	Active         bool       `json:"active"`
	SEOTitle       *string    `json:"seo_title"`
	SEODescription *string    `json:"seo_description"`
}

func (c categoryRequest) toInput() categoriessvc.CategoryInput {
	return categoriessvc.CategoryInput{
		Name:           c.Name,
		ParentID:       c.ParentID,
		Image:          c.Image,
		BannerImage:    c.BannerImage,
		SortOrder:      c.SortOrder,
		Active:         c.Active,
		SEOTitle:       c.SEOTitle,
		SEODescription: c.SEODescription,
	}
}

// AdminCategoryList serves every category for the back office.
func AdminCategoryList(svc categoriessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// AdminCategoryCreate inserts a category and feeds the catalog change stream.
func AdminCategoryCreate(svc categoriessvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload categoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Create(r.Context(), payload.toInput(), actorFromContext(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "category.create", "category", &category.ID)
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// AdminCategoryUpdate saves a category and feeds the catalog change stream.
func AdminCategoryUpdate(svc categoriessvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload categoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Update(r.Context(), id, payload.toInput(), actorFromContext(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "category.update", "category", &category.ID)
		responses.WriteSuccess(w, category)
	}
}

// AdminCategoryDelete removes a category and feeds the catalog change stream.
func AdminCategoryDelete(svc categoriessvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id, actorFromContext(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "category.delete", "category", &id)
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
