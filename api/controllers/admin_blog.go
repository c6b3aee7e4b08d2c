package controllers

import (
	"net/http"
	"time"

	"github.com/junavolabs/junavo-backend/api/responses"
	"github.com/junavolabs/junavo-backend/api/validators"
	adminlogsvc "github.com/junavolabs/junavo-backend/internal/adminlog"
	blogsvc "github.com/junavolabs/junavo-backend/internal/blog"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type blogPostRequest struct {
	Title          string     `json:"title" validate:"required"`
	Excerpt        *string    `json:"excerpt"`
	Content        *string    `json:"content"`
	FeaturedImage  *string    `json:"featured_image"`
	Status         string     `json:"status" validate:"required"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
	SEOTitle       *string    `json:"seo_title"`
	SEODescription *string    `json:"seo_description"`
}

func (b blogPostRequest) toInput() blogsvc.PostInput {
	return blogsvc.PostInput{
		Title:          b.Title,
		Excerpt:        b.Excerpt,
		Content:        b.Content,
		FeaturedImage:  b.FeaturedImage,
		Status:         enums.BlogStatus(b.Status),
		ScheduledAt:    b.ScheduledAt,
		SEOTitle:       b.SEOTitle,
		SEODescription: b.SEODescription,
	}
}

// AdminBlogList serves every post for the back office.
func AdminBlogList(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, posts)
	}
}

// AdminBlogCreate inserts a post authored by the acting admin.
func AdminBlogCreate(svc blogsvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := contextUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload blogPostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		post, err := svc.Create(r.Context(), authorID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "blog.create", "blog_post", &post.ID)
		responses.WriteSuccessStatus(w, http.StatusCreated, post)
	}
}

// AdminBlogUpdate saves a post.
func AdminBlogUpdate(svc blogsvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "postId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload blogPostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		post, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "blog.update", "blog_post", &post.ID)
		responses.WriteSuccess(w, post)
	}
}

// AdminBlogDelete removes a post.
func AdminBlogDelete(svc blogsvc.Service, audit adminlogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "postId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recordAudit(r, audit, "blog.delete", "blog_post", &id)
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
