package blog

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

// PostInput carries the admin-editable post fields.
type PostInput struct {
	Title          string
	Excerpt        *string
	Content        *string
	FeaturedImage  *string
	Status         enums.BlogStatus
	ScheduledAt    *time.Time
	SEOTitle       *string
	SEODescription *string
}

// ServiceParams groups dependencies for the blog service.
type ServiceParams struct {
	Repo   *Repository
	Logger *logger.Logger
}

// Service exposes storefront reads and back-office management of posts.
type Service interface {
	ListPublished(ctx context.Context, limit int) ([]models.BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	ListAll(ctx context.Context) ([]models.BlogPost, error)
	Create(ctx context.Context, authorID uuid.UUID, input PostInput) (*models.BlogPost, error)
	Update(ctx context.Context, id uuid.UUID, input PostInput) (*models.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService builds a blog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "blog repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

// ListPublished returns the storefront post list.
func (s *service) ListPublished(ctx context.Context, limit int) ([]models.BlogPost, error) {
	posts, err := s.repo.ListPublished(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list posts")
	}
	return posts, nil
}

// GetPublishedBySlug loads a published post and counts the view.
func (s *service) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.repo.FindPublishedBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "post not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load post")
	}
	if err := s.repo.IncrementViewCount(ctx, post.ID); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "view count increment failed")
	} else {
		post.ViewCount++
	}
	return post, nil
}

// ListAll returns every post for the back office.
func (s *service) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	posts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list posts")
	}
	return posts, nil
}

// Create inserts a post authored by the acting admin.
func (s *service) Create(ctx context.Context, authorID uuid.UUID, input PostInput) (*models.BlogPost, error) {
	if authorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "author id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	post := applyInput(&models.BlogPost{ID: uuid.New(), AuthorID: authorID}, input)
	slug, err := s.uniqueSlug(ctx, input.Title, uuid.Nil)
	if err != nil {
		return nil, err
	}
	post.Slug = slug

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create post")
	}
	return post, nil
}

// Update saves the post, regenerating the slug when the title changed.
func (s *service) Update(ctx context.Context, id uuid.UUID, input PostInput) (*models.BlogPost, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "post not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load post")
	}

	titleChanged := existing.Title != strings.TrimSpace(input.Title)
	post := applyInput(existing, input)
	if titleChanged {
		slug, err := s.uniqueSlug(ctx, input.Title, id)
		if err != nil {
			return nil, err
		}
		post.Slug = slug
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update post")
	}
	return post, nil
}

// Delete removes the post.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "post id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete post")
	}
	return nil
}

func validateInput(input PostInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown blog status")
	}
	if input.Status == enums.BlogStatusScheduled && input.ScheduledAt == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "scheduled posts require a scheduled_at time")
	}
	return nil
}

func applyInput(post *models.BlogPost, input PostInput) *models.BlogPost {
	post.Title = strings.TrimSpace(input.Title)
	post.Excerpt = input.Excerpt
	post.Content = input.Content
	post.FeaturedImage = input.FeaturedImage
	post.Status = input.Status
	post.ScheduledAt = input.ScheduledAt
	post.SEOTitle = input.SEOTitle
	post.SEODescription = input.SEODescription
	if input.Status == enums.BlogStatusPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	if input.Status != enums.BlogStatusPublished {
		post.PublishedAt = nil
	}
	return post
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func (s *service) uniqueSlug(ctx context.Context, title string, excludeID uuid.UUID) (string, error) {
	slug := slugify(title)
	taken, err := s.repo.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check slug")
	}
	if taken {
		slug = slug + "-" + uuid.NewString()[:8]
	}
	return slug, nil
}
