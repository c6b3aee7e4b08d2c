package blog

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

func newTestService(t *testing.T) (Service, *Repository, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	blogPosts := `
CREATE TABLE IF NOT EXISTS blog_posts (
  id TEXT PRIMARY KEY,
  author_id TEXT NOT NULL,
  title TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  excerpt TEXT,
  content TEXT,
  featured_image TEXT,
  status TEXT NOT NULL DEFAULT 'draft',
  published_at DATETIME,
  scheduled_at DATETIME,
  view_count INTEGER NOT NULL DEFAULT 0,
  seo_title TEXT,
  seo_description TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(blogPosts).Error)
	require.NoError(t, conn.Exec("DELETE FROM blog_posts").Error)

	repo := NewRepository(conn)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(ServiceParams{Repo: repo, Logger: logg})
	require.NoError(t, err)
	return svc, repo, conn
}

func seedPost(t *testing.T, conn *gorm.DB, slug string, status enums.BlogStatus, publishedAt *time.Time) *models.BlogPost {
	t.Helper()
	post := &models.BlogPost{
		ID:          uuid.New(),
		AuthorID:    uuid.New(),
		Title:       strings.ReplaceAll(slug, "-", " "),
		Slug:        slug,
		Status:      status,
		PublishedAt: publishedAt,
	}
	require.NoError(t, conn.Create(post).Error)
	return post
}

func TestCreateSlugsAndStampsPublishedAt(t *testing.T) {
	svc, _, _ := newTestService(t)

	post, err := svc.Create(context.Background(), uuid.New(), PostInput{
		Title:  "  Summer Sale: What's New!  ",
		Status: enums.BlogStatusPublished,
	})
	require.NoError(t, err)
	require.Equal(t, "Summer Sale: What's New!", post.Title)
	require.Equal(t, "summer-sale-what-s-new", post.Slug)
	require.NotNil(t, post.PublishedAt)
}

func TestCreateDraftHasNoPublishedAt(t *testing.T) {
	svc, _, _ := newTestService(t)

	post, err := svc.Create(context.Background(), uuid.New(), PostInput{
		Title:  "Draft Ideas",
		Status: enums.BlogStatusDraft,
	})
	require.NoError(t, err)
	require.Nil(t, post.PublishedAt)
}

func TestCreateSuffixesSlugOnCollision(t *testing.T) {
	svc, _, conn := newTestService(t)
	now := time.Now().UTC()
	seedPost(t, conn, "gift-guide", enums.BlogStatusPublished, &now)

	post, err := svc.Create(context.Background(), uuid.New(), PostInput{
		Title:  "Gift Guide",
		Status: enums.BlogStatusDraft,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(post.Slug, "gift-guide-"))
	require.NotEqual(t, "gift-guide", post.Slug)
}

func TestCreateScheduledRequiresTime(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), uuid.New(), PostInput{
		Title:  "Holiday Preview",
		Status: enums.BlogStatusScheduled,
	})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())

	when := time.Now().UTC().Add(24 * time.Hour)
	post, err := svc.Create(context.Background(), uuid.New(), PostInput{
		Title:       "Holiday Preview",
		Status:      enums.BlogStatusScheduled,
		ScheduledAt: &when,
	})
	require.NoError(t, err)
	require.Nil(t, post.PublishedAt)
	require.NotNil(t, post.ScheduledAt)
}

func TestGetPublishedBySlugCountsView(t *testing.T) {
	svc, _, conn := newTestService(t)
	now := time.Now().UTC()
	seeded := seedPost(t, conn, "care-tips", enums.BlogStatusPublished, &now)

	post, err := svc.GetPublishedBySlug(context.Background(), "care-tips")
	require.NoError(t, err)
	require.Equal(t, 1, post.ViewCount)

	var stored models.BlogPost
	require.NoError(t, conn.First(&stored, "id = ?", seeded.ID).Error)
	require.Equal(t, 1, stored.ViewCount)
}

func TestGetPublishedBySlugHidesDrafts(t *testing.T) {
	svc, _, conn := newTestService(t)
	seedPost(t, conn, "unfinished", enums.BlogStatusDraft, nil)

	_, err := svc.GetPublishedBySlug(context.Background(), "unfinished")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestUpdateRegeneratesSlugOnTitleChange(t *testing.T) {
	svc, _, conn := newTestService(t)
	now := time.Now().UTC()
	seeded := seedPost(t, conn, "old-name", enums.BlogStatusPublished, &now)

	updated, err := svc.Update(context.Background(), seeded.ID, PostInput{
		Title:  "New Name",
		Status: enums.BlogStatusPublished,
	})
	require.NoError(t, err)
	require.Equal(t, "new-name", updated.Slug)
	require.NotNil(t, updated.PublishedAt)

	unpublished, err := svc.Update(context.Background(), seeded.ID, PostInput{
		Title:  "New Name",
		Status: enums.BlogStatusDraft,
	})
	require.NoError(t, err)
	require.Equal(t, "new-name", unpublished.Slug)
	require.Nil(t, unpublished.PublishedAt)
}
