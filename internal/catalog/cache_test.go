package catalog

import (
	"testing"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
)

func product(name string, active bool) models.Product {
	return models.Product{
		ID:     uuid.New(),
		SKU:    "SKU-" + name,
		Name:   name,
		Active: active,
	}
}

func TestApplyInsertPrependsActiveOnly(t *testing.T) {
	t.Parallel()
	cache := NewProductCache()
	existing := product("existing", true)
	cache.Replace([]models.Product{existing})

	inserted := product("fresh", true)
	cache.Apply(ProductChange{Type: ChangeInserted, Product: inserted})

	items := cache.List(ProductFilter{})
	if len(items) != 2 || items[0].ID != inserted.ID {
		t.Fatalf("expected inserted product prepended")
	}

	cache.Apply(ProductChange{Type: ChangeInserted, Product: product("hidden", false)})
	if cache.Len() != 2 {
		t.Fatalf("expected inactive insert ignored, got %d", cache.Len())
	}
}

func TestApplyUpdateReplacesInPlace(t *testing.T) {
	t.Parallel()
	cache := NewProductCache()
	first := product("first", true)
	second := product("second", true)
	cache.Replace([]models.Product{first, second})

	updated := second
	updated.Name = "renamed"
	cache.Apply(ProductChange{Type: ChangeUpdated, Product: updated})

	items := cache.List(ProductFilter{})
	if len(items) != 2 {
		t.Fatalf("expected two products, got %d", len(items))
	}
	if items[1].Name != "renamed" {
		t.Fatalf("expected update applied in place, got %q at position 1", items[1].Name)
	}
}

func TestApplyUpdateRemovesDeactivatedRow(t *testing.T) {
	t.Parallel()
	cache := NewProductCache()
	p := product("fading", true)
	cache.Replace([]models.Product{p})

	p.Active = false
	cache.Apply(ProductChange{Type: ChangeUpdated, Product: p})

	if cache.Len() != 0 {
		t.Fatalf("expected deactivated product removed")
	}
}

func TestApplyUpdatePrependsUnknownActiveRow(t *testing.T) {
	t.Parallel()
	cache := NewProductCache()
	cache.Replace([]models.Product{product("existing", true)})

	unknown := product("unknown", true)
	cache.Apply(ProductChange{Type: ChangeUpdated, Product: unknown})

	items := cache.List(ProductFilter{})
	if len(items) != 2 || items[0].ID != unknown.ID {
		t.Fatalf("expected unseen active update prepended")
	}
}

func TestApplyDeleteRemovesRow(t *testing.T) {
	t.Parallel()
	cache := NewProductCache()
	p := product("doomed", true)
	cache.Replace([]models.Product{p, product("survivor", true)})

	cache.Apply(ProductChange{Type: ChangeDeleted, Product: p})

	items := cache.List(ProductFilter{})
	if len(items) != 1 || items[0].Name != "survivor" {
		t.Fatalf("expected only survivor left")
	}
}

func TestListFilters(t *testing.T) {
	t.Parallel()
	cache := NewProductCache()
	categoryID := uuid.New()
	inCategory := product("widget", true)
	inCategory.CategoryID = &categoryID
	featured := product("star", true)
	featured.Featured = true
	tagged := product("plain", true)
	tagged.Tags = []string{"seasonal"}
	cache.Replace([]models.Product{inCategory, featured, tagged})

	if got := cache.List(ProductFilter{CategoryID: &categoryID}); len(got) != 1 || got[0].ID != inCategory.ID {
		t.Fatalf("category filter failed")
	}
	if got := cache.List(ProductFilter{Featured: true}); len(got) != 1 || got[0].ID != featured.ID {
		t.Fatalf("featured filter failed")
	}
	if got := cache.List(ProductFilter{Search: "SEASONAL"}); len(got) != 1 || got[0].ID != tagged.ID {
		t.Fatalf("search filter failed")
	}
	if got := cache.List(ProductFilter{Limit: 2}); len(got) != 2 {
		t.Fatalf("limit filter failed")
	}
}

func TestGetBySlug(t *testing.T) {
	t.Parallel()
	cache := NewProductCache()
	slug := "widget-xl"
	p := product("widget", true)
	p.Slug = &slug
	cache.Replace([]models.Product{p})

	found, ok := cache.GetBySlug("widget-xl")
	if !ok || found.ID != p.ID {
		t.Fatalf("expected slug lookup to succeed")
	}
	if _, ok := cache.GetBySlug("missing"); ok {
		t.Fatalf("expected missing slug to report absence")
	}
}

func TestCategoryCacheSortsAndPatches(t *testing.T) {
	t.Parallel()
	cache := NewCategoryCache()
	one, two := 1, 2
	first := models.Category{ID: uuid.New(), Name: "First", Slug: "first", SortOrder: &one, Active: true}
	second := models.Category{ID: uuid.New(), Name: "Second", Slug: "second", SortOrder: &two, Active: true}
	cache.Replace([]models.Category{second, first})

	items := cache.List()
	if len(items) != 2 || items[0].Slug != "first" {
		t.Fatalf("expected categories sorted by sort_order")
	}

	zero := 0
	third := models.Category{ID: uuid.New(), Name: "Third", Slug: "third", SortOrder: &zero, Active: true}
	cache.Apply(CategoryChange{Type: ChangeInserted, Category: third})
	if got := cache.List(); got[0].Slug != "third" {
		t.Fatalf("expected inserted category sorted to front")
	}

	first.Active = false
	cache.Apply(CategoryChange{Type: ChangeUpdated, Category: first})
	if _, ok := cache.GetBySlug("first"); ok {
		t.Fatalf("expected deactivated category removed")
	}

	cache.Apply(CategoryChange{Type: ChangeDeleted, Category: second})
	if len(cache.List()) != 1 {
		t.Fatalf("expected single category after delete")
	}
}
