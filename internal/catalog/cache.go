package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
)

// ProductFilter narrows the cached product listing.
type ProductFilter struct {
	CategoryID *uuid.UUID
	Featured   bool
	Search     string
	Limit      int
}

// ProductCache is the in-memory storefront product read model. It holds
// active products newest first and is patched by change-feed events.
type ProductCache struct {
	mu    sync.RWMutex
	items []models.Product
}

// NewProductCache returns an empty product cache.
func NewProductCache() *ProductCache {
	return &ProductCache{items: []models.Product{}}
}

// Replace swaps the full cache contents. Used for the initial seed.
func (c *ProductCache) Replace(products []models.Product) {
	copied := make([]models.Product, len(products))
	copy(copied, products)
	c.mu.Lock()
	c.items = copied
	c.mu.Unlock()
}

// List returns the cached products matching the filter, preserving order.
func (c *ProductCache) List(filter ProductFilter) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.Product, 0, len(c.items))
	for _, p := range c.items {
		if filter.CategoryID != nil {
			if p.CategoryID == nil || *p.CategoryID != *filter.CategoryID {
				continue
			}
		}
		if filter.Featured && !p.Featured {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out
}

// Get looks up a product by id.
func (c *ProductCache) Get(id uuid.UUID) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.items {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// GetBySlug looks up a product by its slug.
func (c *ProductCache) GetBySlug(slug string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.items {
		if p.Slug != nil && *p.Slug == slug {
			return p, true
		}
	}
	return models.Product{}, false
}

// Len returns the cached product count.
func (c *ProductCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Apply patches the cache with one change event. Inserts prepend only
// when the row is active; updates replace in place, remove a now-inactive
// row, or prepend a row the cache has not seen; deletes remove.
func (c *ProductCache) Apply(change ProductChange) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch change.Type {
	case ChangeInserted:
		if change.Product.Active {
			c.items = append([]models.Product{change.Product}, c.items...)
		}
	case ChangeUpdated:
		idx := c.indexOf(change.Product.ID)
		if !change.Product.Active {
			if idx >= 0 {
				c.items = append(c.items[:idx], c.items[idx+1:]...)
			}
			return
		}
		if idx >= 0 {
			c.items[idx] = change.Product
			return
		}
		c.items = append([]models.Product{change.Product}, c.items...)
	case ChangeDeleted:
		if idx := c.indexOf(change.Product.ID); idx >= 0 {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
		}
	}
}

func (c *ProductCache) indexOf(id uuid.UUID) int {
	for i, p := range c.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func matchesSearch(p models.Product, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(p.SKU), search) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// CategoryCache is the in-memory category read model, ordered by sort_order.
type CategoryCache struct {
	mu    sync.RWMutex
	items []models.Category
}

// NewCategoryCache returns an empty category cache.
func NewCategoryCache() *CategoryCache {
	return &CategoryCache{items: []models.Category{}}
}

// Replace swaps the full cache contents and re-sorts.
func (c *CategoryCache) Replace(categories []models.Category) {
	copied := make([]models.Category, len(categories))
	copy(copied, categories)
	sortCategories(copied)
	c.mu.Lock()
	c.items = copied
	c.mu.Unlock()
}

// List returns all cached categories.
func (c *CategoryCache) List() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Category, len(c.items))
	copy(out, c.items)
	return out
}

// GetBySlug looks up a category by slug.
func (c *CategoryCache) GetBySlug(slug string) (models.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cat := range c.items {
		if cat.Slug == slug {
			return cat, true
		}
	}
	return models.Category{}, false
}

// Apply patches the cache with one category change event.
func (c *CategoryCache) Apply(change CategoryChange) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i, cat := range c.items {
		if cat.ID == change.Category.ID {
			idx = i
			break
		}
	}

	switch change.Type {
	case ChangeInserted, ChangeUpdated:
		if !change.Category.Active {
			if idx >= 0 {
				c.items = append(c.items[:idx], c.items[idx+1:]...)
			}
			return
		}
		if idx >= 0 {
			c.items[idx] = change.Category
		} else {
			c.items = append(c.items, change.Category)
		}
		sortCategories(c.items)
	case ChangeDeleted:
		if idx >= 0 {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
		}
	}
}

func sortCategories(categories []models.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return sortOrderValue(categories[i]) < sortOrderValue(categories[j])
	})
}

func sortOrderValue(c models.Category) int {
	if c.SortOrder == nil {
		return 1 << 30
	}
	return *c.SortOrder
}
