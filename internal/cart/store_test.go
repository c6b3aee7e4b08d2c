package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeCache struct {
	data    map[string]string
	getErr  error
	setErr  error
	delErr  error
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.data[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	if f.delErr != nil {
		return f.delErr
	}
	for _, key := range keys {
		delete(f.data, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

func (f *fakeCache) CartKey(sessionID string) string {
	return "cart:" + sessionID
}

func newTestStore(t *testing.T, cache *fakeCache) Store {
	t.Helper()
	store, err := NewStore(StoreParams{Cache: cache, TTL: time.Hour})
	if err != nil {
		t.Fatalf("failed to construct store: %v", err)
	}
	return store
}

func TestAddItemMergesExistingLine(t *testing.T) {
	t.Parallel()
	cache := newFakeCache()
	store := newTestStore(t, cache)
	productID := uuid.New()

	if _, err := store.AddItem(context.Background(), "sess", productID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	c, err := store.AddItem(context.Background(), "sess", productID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(c.Items) != 1 {
		t.Fatalf("expected single line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", c.Items[0].Quantity)
	}
	if c.TotalItems() != 5 {
		t.Fatalf("expected total items 5, got %d", c.TotalItems())
	}
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, newFakeCache())

	c, err := store.AddItem(context.Background(), "sess", uuid.New(), 0)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if c.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", c.Items[0].Quantity)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, newFakeCache())
	productID := uuid.New()

	if _, err := store.AddItem(context.Background(), "sess", productID, 4); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	c, err := store.UpdateQuantity(context.Background(), "sess", productID, 0)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(c.Items))
	}
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, newFakeCache())
	productID := uuid.New()

	if _, err := store.AddItem(context.Background(), "sess", productID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	c, err := store.UpdateQuantity(context.Background(), "sess", productID, -3)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(c.Items))
	}
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, newFakeCache())
	productID := uuid.New()

	if _, err := store.AddItem(context.Background(), "sess", productID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	c, err := store.RemoveItem(context.Background(), "sess", uuid.New())
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].ProductID != productID {
		t.Fatalf("expected original line preserved")
	}
}

func TestGetFailsOpenOnCorruptDocument(t *testing.T) {
	t.Parallel()
	cache := newFakeCache()
	cache.data["cart:sess"] = "{not json"
	store := newTestStore(t, cache)

	c := store.Get(context.Background(), "sess")
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart on corrupt document, got %d lines", len(c.Items))
	}
}

func TestGetFailsOpenOnReadError(t *testing.T) {
	t.Parallel()
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	store := newTestStore(t, cache)

	c := store.Get(context.Background(), "sess")
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart on read error, got %d lines", len(c.Items))
	}
}

func TestClearDeletesDocument(t *testing.T) {
	t.Parallel()
	cache := newFakeCache()
	store := newTestStore(t, cache)

	if _, err := store.AddItem(context.Background(), "sess", uuid.New(), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.Clear(context.Background(), "sess"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != "cart:sess" {
		t.Fatalf("expected cart key deleted, got %v", cache.deleted)
	}
}

func TestMutationsPreserveLineOrder(t *testing.T) {
	t.Parallel()
	store := newTestStore(t, newFakeCache())
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	for _, id := range []uuid.UUID{first, second, third} {
		if _, err := store.AddItem(context.Background(), "sess", id, 1); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	c, err := store.RemoveItem(context.Background(), "sess", second)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(c.Items) != 2 || c.Items[0].ProductID != first || c.Items[1].ProductID != third {
		t.Fatalf("expected insertion order preserved after removal")
	}
}
