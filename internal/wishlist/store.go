package wishlist

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
)

// Wishlist is the session wishlist document persisted in redis.
// ProductIDs keeps insertion order; membership is unique.
type Wishlist struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// Count returns the wishlist cardinality.
func (w Wishlist) Count() int {
	return len(w.ProductIDs)
}

// Has reports whether the product is in the wishlist.
func (w Wishlist) Has(productID uuid.UUID) bool {
	for _, id := range w.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

type sessionCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	WishlistKey(sessionID string) string
}

// StoreParams groups dependencies for the wishlist store.
type StoreParams struct {
	Cache sessionCache
	TTL   time.Duration
}

// Store exposes the session wishlist operations.
type Store interface {
	Get(ctx context.Context, sessionID string) Wishlist
	Toggle(ctx context.Context, sessionID string, productID uuid.UUID) (Wishlist, bool, error)
	Clear(ctx context.Context, sessionID string) error
}

type store struct {
	cache sessionCache
	ttl   time.Duration
}

// NewStore builds a wishlist store bound to the session cache.
func NewStore(params StoreParams) (Store, error) {
	if params.Cache == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session cache is required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = 90 * 24 * time.Hour
	}
	return &store{cache: params.Cache, ttl: ttl}, nil
}

// Get loads the session wishlist. Missing keys, read errors and corrupt
// documents all yield the empty wishlist.
func (s *store) Get(ctx context.Context, sessionID string) Wishlist {
	raw, err := s.cache.Get(ctx, s.cache.WishlistKey(sessionID))
	if err != nil || raw == "" {
		return Wishlist{ProductIDs: []uuid.UUID{}}
	}
	var w Wishlist
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return Wishlist{ProductIDs: []uuid.UUID{}}
	}
	if w.ProductIDs == nil {
		w.ProductIDs = []uuid.UUID{}
	}
	return w
}

// Toggle flips membership for the product and reports whether it was added.
func (s *store) Toggle(ctx context.Context, sessionID string, productID uuid.UUID) (Wishlist, bool, error) {
	if productID == uuid.Nil {
		return Wishlist{}, false, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	w := s.Get(ctx, sessionID)
	added := true
	if w.Has(productID) {
		kept := w.ProductIDs[:0]
		for _, id := range w.ProductIDs {
			if id != productID {
				kept = append(kept, id)
			}
		}
		w.ProductIDs = kept
		added = false
	} else {
		w.ProductIDs = append(w.ProductIDs, productID)
	}

	payload, err := json.Marshal(w)
	if err != nil {
		return Wishlist{}, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode wishlist")
	}
	if err := s.cache.Set(ctx, s.cache.WishlistKey(sessionID), payload, s.ttl); err != nil {
		return Wishlist{}, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist wishlist")
	}
	return w, added, nil
}

// Clear deletes the session wishlist document.
func (s *store) Clear(ctx context.Context, sessionID string) error {
	if err := s.cache.Del(ctx, s.cache.WishlistKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear wishlist")
	}
	return nil
}
