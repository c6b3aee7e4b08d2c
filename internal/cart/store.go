package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
)

// Line is one product entry in a session cart.
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart is the full session cart document persisted in redis.
type Cart struct {
	Items []Line `json:"items"`
}

// TotalItems sums the raw quantities across all lines.
func (c Cart) TotalItems() int {
	total := 0
	for _, line := range c.Items {
		total += line.Quantity
	}
	return total
}

type sessionCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// StoreParams groups dependencies for the cart store.
type StoreParams struct {
	Cache sessionCache
	TTL   time.Duration
}

// Store exposes the session cart operations.
type Store interface {
	Get(ctx context.Context, sessionID string) Cart
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type store struct {
	cache sessionCache
	ttl   time.Duration
}

// NewStore builds a cart store bound to the session cache.
func NewStore(params StoreParams) (Store, error) {
	if params.Cache == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session cache is required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &store{cache: params.Cache, ttl: ttl}, nil
}

// Get loads the session cart. Missing keys, read errors and corrupt
// documents all yield the empty cart.
func (s *store) Get(ctx context.Context, sessionID string) Cart {
	raw, err := s.cache.Get(ctx, s.cache.CartKey(sessionID))
	if err != nil || raw == "" {
		return Cart{Items: []Line{}}
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Cart{Items: []Line{}}
	}
	if c.Items == nil {
		c.Items = []Line{}
	}
	return c
}

// AddItem merges the product into the cart, incrementing the quantity
// when the product is already present.
func (s *store) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (Cart, error) {
	if productID == uuid.Nil {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity <= 0 {
		quantity = 1
	}

	c := s.Get(ctx, sessionID)
	merged := false
	for i, line := range c.Items {
		if line.ProductID == productID {
			c.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, Line{ProductID: productID, Quantity: quantity})
	}

	if err := s.write(ctx, sessionID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// UpdateQuantity sets the quantity for a line. Zero or negative removes it.
func (s *store) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (Cart, error) {
	if productID == uuid.Nil {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}

	c := s.Get(ctx, sessionID)
	for i, line := range c.Items {
		if line.ProductID == productID {
			c.Items[i].Quantity = quantity
			break
		}
	}

	if err := s.write(ctx, sessionID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// RemoveItem drops the line if present. Removing an absent product is a no-op.
func (s *store) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (Cart, error) {
	c := s.Get(ctx, sessionID)
	kept := c.Items[:0]
	for _, line := range c.Items {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	c.Items = kept

	if err := s.write(ctx, sessionID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Clear deletes the session cart document.
func (s *store) Clear(ctx context.Context, sessionID string) error {
	if err := s.cache.Del(ctx, s.cache.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *store) write(ctx context.Context, sessionID string, c Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.cache.Set(ctx, s.cache.CartKey(sessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}
