package prefs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
)

// Preferences holds the per-session locale selections.
type Preferences struct {
	Language enums.Language `json:"language"`
	Currency enums.Currency `json:"currency"`
	Theme    string         `json:"theme,omitempty"`
}

// Defaults returns the preferences used when a session has none stored.
func Defaults() Preferences {
	return Preferences{
		Language: enums.LanguageEnglish,
		Currency: enums.CurrencyUSD,
	}
}

type sessionCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	PrefsKey(sessionID string) string
}

// StoreParams groups dependencies for the preference store.
type StoreParams struct {
	Cache sessionCache
	TTL   time.Duration
}

// Store exposes the session preference operations.
type Store interface {
	Get(ctx context.Context, sessionID string) Preferences
	Set(ctx context.Context, sessionID string, prefs Preferences) (Preferences, error)
}

type store struct {
	cache sessionCache
	ttl   time.Duration
}

// NewStore builds a preference store bound to the session cache.
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

// Get loads the session preferences, falling back to USD/en on any
// missing key, read error or corrupt document.
func (s *store) Get(ctx context.Context, sessionID string) Preferences {
	raw, err := s.cache.Get(ctx, s.cache.PrefsKey(sessionID))
	if err != nil || raw == "" {
		return Defaults()
	}
	var p Preferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Defaults()
	}
	if !p.Language.IsValid() {
		p.Language = enums.LanguageEnglish
	}
	if !p.Currency.IsValid() {
		p.Currency = enums.CurrencyUSD
	}
	return p
}

// Set validates and persists the session preferences.
func (s *store) Set(ctx context.Context, sessionID string, prefs Preferences) (Preferences, error) {
	if !prefs.Language.IsValid() {
		return Preferences{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported language")
	}
	if !prefs.Currency.IsValid() {
		return Preferences{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported currency")
	}

	payload, err := json.Marshal(prefs)
	if err != nil {
		return Preferences{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode preferences")
	}
	if err := s.cache.Set(ctx, s.cache.PrefsKey(sessionID), payload, s.ttl); err != nil {
		return Preferences{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist preferences")
	}
	return prefs, nil
}
