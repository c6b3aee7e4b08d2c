package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	siteSettings := `
CREATE TABLE IF NOT EXISTS site_settings (
  id TEXT PRIMARY KEY,
  category TEXT NOT NULL DEFAULT 'general',
  key TEXT NOT NULL UNIQUE,
  value TEXT NOT NULL,
  updated_by TEXT,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(siteSettings).Error)
	require.NoError(t, conn.Exec("DELETE FROM site_settings").Error)

	svc, err := NewService(ServiceParams{Repo: NewRepository(conn)})
	require.NoError(t, err)
	return svc
}

func TestPutDefaultsCategoryAndRoundTrips(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	saved, err := svc.Put(ctx, PutInput{
		Key:   "homepage_banner",
		Value: json.RawMessage(`{"enabled":true,"text":"Free shipping over $50"}`),
	})
	require.NoError(t, err)
	require.Equal(t, "general", saved.Category)

	found, err := svc.Get(ctx, "homepage_banner")
	require.NoError(t, err)
	require.JSONEq(t, `{"enabled":true,"text":"Free shipping over $50"}`, string(found.Value))
}

func TestPutOverwritesExistingKey(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Put(ctx, PutInput{Key: "currency", Category: "storefront", Value: json.RawMessage(`"USD"`)})
	require.NoError(t, err)
	_, err = svc.Put(ctx, PutInput{Key: "currency", Category: "storefront", Value: json.RawMessage(`"EUR"`)})
	require.NoError(t, err)

	found, err := svc.Get(ctx, "currency")
	require.NoError(t, err)
	require.JSONEq(t, `"EUR"`, string(found.Value))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestPutRejectsInvalidJSON(t *testing.T) {
	svc := newTestService(t)

	for _, value := range []json.RawMessage{nil, json.RawMessage(""), json.RawMessage(`{"broken":`)} {
		_, err := svc.Put(context.Background(), PutInput{Key: "bad", Value: value})
		coded := pkgerrors.As(err)
		require.NotNil(t, coded)
		require.Equal(t, pkgerrors.CodeValidation, coded.Code())
	}
}

func TestGetMissingKey(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "nope")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}
