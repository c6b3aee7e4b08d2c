package subscribers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	subscribers := `
CREATE TABLE IF NOT EXISTS subscribers (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(subscribers).Error)
	require.NoError(t, conn.Exec("DELETE FROM subscribers").Error)

	svc, err := NewService(ServiceParams{Repo: NewRepository(conn)})
	require.NoError(t, err)
	return svc, conn
}

func TestSubscribeNormalizesEmail(t *testing.T) {
	svc, conn := newTestService(t)

	subscriber, err := svc.Subscribe(context.Background(), "  Reader@Example.COM ")
	require.NoError(t, err)
	require.Equal(t, "reader@example.com", subscriber.Email)

	var count int64
	require.NoError(t, conn.Model(&models.Subscriber{}).Where("email = ?", "reader@example.com").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	svc, _ := newTestService(t)

	for _, email := range []string{"", "   ", "not-an-email", "missing@tld@twice"} {
		_, err := svc.Subscribe(context.Background(), email)
		coded := pkgerrors.As(err)
		require.NotNil(t, coded, "email %q", email)
		require.Equal(t, pkgerrors.CodeValidation, coded.Code())
	}
}

func TestDeleteSubscriber(t *testing.T) {
	svc, conn := newTestService(t)

	subscriber := &models.Subscriber{ID: uuid.New(), Email: "gone@example.com"}
	require.NoError(t, conn.Create(subscriber).Error)

	require.NoError(t, svc.Delete(context.Background(), subscriber.ID))

	err := svc.Delete(context.Background(), subscriber.ID)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}
