package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	coupons := `
CREATE TABLE IF NOT EXISTS coupons (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  discount TEXT NOT NULL,
  discount_type TEXT NOT NULL DEFAULT 'fixed',
  min_purchase TEXT,
  applicable_categories TEXT,
  usage_limit INTEGER,
  usage_count INTEGER NOT NULL DEFAULT 0,
  per_user_limit INTEGER,
  expires_at DATETIME,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(coupons).Error)
	require.NoError(t, conn.Exec("DELETE FROM coupons").Error)
	return conn
}

func seedCoupon(t *testing.T, repo *Repository, code string, active bool, expiresAt *time.Time) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		ID:           uuid.New(),
		Code:         code,
		Discount:     decimal.RequireFromString("10.00"),
		DiscountType: enums.DiscountTypeFixed,
		Active:       true,
		ExpiresAt:    expiresAt,
	}
	require.NoError(t, repo.Create(context.Background(), coupon))
	if !active {
		coupon.Active = false
		require.NoError(t, repo.Update(context.Background(), coupon))
	}
	return coupon
}

func TestFindActiveByCodeMatchesCaseInsensitively(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	seeded := seedCoupon(t, repo, "SAVE10", true, nil)

	found, err := repo.FindActiveByCode(ctx, "save10")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, seeded.ID, found.ID)
}

func TestFindActiveByCodeSkipsInactiveAndExpired(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	seedCoupon(t, repo, "DISABLED", false, nil)
	expired := time.Now().UTC().Add(-time.Hour)
	seedCoupon(t, repo, "EXPIRED", true, &expired)

	found, err := repo.FindActiveByCode(ctx, "DISABLED")
	require.NoError(t, err)
	require.Nil(t, found)

	found, err = repo.FindActiveByCode(ctx, "EXPIRED")
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestFindActiveByCodeBlankAndUnknown(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	found, err := repo.FindActiveByCode(ctx, "   ")
	require.NoError(t, err)
	require.Nil(t, found)

	found, err = repo.FindActiveByCode(ctx, "NOPE")
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestIncrementUsage(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	coupon := seedCoupon(t, repo, "COUNTME", true, nil)
	require.NoError(t, repo.IncrementUsage(ctx, coupon.ID))
	require.NoError(t, repo.IncrementUsage(ctx, coupon.ID))

	found, err := repo.FindByID(ctx, coupon.ID)
	require.NoError(t, err)
	require.Equal(t, 2, found.UsageCount)
}

func TestUpdateAndDelete(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	coupon := seedCoupon(t, repo, "EDITME", true, nil)
	coupon.Discount = decimal.RequireFromString("25.00")
	coupon.Active = false
	require.NoError(t, repo.Update(ctx, coupon))

	found, err := repo.FindByID(ctx, coupon.ID)
	require.NoError(t, err)
	require.True(t, found.Discount.Equal(decimal.RequireFromString("25.00")))
	require.False(t, found.Active)

	require.NoError(t, repo.Delete(ctx, coupon.ID))
	_, err = repo.FindByID(ctx, coupon.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
