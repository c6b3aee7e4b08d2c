package orders

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

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT,
  billing_name TEXT,
  billing_email TEXT,
  billing_phone TEXT,
  billing_address TEXT,
  billing_city TEXT,
  billing_zip TEXT,
  shipping_name TEXT,
  shipping_address TEXT,
  shipping_city TEXT,
  shipping_zip TEXT,
  payment_method TEXT,
  subtotal TEXT NOT NULL DEFAULT '0',
  discount TEXT NOT NULL DEFAULT '0',
  shipping TEXT NOT NULL DEFAULT '0',
  total TEXT NOT NULL DEFAULT '0',
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  price TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(orders).Error)
	require.NoError(t, conn.Exec(orderItems).Error)
	require.NoError(t, conn.Exec("DELETE FROM order_items").Error)
	require.NoError(t, conn.Exec("DELETE FROM orders").Error)
	return conn
}

func seedOrder(t *testing.T, repo *Repository, userID *uuid.UUID, status enums.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Subtotal:  decimal.RequireFromString("20.00"),
		Shipping:  decimal.RequireFromString("5.99"),
		Total:     decimal.RequireFromString("25.99"),
		Status:    status,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.CreateOrder(context.Background(), order))
	return order
}

func TestCreateOrderWithItemsAndFindDetail(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	order := seedOrder(t, repo, nil, enums.OrderStatusPending, time.Now().UTC())
	items := []models.OrderItem{
		{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductName: "Cast Iron Skillet",
			Quantity:    1,
			Price:       decimal.RequireFromString("20.00"),
		},
	}
	require.NoError(t, repo.CreateOrderItems(ctx, items))

	found, err := repo.FindDetail(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	require.Equal(t, "Cast Iron Skillet", found.Items[0].ProductName)
	require.True(t, found.Total.Equal(decimal.RequireFromString("25.99")))
}

func TestListByUserOrdersNewestFirst(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	older := seedOrder(t, repo, &userID, enums.OrderStatusDelivered, time.Now().UTC().Add(-2*time.Hour))
	newer := seedOrder(t, repo, &userID, enums.OrderStatusPending, time.Now().UTC())
	seedOrder(t, repo, nil, enums.OrderStatusPending, time.Now().UTC())

	found, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Equal(t, newer.ID, found[0].ID)
	require.Equal(t, older.ID, found[1].ID)
}

func TestListPaginatesWithCursor(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedOrder(t, repo, nil, enums.OrderStatusPending, base.Add(time.Duration(i)*time.Minute))
	}

	first, err := repo.List(ctx, nil, "", 2)
	require.NoError(t, err)
	require.Len(t, first.Orders, 2)
	require.NotEmpty(t, first.NextCursor)
	require.EqualValues(t, 5, first.Total)

	second, err := repo.List(ctx, nil, first.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, second.Orders, 2)
	for _, seen := range first.Orders {
		for _, row := range second.Orders {
			require.NotEqual(t, seen.ID, row.ID)
		}
	}
}

func TestListFiltersByStatus(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	seedOrder(t, repo, nil, enums.OrderStatusPending, time.Now().UTC())
	shipped := seedOrder(t, repo, nil, enums.OrderStatusShipped, time.Now().UTC())

	status := enums.OrderStatusShipped
	page, err := repo.List(ctx, &status, "", 10)
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	require.Equal(t, shipped.ID, page.Orders[0].ID)
	require.EqualValues(t, 1, page.Total)
}

func TestUpdateStatus(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	order := seedOrder(t, repo, nil, enums.OrderStatusPending, time.Now().UTC())
	require.NoError(t, repo.UpdateStatus(ctx, order.ID, enums.OrderStatusProcessing))

	found, err := repo.FindDetail(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, enums.OrderStatusProcessing, found.Status)

	err = repo.UpdateStatus(ctx, uuid.New(), enums.OrderStatusProcessing)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
