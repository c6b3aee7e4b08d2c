package reviews

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

type txDB struct {
	conn *gorm.DB
}

func (d txDB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.conn.WithContext(ctx).Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  slug TEXT UNIQUE,
  name TEXT NOT NULL,
  short_description TEXT,
  long_description TEXT,
  category_id TEXT,
  brand_id TEXT,
  price TEXT NOT NULL,
  price_eur TEXT,
  compare_price TEXT,
  cost TEXT,
  stock INTEGER NOT NULL DEFAULT 0,
  min_stock_alert INTEGER,
  rating REAL NOT NULL DEFAULT 0,
  image TEXT,
  images TEXT,
  tags TEXT,
  featured INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  seo_title TEXT,
  seo_description TEXT,
  seo_keywords TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	reviews := `
CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  rating INTEGER NOT NULL,
  title TEXT,
  content TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  verified_purchase INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
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
	for _, ddl := range []string{products, reviews, orders, orderItems} {
		require.NoError(t, conn.Exec(ddl).Error)
	}
	for _, table := range []string{"reviews", "order_items", "orders", "products"} {
		require.NoError(t, conn.Exec("DELETE FROM "+table).Error)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(conn)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(ServiceParams{DB: txDB{conn: conn}, Repo: repo, Logger: logg})
	require.NoError(t, err)
	return svc, repo
}

func seedProduct(t *testing.T, conn *gorm.DB) *models.Product {
	t.Helper()
	slug := "test-product-" + uuid.NewString()[:8]
	product := &models.Product{
		ID:    uuid.New(),
		SKU:   "SKU-" + uuid.NewString()[:8],
		Slug:  &slug,
		Name:  "Test Product",
		Price: decimal.RequireFromString("19.99"),
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func seedPurchase(t *testing.T, conn *gorm.DB, userID, productID uuid.UUID) {
	t.Helper()
	order := &models.Order{
		ID:     uuid.New(),
		UserID: &userID,
		Status: enums.OrderStatusDelivered,
	}
	require.NoError(t, conn.Create(order).Error)
	item := &models.OrderItem{
		ID:          uuid.New(),
		OrderID:     order.ID,
		ProductID:   &productID,
		ProductName: "Test Product",
		Quantity:    1,
		Price:       decimal.RequireFromString("19.99"),
	}
	require.NoError(t, conn.Create(item).Error)
}

func seedReview(t *testing.T, repo *Repository, productID uuid.UUID, rating int, status enums.ReviewStatus) *models.Review {
	t.Helper()
	review := &models.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    uuid.New(),
		Rating:    rating,
		Status:    status,
	}
	require.NoError(t, repo.Create(context.Background(), review))
	return review
}

func TestSubmitRejectsOutOfRangeRating(t *testing.T) {
	svc, _ := newTestService(t, newTestDB(t))

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), SubmitInput{
			ProductID: uuid.New(),
			UserID:    uuid.New(),
			Rating:    rating,
		})
		require.Error(t, err)
		coded := pkgerrors.As(err)
		require.NotNil(t, coded)
		require.Equal(t, pkgerrors.CodeValidation, coded.Code())
	}
}

func TestSubmitMarksVerifiedPurchase(t *testing.T) {
	conn := newTestDB(t)
	svc, _ := newTestService(t, conn)
	product := seedProduct(t, conn)
	userID := uuid.New()
	seedPurchase(t, conn, userID, product.ID)

	title := "  Great skillet  "
	review, err := svc.Submit(context.Background(), SubmitInput{
		ProductID: product.ID,
		UserID:    userID,
		Rating:    5,
		Title:     &title,
	})
	require.NoError(t, err)
	require.True(t, review.VerifiedPurchase)
	require.Equal(t, enums.ReviewStatusPending, review.Status)
	require.NotNil(t, review.Title)
	require.Equal(t, "Great skillet", *review.Title)
}

func TestSubmitWithoutPurchaseIsUnverified(t *testing.T) {
	conn := newTestDB(t)
	svc, _ := newTestService(t, conn)
	product := seedProduct(t, conn)

	review, err := svc.Submit(context.Background(), SubmitInput{
		ProductID: product.ID,
		UserID:    uuid.New(),
		Rating:    4,
	})
	require.NoError(t, err)
	require.False(t, review.VerifiedPurchase)
}

func TestModerateApprovalRecomputesProductRating(t *testing.T) {
	conn := newTestDB(t)
	svc, repo := newTestService(t, conn)
	product := seedProduct(t, conn)

	seedReview(t, repo, product.ID, 5, enums.ReviewStatusApproved)
	pending := seedReview(t, repo, product.ID, 3, enums.ReviewStatusPending)

	require.NoError(t, svc.Moderate(context.Background(), pending.ID, enums.ReviewStatusApproved))

	var updated models.Product
	require.NoError(t, conn.First(&updated, "id = ?", product.ID).Error)
	require.InDelta(t, 4.0, updated.Rating, 0.001)

	moderated, err := repo.FindByID(context.Background(), pending.ID)
	require.NoError(t, err)
	require.Equal(t, enums.ReviewStatusApproved, moderated.Status)
}

func TestModerateRejectionLeavesRatingAlone(t *testing.T) {
	conn := newTestDB(t)
	svc, repo := newTestService(t, conn)
	product := seedProduct(t, conn)

	pending := seedReview(t, repo, product.ID, 1, enums.ReviewStatusPending)
	require.NoError(t, svc.Moderate(context.Background(), pending.ID, enums.ReviewStatusRejected))

	var updated models.Product
	require.NoError(t, conn.First(&updated, "id = ?", product.ID).Error)
	require.Zero(t, updated.Rating)
}

func TestModerateRejectsInvalidTarget(t *testing.T) {
	conn := newTestDB(t)
	svc, _ := newTestService(t, conn)

	err := svc.Moderate(context.Background(), uuid.New(), enums.ReviewStatusApproved)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeNotFound, coded.Code())

	err = svc.Moderate(context.Background(), uuid.New(), enums.ReviewStatusPending)
	coded = pkgerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, pkgerrors.CodeValidation, coded.Code())
}
