package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyPoint is one day of aggregated order activity.
type DailyPoint struct {
	Day     time.Time       `gorm:"column:day" json:"day"`
	Orders  int64           `gorm:"column:orders" json:"orders"`
	Revenue decimal.Decimal `gorm:"column:revenue" json:"revenue"`
}

// Totals summarizes the whole window.
type Totals struct {
	Orders       int64           `gorm:"column:orders" json:"orders"`
	Revenue      decimal.Decimal `gorm:"column:revenue" json:"revenue"`
	AverageOrder decimal.Decimal `gorm:"column:average_order" json:"average_order"`
}

// TopProduct ranks a product by units sold inside the window.
type TopProduct struct {
	ProductID   *uuid.UUID      `gorm:"column:product_id" json:"product_id"`
	ProductName string          `gorm:"column:product_name" json:"product_name"`
	Units       int64           `gorm:"column:units" json:"units"`
	Revenue     decimal.Decimal `gorm:"column:revenue" json:"revenue"`
}

// Repository runs aggregate queries over the orders tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an analytics repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// DailySeries returns one row per day with order count and revenue.
func (r *Repository) DailySeries(ctx context.Context, from, to time.Time) ([]DailyPoint, error) {
	var points []DailyPoint
	err := r.db.WithContext(ctx).Raw(`
		SELECT date_trunc('day', created_at) AS day,
		       COUNT(*)                      AS orders,
		       COALESCE(SUM(total), 0)      AS revenue
		FROM orders
		WHERE created_at >= ? AND created_at < ?
		GROUP BY 1
		ORDER BY 1 ASC`, from, to).
		Scan(&points).
		Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

// WindowTotals returns order count, revenue and average order value for the
// window.
func (r *Repository) WindowTotals(ctx context.Context, from, to time.Time) (Totals, error) {
	var totals Totals
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)                                   AS orders,
		       COALESCE(SUM(total), 0)                    AS revenue,
		       COALESCE(AVG(total), 0)                    AS average_order
		FROM orders
		WHERE created_at >= ? AND created_at < ?`, from, to).
		Scan(&totals).
		Error
	if err != nil {
		return Totals{}, err
	}
	return totals, nil
}

// TopProducts ranks products by units sold inside the window. Deleted
// products keep their snapshot name with a NULL product_id.
func (r *Repository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var products []TopProduct
	err := r.db.WithContext(ctx).Raw(`
		SELECT oi.product_id                        AS product_id,
		       oi.product_name                      AS product_name,
		       SUM(oi.quantity)                     AS units,
		       COALESCE(SUM(oi.price * oi.quantity), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= ? AND o.created_at < ?
		GROUP BY oi.product_id, oi.product_name
		ORDER BY units DESC, revenue DESC
		LIMIT ?`, from, to, limit).
		Scan(&products).
		Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
