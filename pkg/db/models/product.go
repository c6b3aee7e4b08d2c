package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is the canonical catalog listing. Price is always authored in USD;
// PriceEUR is an optional authored euro price, not a converted one.
type Product struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU              string           `gorm:"column:sku;not null;uniqueIndex"`
	Slug             *string          `gorm:"column:slug;uniqueIndex"`
	Name             string           `gorm:"column:name;not null"`
	ShortDescription *string          `gorm:"column:short_description"`
	LongDescription  *string          `gorm:"column:long_description"`
	CategoryID       *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	BrandID          *uuid.UUID       `gorm:"column:brand_id;type:uuid"`
	Price            decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	PriceEUR         *decimal.Decimal `gorm:"column:price_eur;type:numeric(10,2)"`
	ComparePrice     *decimal.Decimal `gorm:"column:compare_price;type:numeric(10,2)"`
	Cost             *decimal.Decimal `gorm:"column:cost;type:numeric(10,2)"`
	Stock            int              `gorm:"column:stock;not null;default:0"`
	MinStockAlert    *int             `gorm:"column:min_stock_alert"`
	Rating           float64          `gorm:"column:rating;type:numeric(3,2);not null;default:0"`
	Image            *string          `gorm:"column:image"`
	Images           pq.StringArray   `gorm:"column:images;type:text[]"`
	Tags             pq.StringArray   `gorm:"column:tags;type:text[]"`
	Featured         bool             `gorm:"column:featured;not null;default:false"`
	Active           bool             `gorm:"column:active;not null;default:true"`
	SEOTitle         *string          `gorm:"column:seo_title"`
	SEODescription   *string          `gorm:"column:seo_description"`
	SEOKeywords      *string          `gorm:"column:seo_keywords"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
