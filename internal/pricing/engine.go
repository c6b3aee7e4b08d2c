package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/junavolabs/junavo-backend/internal/cart"
	"github.com/junavolabs/junavo-backend/pkg/config"
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
)

var (
	freeShippingThreshold = decimal.RequireFromString("50.00")
	flatShippingRate      = decimal.RequireFromString("5.99")
	percentDivisor        = decimal.NewFromInt(100)
)

// QuotedLine is a cart line resolved against the catalog with its
// currency-selected unit price.
type QuotedLine struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// CouponStatus reports how the coupon code was handled in a quote.
type CouponStatus struct {
	Code    string `json:"code,omitempty"`
	Applied bool   `json:"applied"`
	Message string `json:"message,omitempty"`
}

// Quote is the full pricing breakdown for a cart.
type Quote struct {
	Lines    []QuotedLine    `json:"lines"`
	Currency enums.Currency  `json:"currency"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	Coupon   CouponStatus    `json:"coupon"`

	couponID *uuid.UUID
}

// CouponID returns the id of the applied coupon, when one applied.
func (q Quote) CouponID() *uuid.UUID {
	return q.couponID
}

type productSource interface {
	Get(id uuid.UUID) (models.Product, bool)
}

type couponSource interface {
	FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error)
}

// EngineParams groups dependencies for the pricing engine. Rates override
// the built-in shipping constants when set.
type EngineParams struct {
	Products productSource
	Coupons  couponSource
	Rates    config.PricingConfig
}

// Engine computes cart quotes against the catalog read model.
type Engine interface {
	Quote(ctx context.Context, lines []cart.Line, currency enums.Currency, couponCode string) (Quote, error)
}

type engine struct {
	products      productSource
	coupons       couponSource
	flatShipping  decimal.Decimal
	freeThreshold decimal.Decimal
}

// NewEngine builds a pricing engine with the required dependencies.
func NewEngine(params EngineParams) (Engine, error) {
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product source is required")
	}
	if params.Coupons == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon source is required")
	}
	flat, err := rateOrDefault(params.Rates.ShippingFlat, flatShippingRate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid flat shipping rate")
	}
	threshold, err := rateOrDefault(params.Rates.FreeShippingThreshold, freeShippingThreshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid free shipping threshold")
	}
	return &engine{
		products:      params.Products,
		coupons:       params.Coupons,
		flatShipping:  flat,
		freeThreshold: threshold,
	}, nil
}

func rateOrDefault(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if raw == "" {
		return fallback, nil
	}
	return decimal.NewFromString(raw)
}

// Quote resolves the cart lines, applies the coupon and computes shipping
// and total. Lines that no longer resolve against the catalog are dropped
// from the quote without error.
func (e *engine) Quote(ctx context.Context, lines []cart.Line, currency enums.Currency, couponCode string) (Quote, error) {
	if !currency.IsValid() {
		currency = enums.CurrencyUSD
	}

	quoted := make([]QuotedLine, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		product, ok := e.products.Get(line.ProductID)
		if !ok {
			continue
		}
		unit := UnitPrice(product, currency)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		quoted = append(quoted, QuotedLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   unit,
			Quantity:    line.Quantity,
			LineTotal:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	quote := Quote{
		Lines:    quoted,
		Currency: currency,
		Subtotal: subtotal,
		Discount: decimal.Zero,
		Coupon:   CouponStatus{Code: couponCode},
	}

	if couponCode != "" {
		discount, status, couponID, err := e.resolveCoupon(ctx, couponCode, subtotal)
		if err != nil {
			return Quote{}, err
		}
		quote.Discount = discount
		quote.Coupon = status
		quote.couponID = couponID
	}

	if subtotal.GreaterThanOrEqual(e.freeThreshold) {
		quote.Shipping = decimal.Zero
	} else {
		quote.Shipping = e.flatShipping
	}

	discounted := subtotal.Sub(quote.Discount)
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}
	quote.Total = discounted.Add(quote.Shipping)

	return quote, nil
}

func (e *engine) resolveCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, CouponStatus, *uuid.UUID, error) {
	coupon, err := e.coupons.FindActiveByCode(ctx, code)
	if err != nil {
		return decimal.Zero, CouponStatus{}, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up coupon")
	}
	if coupon == nil {
		return decimal.Zero, CouponStatus{Code: code, Applied: false, Message: "invalid coupon code"}, nil, nil
	}
	if coupon.MinPurchase != nil && subtotal.LessThan(*coupon.MinPurchase) {
		return decimal.Zero, CouponStatus{Code: code, Applied: false, Message: "order does not meet the coupon minimum"}, nil, nil
	}
	if coupon.UsageLimit != nil && coupon.UsageCount >= *coupon.UsageLimit {
		return decimal.Zero, CouponStatus{Code: code, Applied: false, Message: "coupon usage limit reached"}, nil, nil
	}

	discount := coupon.Discount
	if coupon.DiscountType == enums.DiscountTypePercent {
		discount = subtotal.Mul(coupon.Discount).Div(percentDivisor).Round(2)
	}

	id := coupon.ID
	return discount, CouponStatus{Code: code, Applied: true, Message: "coupon applied"}, &id, nil
}

// UnitPrice selects the display price for a product in the given currency.
// EUR uses the authored euro price when present; otherwise the USD number
// is reused unchanged under the euro symbol.
func UnitPrice(product models.Product, currency enums.Currency) decimal.Decimal {
	if currency == enums.CurrencyEUR && product.PriceEUR != nil {
		return *product.PriceEUR
	}
	return product.Price
}
