package checkout

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/junavolabs/junavo-backend/internal/cart"
	"github.com/junavolabs/junavo-backend/internal/pricing"
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
	"github.com/junavolabs/junavo-backend/pkg/metrics"
)

// BillingForm carries the customer details captured at checkout.
type BillingForm struct {
	Name            string
	Email           string
	Phone           string
	Address         string
	City            string
	Zip             string
	ShippingName    string
	ShippingAddress string
	ShippingCity    string
	ShippingZip     string
}

// SubmitInput is the full checkout submission.
type SubmitInput struct {
	SessionID     string
	UserID        *uuid.UUID
	Billing       BillingForm
	PaymentMethod string
	Currency      enums.Currency
	CouponCode    string
}

type cartStore interface {
	Get(ctx context.Context, sessionID string) cart.Cart
	Clear(ctx context.Context, sessionID string) error
}

type orderWriter interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
}

type couponCounter interface {
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Cart    cartStore
	Pricing pricing.Engine
	Orders  orderWriter
	Coupons couponCounter
	Logger  *logger.Logger
	Metrics *metrics.CheckoutMetrics
}

// Service exposes the order submission flow.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Order, error)
}

type service struct {
	cart    cartStore
	pricing pricing.Engine
	orders  orderWriter
	coupons couponCounter
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if params.Pricing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pricing engine is required")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order writer is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		cart:    params.Cart,
		pricing: params.Pricing,
		orders:  params.Orders,
		coupons: params.Coupons,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// Submit quotes the session cart, writes the order header then the item
// snapshots, and clears the cart on success. The two writes are sequential
// and unwrapped: an item-write failure leaves the header behind. Resubmits
// are not deduplicated; each call creates a new order.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Order, error) {
	sessionID := strings.TrimSpace(input.SessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	paymentMethod, err := enums.ParsePaymentMethod(strings.TrimSpace(input.PaymentMethod))
	if err != nil {
		s.recordOutcome("rejected")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	current := s.cart.Get(ctx, sessionID)
	if len(current.Items) == 0 {
		s.recordOutcome("rejected")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	quote, err := s.pricing.Quote(ctx, current.Items, input.Currency, input.CouponCode)
	if err != nil {
		s.recordOutcome("failed")
		return nil, err
	}
	if len(quote.Lines) == 0 {
		s.recordOutcome("rejected")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no purchasable items in cart")
	}

	order := buildOrder(input, paymentMethod, quote)
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		s.recordOutcome("failed")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	items := buildItems(order.ID, quote)
	if err := s.orders.CreateOrderItems(ctx, items); err != nil {
		// The header row already exists; the cart stays intact so the
		// customer can retry.
		s.recordOutcome("failed")
		logCtx := s.logg.WithFields(ctx, map[string]any{"order_id": order.ID.String()})
		s.logg.Error(logCtx, "order items write failed after header insert", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
	}
	order.Items = items

	if quote.CouponID() != nil && s.coupons != nil {
		if err := s.coupons.IncrementUsage(ctx, *quote.CouponID()); err != nil {
			logCtx := s.logg.WithFields(ctx, map[string]any{"order_id": order.ID.String()})
			s.logg.Warn(s.logg.WithField(logCtx, "error", err.Error()), "coupon usage increment failed")
		}
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"order_id": order.ID.String()})
		s.logg.Warn(s.logg.WithField(logCtx, "error", err.Error()), "cart clear failed after order submit")
	}

	s.recordOutcome("accepted")
	if s.metrics != nil {
		s.metrics.ObserveOrderSize(len(items))
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID.String(),
		"total":    order.Total.String(),
		"items":    len(items),
	})
	s.logg.Info(logCtx, "order submitted")

	return order, nil
}

func (s *service) recordOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.IncOrder(outcome)
	}
}

func buildOrder(input SubmitInput, paymentMethod enums.PaymentMethod, quote pricing.Quote) *models.Order {
	return &models.Order{
		UserID:          input.UserID,
		BillingName:     optional(input.Billing.Name),
		BillingEmail:    optional(input.Billing.Email),
		BillingPhone:    optional(input.Billing.Phone),
		BillingAddress:  optional(input.Billing.Address),
		BillingCity:     optional(input.Billing.City),
		BillingZip:      optional(input.Billing.Zip),
		ShippingName:    optional(input.Billing.ShippingName),
		ShippingAddress: optional(input.Billing.ShippingAddress),
		ShippingCity:    optional(input.Billing.ShippingCity),
		ShippingZip:     optional(input.Billing.ShippingZip),
		PaymentMethod:   paymentMethod,
		Subtotal:        quote.Subtotal,
		Discount:        quote.Discount,
		Shipping:        quote.Shipping,
		Total:           quote.Total,
		Status:          enums.OrderStatusPending,
	}
}

func buildItems(orderID uuid.UUID, quote pricing.Quote) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		productID := line.ProductID
		items = append(items, models.OrderItem{
			OrderID:     orderID,
			ProductID:   &productID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
		})
	}
	return items
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
