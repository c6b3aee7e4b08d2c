package checkout

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/junavolabs/junavo-backend/internal/cart"
	"github.com/junavolabs/junavo-backend/internal/coupons"
	"github.com/junavolabs/junavo-backend/internal/pricing"
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/logger"
)

var _ couponCounter = (*coupons.Repository)(nil)

type fakeCart struct {
	items   []cart.Line
	cleared int
}

func (f *fakeCart) Get(_ context.Context, _ string) cart.Cart {
	return cart.Cart{Items: f.items}
}

func (f *fakeCart) Clear(_ context.Context, _ string) error {
	f.cleared++
	return nil
}

type fakeProducts struct {
	byID map[uuid.UUID]models.Product
}

func (f *fakeProducts) Get(id uuid.UUID) (models.Product, bool) {
	p, ok := f.byID[id]
	return p, ok
}

type fakeCoupons struct{}

func (fakeCoupons) FindActiveByCode(context.Context, string) (*models.Coupon, error) {
	return nil, nil
}

type fakeOrders struct {
	orders    []*models.Order
	items     [][]models.OrderItem
	orderErr  error
	itemsErr  error
	nextOrder uuid.UUID
}

func (f *fakeOrders) CreateOrder(_ context.Context, order *models.Order) error {
	if f.orderErr != nil {
		return f.orderErr
	}
	if f.nextOrder == uuid.Nil {
		f.nextOrder = uuid.New()
	}
	order.ID = f.nextOrder
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrders) CreateOrderItems(_ context.Context, items []models.OrderItem) error {
	if f.itemsErr != nil {
		return f.itemsErr
	}
	f.items = append(f.items, items)
	return nil
}

func testEngine(t *testing.T, products ...models.Product) pricing.Engine {
	t.Helper()
	byID := map[uuid.UUID]models.Product{}
	for _, p := range products {
		byID[p.ID] = p
	}
	engine, err := pricing.NewEngine(pricing.EngineParams{
		Products: &fakeProducts{byID: byID},
		Coupons:  fakeCoupons{},
	})
	if err != nil {
		t.Fatalf("failed to construct engine: %v", err)
	}
	return engine
}

func testService(t *testing.T, cartStub *fakeCart, ordersStub *fakeOrders, engine pricing.Engine) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "checkout-test", Output: io.Discard})
	svc, err := NewService(ServiceParams{
		Cart:    cartStub,
		Pricing: engine,
		Orders:  ordersStub,
		Logger:  logg,
	})
	if err != nil {
		t.Fatalf("failed to construct service: %v", err)
	}
	return svc
}

func twentyDollarProduct(t *testing.T) models.Product {
	t.Helper()
	price, err := decimal.NewFromString("20.00")
	if err != nil {
		t.Fatalf("bad decimal: %v", err)
	}
	return models.Product{
		ID:     uuid.New(),
		SKU:    "SKU-20",
		Name:   "Twenty",
		Price:  price,
		Active: true,
	}
}

func TestSubmitTwoItemsProducesSingleOrderAndItemRow(t *testing.T) {
	t.Parallel()
	product := twentyDollarProduct(t)
	cartStub := &fakeCart{items: []cart.Line{{ProductID: product.ID, Quantity: 2}}}
	ordersStub := &fakeOrders{}
	svc := testService(t, cartStub, ordersStub, testEngine(t, product))

	order, err := svc.Submit(context.Background(), SubmitInput{
		SessionID:     "sess",
		PaymentMethod: "cod",
		Currency:      enums.CurrencyUSD,
		Billing:       BillingForm{Name: "Ada", Email: "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if len(ordersStub.orders) != 1 {
		t.Fatalf("expected exactly one order row, got %d", len(ordersStub.orders))
	}
	if len(ordersStub.items) != 1 || len(ordersStub.items[0]) != 1 {
		t.Fatalf("expected exactly one item row")
	}
	if order.Total.String() != "45.99" {
		t.Fatalf("expected total 45.99, got %s", order.Total)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	item := ordersStub.items[0][0]
	if item.Quantity != 2 || item.ProductName != "Twenty" || item.Price.String() != "20" {
		t.Fatalf("unexpected item snapshot %+v", item)
	}
	if cartStub.cleared != 1 {
		t.Fatalf("expected cart cleared once, got %d", cartStub.cleared)
	}
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	t.Parallel()
	cartStub := &fakeCart{}
	ordersStub := &fakeOrders{}
	svc := testService(t, cartStub, ordersStub, testEngine(t))

	_, err := svc.Submit(context.Background(), SubmitInput{
		SessionID:     "sess",
		PaymentMethod: "cod",
		Currency:      enums.CurrencyUSD,
	})
	if err == nil {
		t.Fatalf("expected validation error for empty cart")
	}
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if len(ordersStub.orders) != 0 {
		t.Fatalf("expected no order created")
	}
}

func TestSubmitLeavesCartOnHeaderFailure(t *testing.T) {
	t.Parallel()
	product := twentyDollarProduct(t)
	cartStub := &fakeCart{items: []cart.Line{{ProductID: product.ID, Quantity: 1}}}
	ordersStub := &fakeOrders{orderErr: errors.New("insert failed")}
	svc := testService(t, cartStub, ordersStub, testEngine(t, product))

	_, err := svc.Submit(context.Background(), SubmitInput{
		SessionID:     "sess",
		PaymentMethod: "cod",
		Currency:      enums.CurrencyUSD,
	})
	if err == nil {
		t.Fatalf("expected submit failure")
	}
	if cartStub.cleared != 0 {
		t.Fatalf("expected cart untouched on failure")
	}
}

func TestSubmitItemFailureLeavesHeaderAndCart(t *testing.T) {
	t.Parallel()
	product := twentyDollarProduct(t)
	cartStub := &fakeCart{items: []cart.Line{{ProductID: product.ID, Quantity: 1}}}
	ordersStub := &fakeOrders{itemsErr: errors.New("insert failed")}
	svc := testService(t, cartStub, ordersStub, testEngine(t, product))

	_, err := svc.Submit(context.Background(), SubmitInput{
		SessionID:     "sess",
		PaymentMethod: "cod",
		Currency:      enums.CurrencyUSD,
	})
	if err == nil {
		t.Fatalf("expected submit failure")
	}
	// The header row survives the item failure; there is no wrapping
	// transaction around the two writes.
	if len(ordersStub.orders) != 1 {
		t.Fatalf("expected header row written, got %d", len(ordersStub.orders))
	}
	if cartStub.cleared != 0 {
		t.Fatalf("expected cart untouched on failure")
	}
}

func TestSubmitGuestCheckoutAllowsNilUser(t *testing.T) {
	t.Parallel()
	product := twentyDollarProduct(t)
	cartStub := &fakeCart{items: []cart.Line{{ProductID: product.ID, Quantity: 3}}}
	ordersStub := &fakeOrders{}
	svc := testService(t, cartStub, ordersStub, testEngine(t, product))

	order, err := svc.Submit(context.Background(), SubmitInput{
		SessionID:     "sess",
		PaymentMethod: "cod",
		Currency:      enums.CurrencyUSD,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if order.UserID != nil {
		t.Fatalf("expected nil user id for guest checkout")
	}
	// 3 x 20.00 crosses the free shipping threshold.
	if order.Total.String() != "60" {
		t.Fatalf("expected total 60, got %s", order.Total)
	}
}

func TestSubmitUnknownPaymentMethodRejected(t *testing.T) {
	t.Parallel()
	product := twentyDollarProduct(t)
	cartStub := &fakeCart{items: []cart.Line{{ProductID: product.ID, Quantity: 1}}}
	svc := testService(t, cartStub, &fakeOrders{}, testEngine(t, product))

	_, err := svc.Submit(context.Background(), SubmitInput{
		SessionID:     "sess",
		PaymentMethod: "wire",
		Currency:      enums.CurrencyUSD,
	})
	if err == nil {
		t.Fatalf("expected validation error for payment method")
	}
}
