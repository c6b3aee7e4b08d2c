package products

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/internal/catalog"
	"github.com/junavolabs/junavo-backend/pkg/db/models"
	"github.com/junavolabs/junavo-backend/pkg/enums"
	pkgerrors "github.com/junavolabs/junavo-backend/pkg/errors"
	"github.com/junavolabs/junavo-backend/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// ProductInput carries the admin-editable product fields.
type ProductInput struct {
	SKU              string
	Name             string
	ShortDescription *string
	LongDescription  *string
	CategoryID       *uuid.UUID
	BrandID          *uuid.UUID
	Price            decimal.Decimal
	PriceEUR         *decimal.Decimal
	ComparePrice     *decimal.Decimal
	Cost             *decimal.Decimal
	Stock            int
	MinStockAlert    *int
	Image            *string
	Images           []string
	Tags             []string
	Featured         bool
	Active           bool
	SEOTitle         *string
	SEODescription   *string
	SEOKeywords      *string
}

// StockAdjustment describes a manual stock change from the back office.
type StockAdjustment struct {
	ProductID  uuid.UUID
	AdminID    *uuid.UUID
	NewStock   int
	ChangeType enums.StockChangeType
	Reason     *string
}

// ServiceParams groups dependencies for the product service.
type ServiceParams struct {
	DB      txRunner
	Repo    *Repository
	Outbox  eventEmitter
	EURRate decimal.Decimal
}

// Service exposes product management and storefront queries.
type Service interface {
	Create(ctx context.Context, input ProductInput, actor *outbox.ActorRef) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput, actor *outbox.ActorRef) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID, actor *outbox.ActorRef) error
	AdjustStock(ctx context.Context, adjustment StockAdjustment, actor *outbox.ActorRef) (*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListActive(ctx context.Context) ([]models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	StockHistory(ctx context.Context, productID uuid.UUID) ([]models.StockHistory, error)
	EURFromUSD(usd decimal.Decimal) decimal.Decimal
	USDFromEUR(eur decimal.Decimal) decimal.Decimal
}

type service struct {
	db      txRunner
	repo    *Repository
	outbox  eventEmitter
	eurRate decimal.Decimal
}

// NewService builds a product service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "database client is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Outbox == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "outbox service is required")
	}
	if params.EURRate.IsZero() || params.EURRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "eur rate must be positive")
	}
	return &service{
		db:      params.DB,
		repo:    params.Repo,
		outbox:  params.Outbox,
		eurRate: params.EURRate,
	}, nil
}

// Create inserts a product, records the initial stock movement and queues
// the catalog change event in one transaction.
func (s *service) Create(ctx context.Context, input ProductInput, actor *outbox.ActorRef) (*models.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, input.Name, uuid.Nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate slug")
	}

	product := applyInput(&models.Product{}, input)
	product.Slug = &slug

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, product); err != nil {
			return err
		}
		if product.Stock > 0 {
			entry := &models.StockHistory{
				ProductID:        product.ID,
				AdminID:          actorID(actor),
				ChangeType:       enums.StockChangeRestock,
				PreviousQuantity: 0,
				NewQuantity:      product.Stock,
			}
			if err := s.repo.InsertStockHistoryTx(tx, entry); err != nil {
				return err
			}
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventProductCreated,
			AggregateType: enums.OutboxAggregateProduct,
			AggregateID:   product.ID,
			Actor:         actor,
			Data:          catalog.ProductEventPayload{Product: *product},
			Version:       1,
		})
	})
	if err != nil {
		return nil, wrapWriteError(err, "create product")
	}
	return product, nil
}

// Update saves the product and queues the catalog change event.
func (s *service) Update(ctx context.Context, id uuid.UUID, input ProductInput, actor *outbox.ActorRef) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	previousStock := existing.Stock
	product := applyInput(existing, input)
	if product.Slug == nil || strings.TrimSpace(slugify(input.Name)) != strings.TrimSpace(deref(product.Slug)) {
		slug, err := s.uniqueSlug(ctx, input.Name, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate slug")
		}
		product.Slug = &slug
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, product); err != nil {
			return err
		}
		if product.Stock != previousStock {
			entry := &models.StockHistory{
				ProductID:        product.ID,
				AdminID:          actorID(actor),
				ChangeType:       enums.StockChangeAdjustment,
				PreviousQuantity: previousStock,
				NewQuantity:      product.Stock,
			}
			if err := s.repo.InsertStockHistoryTx(tx, entry); err != nil {
				return err
			}
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventProductUpdated,
			AggregateType: enums.OutboxAggregateProduct,
			AggregateID:   product.ID,
			Actor:         actor,
			Data:          catalog.ProductEventPayload{Product: *product},
			Version:       1,
		})
	})
	if err != nil {
		return nil, wrapWriteError(err, "update product")
	}
	return product, nil
}

// Delete removes the product and queues the catalog removal event.
func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *outbox.ActorRef) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventProductDeleted,
			AggregateType: enums.OutboxAggregateProduct,
			AggregateID:   id,
			Actor:         actor,
			Data:          catalog.ProductEventPayload{Product: *existing},
			Version:       1,
		})
	})
	if err != nil {
		return wrapWriteError(err, "delete product")
	}
	return nil
}

// AdjustStock sets the stock level, records the movement and queues the
// catalog update event.
func (s *service) AdjustStock(ctx context.Context, adjustment StockAdjustment, actor *outbox.ActorRef) (*models.Product, error) {
	if adjustment.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if adjustment.NewStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if !adjustment.ChangeType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stock change type")
	}

	product, err := s.repo.FindByID(ctx, adjustment.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	previous := product.Stock
	product.Stock = adjustment.NewStock

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, product); err != nil {
			return err
		}
		entry := &models.StockHistory{
			ProductID:        product.ID,
			AdminID:          adjustment.AdminID,
			ChangeType:       adjustment.ChangeType,
			PreviousQuantity: previous,
			NewQuantity:      adjustment.NewStock,
			Reason:           adjustment.Reason,
		}
		if err := s.repo.InsertStockHistoryTx(tx, entry); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventProductUpdated,
			AggregateType: enums.OutboxAggregateProduct,
			AggregateID:   product.ID,
			Actor:         actor,
			Data:          catalog.ProductEventPayload{Product: *product},
			Version:       1,
		})
	})
	if err != nil {
		return nil, wrapWriteError(err, "adjust stock")
	}
	return product, nil
}

// GetByID loads a product by id.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// GetBySlug loads a product by slug.
func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.repo.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// ListActive returns the storefront product set.
func (s *service) ListActive(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

// ListAll returns every product for the back office.
func (s *service) ListAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

// StockHistory returns the stock movements for a product.
func (s *service) StockHistory(ctx context.Context, productID uuid.UUID) ([]models.StockHistory, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	entries, err := s.repo.ListStockHistory(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock history")
	}
	return entries, nil
}

// EURFromUSD converts an admin-entered USD price using the fixed rate.
// Only the back-office price form uses this; storefront display never
// converts.
func (s *service) EURFromUSD(usd decimal.Decimal) decimal.Decimal {
	return usd.Mul(s.eurRate).Round(2)
}

// USDFromEUR reverses the admin price-entry conversion.
func (s *service) USDFromEUR(eur decimal.Decimal) decimal.Decimal {
	return eur.Div(s.eurRate).Round(2)
}

func (s *service) uniqueSlug(ctx context.Context, name string, excludeID uuid.UUID) (string, error) {
	base := slugify(name)
	if base == "" {
		base = "product"
	}
	taken, err := s.repo.SlugExists(ctx, base, excludeID)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	return base + "-" + uuid.NewString()[:8], nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func validateInput(input ProductInput) error {
	if strings.TrimSpace(input.SKU) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	return nil
}

func applyInput(product *models.Product, input ProductInput) *models.Product {
	product.SKU = strings.TrimSpace(input.SKU)
	product.Name = strings.TrimSpace(input.Name)
	product.ShortDescription = input.ShortDescription
	product.LongDescription = input.LongDescription
	product.CategoryID = input.CategoryID
	product.BrandID = input.BrandID
	product.Price = input.Price
	product.PriceEUR = input.PriceEUR
	product.ComparePrice = input.ComparePrice
	product.Cost = input.Cost
	product.Stock = input.Stock
	product.MinStockAlert = input.MinStockAlert
	product.Image = input.Image
	product.Images = pq.StringArray(input.Images)
	product.Tags = pq.StringArray(input.Tags)
	product.Featured = input.Featured
	product.Active = input.Active
	product.SEOTitle = input.SEOTitle
	product.SEODescription = input.SEODescription
	product.SEOKeywords = input.SEOKeywords
	return product
}

func actorID(actor *outbox.ActorRef) *uuid.UUID {
	if actor == nil || actor.UserID == uuid.Nil {
		return nil
	}
	id := actor.UserID
	return &id
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func wrapWriteError(err error, message string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
