package store

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/pkg/util"
	"github.com/spec-kit/catalog-service/pkg/validate"
)

// ProductStore owns the canonical id->product map plus a case-insensitive
// uniqueness index on SKU.
type ProductStore struct {
	mu    sync.Mutex
	ids   idAllocator
	byID  map[int64]*domain.Product
	bySKU map[string]*domain.Product

	logger     *zap.Logger
	metrics    *observability.Metrics
	dispatcher events.Dispatcher
	actor      string
}

// NewProductStore constructs an empty product store.
func NewProductStore(deps Deps) *ProductStore {
	deps = deps.normalize()
	return &ProductStore{
		byID:       make(map[int64]*domain.Product),
		bySKU:      make(map[string]*domain.Product),
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		dispatcher: deps.Dispatcher,
		actor:      deps.Actor,
	}
}

// ProductUpdate carries the optional fields of UpdateProduct. Nil pointers
// are treated as absent; a non-nil empty Description clears the field.
type ProductUpdate struct {
	Name        string
	Description *string
	Price       *decimal.Decimal
}

// CreateProduct validates input, rejects duplicate SKUs case-insensitively,
// assigns an id and inserts the product into both indexes.
func (s *ProductStore) CreateProduct(name, sku string, price decimal.Decimal, category domain.ProductCategory) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateProductInput(name, sku, price, category); err != nil {
		s.fail("create", err)
		return nil, err
	}
	if _, exists := s.bySKU[strings.ToLower(sku)]; exists {
		err := util.NewDuplicateKey("sku", sku)
		s.fail("create", err)
		return nil, err
	}

	product := domain.NewProduct(name, sku, price, category)
	product.ID = s.ids.next()
	product.CreatedBy = s.actor
	product.UpdatedBy = s.actor

	s.byID[product.ID] = product
	s.bySKU[strings.ToLower(sku)] = product

	s.logger.Info("product created",
		zap.Int64("product_id", product.ID),
		zap.String("sku", product.SKU))
	s.done("create")
	s.publish(events.EventProductCreated, product.ID, events.ProductCreatedPayload{
		SKU:      product.SKU,
		Category: product.Category,
	})
	return product, nil
}

// FindByID returns the product with the given id. Absent or non-positive
// ids match nothing.
func (s *ProductStore) FindByID(id int64) (*domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id <= 0 {
		return nil, false
	}
	product, ok := s.byID[id]
	return product, ok
}

// FindBySKU looks up a product by its normalized SKU.
func (s *ProductStore) FindBySKU(sku string) (*domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !validate.NotEmpty(sku) {
		return nil, false
	}
	product, ok := s.bySKU[strings.ToLower(sku)]
	return product, ok
}

// UpdateProduct applies the non-absent fields of upd. A price, when given,
// must stay positive.
func (s *ProductStore) UpdateProduct(id int64, upd ProductUpdate) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("product", id)
		s.fail("update", err)
		return nil, err
	}
	if upd.Price != nil && !validate.Positive(*upd.Price) {
		err := util.NewInvalidField("price", "price must be positive")
		s.fail("update", err)
		return nil, err
	}

	if validate.NotEmpty(upd.Name) {
		product.Name = upd.Name
	}
	if upd.Description != nil {
		product.Description = *upd.Description
	}
	if upd.Price != nil {
		product.Price = *upd.Price
	}

	product.UpdatedBy = s.actor
	product.Touch()

	s.logger.Info("product updated", zap.Int64("product_id", product.ID))
	s.done("update")
	return product, nil
}

// UpdateStock sets the absolute on-hand quantity. Negative quantities are
// rejected.
func (s *ProductStore) UpdateStock(id int64, quantity int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("product", id)
		s.fail("update_stock", err)
		return nil, err
	}
	if quantity < 0 {
		err := util.NewInvalidQuantity("stock quantity cannot be negative", quantity)
		s.fail("update_stock", err)
		return nil, err
	}

	previous := stockOrZero(product)
	product.StockQuantity = &quantity
	product.UpdatedBy = s.actor
	product.Touch()

	s.logger.Info("product stock set",
		zap.Int64("product_id", product.ID),
		zap.Int("quantity", quantity))
	s.done("update_stock")
	s.publishStockChanged(product, previous)
	return product, nil
}

// AddStock increases on-hand stock by a positive quantity.
func (s *ProductStore) AddStock(id int64, quantity int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("product", id)
		s.fail("add_stock", err)
		return nil, err
	}
	if quantity <= 0 {
		err := util.NewInvalidQuantity("quantity to add must be positive", quantity)
		s.fail("add_stock", err)
		return nil, err
	}

	previous := stockOrZero(product)
	product.AddStock(quantity)
	product.UpdatedBy = s.actor

	s.logger.Info("product stock added",
		zap.Int64("product_id", product.ID),
		zap.Int("quantity", quantity),
		zap.Int("stock", stockOrZero(product)))
	s.done("add_stock")
	s.publishStockChanged(product, previous)
	return product, nil
}

// RemoveStock decreases on-hand stock by a positive quantity. Removing more
// than is on hand fails without mutation.
func (s *ProductStore) RemoveStock(id int64, quantity int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("product", id)
		s.fail("remove_stock", err)
		return nil, err
	}
	if quantity <= 0 {
		err := util.NewInvalidQuantity("quantity to remove must be positive", quantity)
		s.fail("remove_stock", err)
		return nil, err
	}

	previous := stockOrZero(product)
	if !product.RemoveStock(quantity) {
		err := util.NewInsufficientStock(previous, quantity)
		s.fail("remove_stock", err)
		return nil, err
	}
	product.UpdatedBy = s.actor

	s.logger.Info("product stock removed",
		zap.Int64("product_id", product.ID),
		zap.Int("quantity", quantity),
		zap.Int("stock", stockOrZero(product)))
	s.done("remove_stock")
	s.publishStockChanged(product, previous)
	return product, nil
}

// Activate marks the product sellable.
func (s *ProductStore) Activate(id int64) (*domain.Product, error) {
	return s.setActive(id, true)
}

// Deactivate withdraws the product from sale.
func (s *ProductStore) Deactivate(id int64) (*domain.Product, error) {
	return s.setActive(id, false)
}

func (s *ProductStore) setActive(id int64, active bool) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op := "deactivate"
	if active {
		op = "activate"
	}
	product, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("product", id)
		s.fail(op, err)
		return nil, err
	}

	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}
	product.UpdatedBy = s.actor

	s.logger.Info("product "+op+"d", zap.Int64("product_id", product.ID))
	s.done(op)
	return product, nil
}

// ActiveProducts returns all active products.
func (s *ProductStore) ActiveProducts() []*domain.Product {
	return s.filter(func(p *domain.Product) bool { return p.Active })
}

// AvailableProducts returns all products that are active and in stock.
func (s *ProductStore) AvailableProducts() []*domain.Product {
	return s.filter(func(p *domain.Product) bool { return p.Available() })
}

// ProductsByCategory returns all products in the given category. An unknown
// category matches nothing.
func (s *ProductStore) ProductsByCategory(category domain.ProductCategory) []*domain.Product {
	if !category.Valid() {
		return nil
	}
	return s.filter(func(p *domain.Product) bool { return p.Category == category })
}

// Count returns the number of stored products.
func (s *ProductStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *ProductStore) filter(keep func(*domain.Product) bool) []*domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Product
	for _, product := range s.byID {
		if keep(product) {
			out = append(out, product)
		}
	}
	return out
}

func (s *ProductStore) done(op string) {
	s.metrics.RecordOp("products", op)
}

func (s *ProductStore) fail(op string, err error) {
	s.metrics.RecordError("products", op, util.CodeOf(err))
}

func (s *ProductStore) publish(eventType events.EventType, entityID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(context.Background(), events.NewEvent(eventType, entityID, s.actor, payload))
}

func (s *ProductStore) publishStockChanged(product *domain.Product, previous int) {
	s.publish(events.EventStockChanged, product.ID, events.StockChangedPayload{
		SKU:           product.SKU,
		PreviousStock: previous,
		CurrentStock:  stockOrZero(product),
	})
}

func stockOrZero(p *domain.Product) int {
	if p.StockQuantity == nil {
		return 0
	}
	return *p.StockQuantity
}

func validateProductInput(name, sku string, price decimal.Decimal, category domain.ProductCategory) error {
	if !validate.NotEmpty(name) {
		return util.NewInvalidField("name", "product name cannot be empty")
	}
	if !validate.NotEmpty(sku) {
		return util.NewInvalidField("sku", "product SKU cannot be empty")
	}
	if !validate.Positive(price) {
		return util.NewInvalidField("price", "product price must be positive")
	}
	if !category.Valid() {
		return util.NewInvalidField("category", "unknown product category: "+string(category))
	}
	return nil
}
