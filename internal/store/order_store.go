package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/pkg/util"
	"github.com/spec-kit/catalog-service/pkg/validate"
)

// OrderStore owns the canonical id->order map plus a case-insensitive
// uniqueness index on order number.
type OrderStore struct {
	mu       sync.Mutex
	ids      idAllocator
	byID     map[int64]*domain.Order
	byNumber map[string]*domain.Order

	logger     *zap.Logger
	metrics    *observability.Metrics
	dispatcher events.Dispatcher
	actor      string
}

// NewOrderStore constructs an empty order store.
func NewOrderStore(deps Deps) *OrderStore {
	deps = deps.normalize()
	return &OrderStore{
		byID:       make(map[int64]*domain.Order),
		byNumber:   make(map[string]*domain.Order),
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		dispatcher: deps.Dispatcher,
		actor:      deps.Actor,
	}
}

// OrderCreateInput describes order creation fields. An empty OrderNumber is
// replaced with a generated one.
type OrderCreateInput struct {
	OrderNumber     string
	CustomerID      int64
	ShippingAddress string
	BillingAddress  string
}

// CreateOrder assigns an id and order number and inserts the order into
// both indexes. The customer id is a soft reference and is not checked
// against the user store.
func (s *OrderStore) CreateOrder(input OrderCreateInput) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	number := input.OrderNumber
	if !validate.NotEmpty(number) {
		number = generateOrderNumber()
	}
	if _, exists := s.byNumber[strings.ToLower(number)]; exists {
		err := util.NewDuplicateKey("orderNumber", number)
		s.fail("create", err)
		return nil, err
	}

	order := domain.NewOrder(number, input.CustomerID)
	order.ShippingAddress = input.ShippingAddress
	order.BillingAddress = input.BillingAddress
	order.ID = s.ids.next()
	order.CreatedBy = s.actor
	order.UpdatedBy = s.actor

	s.byID[order.ID] = order
	s.byNumber[strings.ToLower(number)] = order

	s.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Int64("customer_id", order.CustomerID))
	s.done("create")
	s.publish(events.EventOrderCreated, order.ID, events.OrderCreatedPayload{
		OrderNumber: order.OrderNumber,
		CustomerID:  order.CustomerID,
	})
	return order, nil
}

// FindByID returns the order with the given id. Absent or non-positive ids
// match nothing.
func (s *OrderStore) FindByID(id int64) (*domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id <= 0 {
		return nil, false
	}
	order, ok := s.byID[id]
	return order, ok
}

// FindByOrderNumber looks up an order by its normalized number.
func (s *OrderStore) FindByOrderNumber(number string) (*domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !validate.NotEmpty(number) {
		return nil, false
	}
	order, ok := s.byNumber[strings.ToLower(number)]
	return order, ok
}

// AddItem appends a line to the order and re-derives the total. A nil line
// is a silent no-op on the order.
func (s *OrderStore) AddItem(id int64, line *domain.OrderLine) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("order", id)
		s.fail("add_item", err)
		return nil, err
	}

	order.AddItem(line)
	order.UpdatedBy = s.actor

	s.logger.Info("order item added",
		zap.Int64("order_id", order.ID),
		zap.Int("item_count", order.ItemCount()))
	s.done("add_item")
	s.publishItemsChanged(order)
	return order, nil
}

// RemoveItem drops the first line matching by line identity. Removing a
// line not present is a silent no-op on the order.
func (s *OrderStore) RemoveItem(id int64, line domain.OrderLine) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("order", id)
		s.fail("remove_item", err)
		return nil, err
	}

	order.RemoveItem(line)
	order.UpdatedBy = s.actor

	s.logger.Info("order item removed",
		zap.Int64("order_id", order.ID),
		zap.Int("item_count", order.ItemCount()))
	s.done("remove_item")
	s.publishItemsChanged(order)
	return order, nil
}

// SetCharges writes non-negative tax and shipping amounts and re-derives
// the total.
func (s *OrderStore) SetCharges(id int64, tax, shipping decimal.Decimal) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("order", id)
		s.fail("set_charges", err)
		return nil, err
	}
	if !validate.NonNegative(tax) {
		err := util.NewInvalidField("taxAmount", "tax amount cannot be negative")
		s.fail("set_charges", err)
		return nil, err
	}
	if !validate.NonNegative(shipping) {
		err := util.NewInvalidField("shippingAmount", "shipping amount cannot be negative")
		s.fail("set_charges", err)
		return nil, err
	}

	order.SetCharges(tax, shipping)
	order.UpdatedBy = s.actor

	s.logger.Info("order charges set",
		zap.Int64("order_id", order.ID),
		zap.String("total", order.TotalAmount.String()))
	s.done("set_charges")
	return order, nil
}

// Confirm moves the order to CONFIRMED.
func (s *OrderStore) Confirm(id int64) (*domain.Order, error) {
	return s.transition(id, "confirm", (*domain.Order).Confirm)
}

// Ship moves the order to SHIPPED and stamps the shipped date.
func (s *OrderStore) Ship(id int64) (*domain.Order, error) {
	return s.transition(id, "ship", (*domain.Order).Ship)
}

// Deliver moves the order to DELIVERED and stamps the delivered date.
func (s *OrderStore) Deliver(id int64) (*domain.Order, error) {
	return s.transition(id, "deliver", (*domain.Order).Deliver)
}

// Cancel moves the order to CANCELLED. Like the underlying mutator this is
// permitted from any state, including after delivery.
func (s *OrderStore) Cancel(id int64) (*domain.Order, error) {
	return s.transition(id, "cancel", (*domain.Order).Cancel)
}

func (s *OrderStore) transition(id int64, op string, move func(*domain.Order)) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.byID[id]
	if !ok {
		err := util.NewNotFound("order", id)
		s.fail(op, err)
		return nil, err
	}

	oldStatus := order.Status
	move(order)
	order.UpdatedBy = s.actor

	s.logger.Info("order status changed",
		zap.Int64("order_id", order.ID),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(order.Status)))
	s.done(op)
	s.publish(events.EventOrderStatusChanged, order.ID, events.OrderStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: order.Status,
	})
	return order, nil
}

// OrdersByStatus returns all orders in the given status.
func (s *OrderStore) OrdersByStatus(status domain.OrderStatus) []*domain.Order {
	return s.filter(func(o *domain.Order) bool { return o.Status == status })
}

// OrdersByCustomer returns all orders referencing the given customer id.
func (s *OrderStore) OrdersByCustomer(customerID int64) []*domain.Order {
	return s.filter(func(o *domain.Order) bool { return o.CustomerID == customerID })
}

// Count returns the number of stored orders.
func (s *OrderStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *OrderStore) filter(keep func(*domain.Order) bool) []*domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Order
	for _, order := range s.byID {
		if keep(order) {
			out = append(out, order)
		}
	}
	return out
}

func (s *OrderStore) done(op string) {
	s.metrics.RecordOp("orders", op)
}

func (s *OrderStore) fail(op string, err error) {
	s.metrics.RecordError("orders", op, util.CodeOf(err))
}

func (s *OrderStore) publish(eventType events.EventType, entityID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(context.Background(), events.NewEvent(eventType, entityID, s.actor, payload))
}

func (s *OrderStore) publishItemsChanged(order *domain.Order) {
	s.publish(events.EventOrderItemsChanged, order.ID, events.OrderItemsChangedPayload{
		ItemCount:   order.ItemCount(),
		Subtotal:    order.Subtotal(),
		TotalAmount: order.TotalAmount,
	})
}

func generateOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
