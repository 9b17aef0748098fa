package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated        EventType = "user_created"
	EventUserStatusChanged  EventType = "user_status_changed"
	EventProductCreated     EventType = "product_created"
	EventStockChanged       EventType = "stock_changed"
	EventOrderCreated       EventType = "order_created"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventOrderItemsChanged  EventType = "order_items_changed"
)

// AllEventTypes lists every event a store can publish, for subscribers that
// want the full stream.
var AllEventTypes = []EventType{
	EventUserCreated,
	EventUserStatusChanged,
	EventProductCreated,
	EventStockChanged,
	EventOrderCreated,
	EventOrderStatusChanged,
	EventOrderItemsChanged,
}

// Event represents a domain event emitted by the stores.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  int64       `json:"entity_id"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserStatusChangedPayload payload.
type UserStatusChangedPayload struct {
	OldStatus domain.UserStatus `json:"old_status"`
	NewStatus domain.UserStatus `json:"new_status"`
}

// ProductCreatedPayload payload.
type ProductCreatedPayload struct {
	SKU      string                 `json:"sku"`
	Category domain.ProductCategory `json:"category"`
}

// StockChangedPayload payload.
type StockChangedPayload struct {
	SKU           string `json:"sku"`
	PreviousStock int    `json:"previous_stock"`
	CurrentStock  int    `json:"current_stock"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	OrderNumber string `json:"order_number"`
	CustomerID  int64  `json:"customer_id"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}

// OrderItemsChangedPayload payload.
type OrderItemsChangedPayload struct {
	ItemCount   int             `json:"item_count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
