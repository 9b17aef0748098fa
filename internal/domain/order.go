package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates lifecycle states for orders.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderLine is a priced snapshot of a product inside an order. Name and
// price are copied at add time, not live-joined against the catalog.
type OrderLine struct {
	ProductID   int64
	ProductName string
	ProductSKU  string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// NewOrderLine builds a line for quantity units of a product.
func NewOrderLine(productID int64, productName, productSKU string, unitPrice decimal.Decimal, quantity int) OrderLine {
	return OrderLine{
		ProductID:   productID,
		ProductName: productName,
		ProductSKU:  productSKU,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}
}

// TotalPrice is unitPrice times quantity, zero if the quantity is absent.
func (l OrderLine) TotalPrice() decimal.Decimal {
	if l.Quantity == 0 {
		return decimal.Zero
	}
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Equal defines line identity by (productID, productSKU) only. Name, price
// and quantity do not participate, so two lines for the same product are
// interchangeable for membership even when priced differently.
func (l OrderLine) Equal(other OrderLine) bool {
	return l.ProductID == other.ProductID && l.ProductSKU == other.ProductSKU
}

// Order is the aggregate for customer purchases.
type Order struct {
	Lifecycle
	OrderNumber     string
	CustomerID      int64
	Status          OrderStatus
	TotalAmount     decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingAmount  decimal.Decimal
	ShippingAddress string
	BillingAddress  string
	OrderDate       time.Time
	ShippedDate     *time.Time
	DeliveredDate   *time.Time
	items           []OrderLine
}

// NewOrder constructs a PENDING order with zero amounts and no items.
func NewOrder(orderNumber string, customerID int64) *Order {
	return &Order{
		Lifecycle:      NewLifecycle(),
		OrderNumber:    orderNumber,
		CustomerID:     customerID,
		Status:         OrderStatusPending,
		TotalAmount:    decimal.Zero,
		TaxAmount:      decimal.Zero,
		ShippingAmount: decimal.Zero,
		OrderDate:      time.Now(),
	}
}

// Items returns a copy of the current line list.
func (o *Order) Items() []OrderLine {
	out := make([]OrderLine, len(o.items))
	copy(out, o.items)
	return out
}

// SetItems replaces the line list wholesale and re-derives the total.
func (o *Order) SetItems(items []OrderLine) {
	o.items = make([]OrderLine, len(items))
	copy(o.items, items)
	o.recalculateTotal()
}

// AddItem appends a line and re-derives the total. A nil line is ignored.
func (o *Order) AddItem(line *OrderLine) {
	if line == nil {
		return
	}
	o.items = append(o.items, *line)
	o.recalculateTotal()
	o.Touch()
}

// RemoveItem drops the first line equal to the given one, by line identity.
// Removing a line not present is a no-op.
func (o *Order) RemoveItem(line OrderLine) {
	for i, existing := range o.items {
		if existing.Equal(line) {
			o.items = append(o.items[:i], o.items[i+1:]...)
			o.recalculateTotal()
			o.Touch()
			return
		}
	}
}

// ItemCount returns the number of lines.
func (o *Order) ItemCount() int {
	return len(o.items)
}

// Subtotal is the sum of line totals over current items.
func (o *Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range o.items {
		subtotal = subtotal.Add(line.TotalPrice())
	}
	return subtotal
}

// SetCharges writes tax and shipping amounts and re-derives the total.
func (o *Order) SetCharges(tax, shipping decimal.Decimal) {
	o.TaxAmount = tax
	o.ShippingAmount = shipping
	o.recalculateTotal()
	o.Touch()
}

// SetStatus writes the status and touches UpdatedAt. Transitions are
// deliberately unguarded; any status can be written from any other.
func (o *Order) SetStatus(status OrderStatus) {
	o.Status = status
	o.Touch()
}

// Confirm moves the order to CONFIRMED.
func (o *Order) Confirm() {
	o.SetStatus(OrderStatusConfirmed)
}

// Ship moves the order to SHIPPED and stamps the shipped date.
func (o *Order) Ship() {
	now := time.Now()
	o.ShippedDate = &now
	o.SetStatus(OrderStatusShipped)
}

// Deliver moves the order to DELIVERED and stamps the delivered date.
func (o *Order) Deliver() {
	now := time.Now()
	o.DeliveredDate = &now
	o.SetStatus(OrderStatusDelivered)
}

// Cancel moves the order to CANCELLED.
func (o *Order) Cancel() {
	o.SetStatus(OrderStatusCancelled)
}

func (o *Order) IsPending() bool   { return o.Status == OrderStatusPending }
func (o *Order) IsConfirmed() bool { return o.Status == OrderStatusConfirmed }
func (o *Order) IsShipped() bool   { return o.Status == OrderStatusShipped }
func (o *Order) IsDelivered() bool { return o.Status == OrderStatusDelivered }
func (o *Order) IsCancelled() bool { return o.Status == OrderStatusCancelled }

func (o *Order) recalculateTotal() {
	o.TotalAmount = o.Subtotal().Add(o.TaxAmount).Add(o.ShippingAmount)
}
