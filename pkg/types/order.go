package types

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// OrderID identifies an order. IDs are positive and issued by a sequence.
type OrderID int64

// OrderStatus is a stage of the order lifecycle.
type OrderStatus string

// Order statuses. PLACED advances one step at a time to PAID; CANCELLED is
// reachable from any non-terminal status.
const (
	OrderPlaced    OrderStatus = "PLACED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderServed    OrderStatus = "SERVED"
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
)

// orderSuccessor maps each non-terminal status to the next forward status.
var orderSuccessor = map[OrderStatus]OrderStatus{
	OrderPlaced:    OrderPreparing,
	OrderPreparing: OrderReady,
	OrderReady:     OrderServed,
	OrderServed:    OrderPaid,
}

// Valid reports whether s is a recognized order status.
func (s OrderStatus) Valid() bool {
	_, forward := orderSuccessor[s]
	return forward || s == OrderPaid || s == OrderCancelled
}

// Terminal reports whether no further transition is possible from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderPaid || s == OrderCancelled
}

// CanTransition reports whether the lifecycle allows moving from one status
// to another. Staying in the same status is allowed.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	return to == OrderCancelled || orderSuccessor[from] == to
}

// ParseOrderStatus converts user input such as "ready" to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", wrapf(ErrInvalidStatus, "order status %q", s)
	}
	return st, nil
}

// OrderItem is one line of an order: a shared reference to a catalog item and
// a positive quantity. Line identity is the menu item alone.
type OrderItem struct {
	item     *MenuItem
	quantity int
}

// NewOrderItem validates and constructs a line.
func NewOrderItem(item *MenuItem, quantity int) (OrderItem, error) {
	if item == nil {
		return OrderItem{}, ErrNilMenuItem
	}
	if quantity <= 0 {
		return OrderItem{}, wrapf(ErrInvalidQuantity, "%d", quantity)
	}
	return OrderItem{item: item, quantity: quantity}, nil
}

// MenuItem returns the referenced catalog item.
func (l OrderItem) MenuItem() *MenuItem { return l.item }

// Quantity returns the line quantity.
func (l OrderItem) Quantity() int { return l.quantity }

// Key returns the identity of the line, which is that of its menu item.
func (l OrderItem) Key() MenuItemKey { return l.item.Key() }

// TotalPrice returns price × quantity, computed exactly on every call.
func (l OrderItem) TotalPrice() decimal.Decimal {
	return l.item.Price().Mul(decimal.NewFromInt(int64(l.quantity)))
}

// Order is a customer order at one table, taken by one server.
// Order is safe for concurrent use; identity is the ID.
type Order struct {
	id       OrderID
	table    int
	staffID  string
	placedAt time.Time

	mu     sync.RWMutex
	status OrderStatus
	lines  []*OrderItem
	byItem map[MenuItemKey]*OrderItem
}

// ValidateOrderHeader checks the arguments of an order before an ID is spent
// on it.
func ValidateOrderHeader(table int, staffID string) error {
	if table <= 0 {
		return wrapf(ErrInvalidTableNumber, "%d", table)
	}
	if strings.TrimSpace(staffID) == "" {
		return ErrInvalidStaffID
	}
	return nil
}

// NewOrder constructs an empty PLACED order. Callers normally obtain orders
// from an orders.Factory, which owns the ID sequence.
func NewOrder(id OrderID, table int, staffID string, placedAt time.Time) (*Order, error) {
	if id <= 0 {
		return nil, wrapf(ErrInvalidArgument, "order id must be positive, got %d", id)
	}
	if err := ValidateOrderHeader(table, staffID); err != nil {
		return nil, err
	}
	return &Order{
		id:       id,
		table:    table,
		staffID:  strings.TrimSpace(staffID),
		placedAt: placedAt,
		status:   OrderPlaced,
		byItem:   make(map[MenuItemKey]*OrderItem),
	}, nil
}

func (o *Order) ID() OrderID          { return o.id }
func (o *Order) TableNumber() int     { return o.table }
func (o *Order) WaitStaffID() string  { return o.staffID }
func (o *Order) OrderTime() time.Time { return o.placedAt }

// Equal reports whether both orders carry the same ID.
func (o *Order) Equal(other *Order) bool {
	return other != nil && o.id == other.id
}

// Status returns the current lifecycle status.
func (o *Order) Status() OrderStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

// SetStatus sets any recognized status without lifecycle checks, for
// external drivers that own the workflow. Returns ErrInvalidStatus for
// unknown values.
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.Valid() {
		return wrapf(ErrInvalidStatus, "order %d: %q", o.id, status)
	}
	o.mu.Lock()
	o.status = status
	o.mu.Unlock()
	return nil
}

// Transition moves the order to status if the lifecycle allows it.
// Returns ErrInvalidTransition otherwise.
func (o *Order) Transition(status OrderStatus) error {
	if !status.Valid() {
		return wrapf(ErrInvalidStatus, "order %d: %q", o.id, status)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if !CanTransition(o.status, status) {
		return wrapf(ErrInvalidTransition, "order %d: %s -> %s", o.id, o.status, status)
	}
	o.status = status
	return nil
}

// AddItem adds quantity of item. If the item already has a line its quantity
// grows; otherwise a new line is appended.
func (o *Order) AddItem(item *MenuItem, quantity int) error {
	if item == nil {
		return ErrNilMenuItem
	}
	if quantity <= 0 {
		return wrapf(ErrInvalidQuantity, "%d", quantity)
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	key := item.Key()
	if line, ok := o.byItem[key]; ok {
		if quantity > math.MaxInt-line.quantity {
			return wrapf(ErrInvalidQuantity, "%s: %d more would overflow line quantity %d", item.Name(), quantity, line.quantity)
		}
		line.quantity += quantity
		return nil
	}
	line := &OrderItem{item: item, quantity: quantity}
	o.byItem[key] = line
	o.lines = append(o.lines, line)
	return nil
}

// RemoveItem drops the whole line for item. Reports whether a line existed.
func (o *Order) RemoveItem(item *MenuItem) bool {
	if item == nil {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	key := item.Key()
	if _, ok := o.byItem[key]; !ok {
		return false
	}
	delete(o.byItem, key)
	for i, line := range o.lines {
		if line.Key() == key {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
			break
		}
	}
	return true
}

// Items returns a copy of the order lines in the order they were first added.
func (o *Order) Items() []OrderItem {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]OrderItem, len(o.lines))
	for i, line := range o.lines {
		out[i] = *line
	}
	return out
}

// Line returns the line for item, if any.
func (o *Order) Line(item *MenuItem) (OrderItem, bool) {
	if item == nil {
		return OrderItem{}, false
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	line, ok := o.byItem[item.Key()]
	if !ok {
		return OrderItem{}, false
	}
	return *line, true
}

// Len returns the number of lines.
func (o *Order) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.lines)
}

// TotalPrice returns the exact sum of all line totals.
func (o *Order) TotalPrice() decimal.Decimal {
	o.mu.RLock()
	defer o.mu.RUnlock()
	total := decimal.Zero
	for _, line := range o.lines {
		total = total.Add(line.TotalPrice())
	}
	return total
}

func (o *Order) String() string {
	return fmt.Sprintf("Order %d (table %d, staff %s, %s, %d items, %s)",
		o.id, o.table, o.staffID, o.Status(), o.Len(), o.TotalPrice().StringFixed(2))
}
