package orders

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/tableside/pkg/types"
)

// Queue is the FIFO of submitted orders awaiting completion. Orders are kept
// in submission order and indexed by ID so that any order can be removed
// regardless of its position. Queue is safe for concurrent use.
//
// The queue never touches table state; pairing submission and completion
// with table status is the caller's job.
type Queue struct {
	mu     sync.RWMutex
	orders []*types.Order
	byID   map[types.OrderID]*types.Order
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		orders: make([]*types.Order, 0, 16),
		byID:   make(map[types.OrderID]*types.Order),
	}
}

// Submit appends order to the tail. Returns ErrNilOrder for a nil order and
// ErrDuplicateOrder if an order with the same ID is already queued.
func (q *Queue) Submit(order *types.Order) error {
	if order == nil {
		return types.ErrNilOrder
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.byID[order.ID()]; ok {
		return fmt.Errorf("%w: order %d", types.ErrDuplicateOrder, order.ID())
	}
	q.orders = append(q.orders, order)
	q.byID[order.ID()] = order
	return nil
}

// PeekHead returns the earliest submitted order without removing it.
func (q *Queue) PeekHead() (*types.Order, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if len(q.orders) == 0 {
		return nil, false
	}
	return q.orders[0], true
}

// DequeueHead removes and returns the earliest submitted order.
func (q *Queue) DequeueHead() (*types.Order, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.orders) == 0 {
		return nil, false
	}
	head := q.orders[0]
	q.orders[0] = nil
	if len(q.orders) == 1 {
		q.orders = q.orders[:0]
	} else {
		q.orders = q.orders[1:]
	}
	delete(q.byID, head.ID())
	return head, true
}

// Remove removes the queued order with the same ID as order, wherever it
// sits. Reports whether an order was removed.
func (q *Queue) Remove(order *types.Order) bool {
	if order == nil {
		return false
	}
	_, ok := q.RemoveID(order.ID())
	return ok
}

// RemoveID removes the order with the given ID and returns it.
func (q *Queue) RemoveID(id types.OrderID) (*types.Order, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	order, ok := q.byID[id]
	if !ok {
		return nil, false
	}
	delete(q.byID, id)
	for i, o := range q.orders {
		if o.ID() == id {
			copy(q.orders[i:], q.orders[i+1:])
			q.orders[len(q.orders)-1] = nil
			q.orders = q.orders[:len(q.orders)-1]
			break
		}
	}
	return order, true
}

// Get returns the queued order with the given ID.
func (q *Queue) Get(id types.OrderID) (*types.Order, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	order, ok := q.byID[id]
	return order, ok
}

// Contains reports whether an order with the given ID is queued.
func (q *Queue) Contains(id types.OrderID) bool {
	_, ok := q.Get(id)
	return ok
}

// Snapshot returns the queued orders in FIFO order. The slice is independent
// of the queue; the orders themselves are shared.
func (q *Queue) Snapshot() []*types.Order {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]*types.Order, len(q.orders))
	copy(out, q.orders)
	return out
}

// CountTable returns the number of queued orders for a table.
func (q *Queue) CountTable(table int) int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	n := 0
	for _, o := range q.orders {
		if o.TableNumber() == table {
			n++
		}
	}
	return n
}

// Len returns the number of queued orders.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.orders)
}

// IsEmpty reports whether no orders are queued.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// Clear discards every queued order and returns them in FIFO order.
func (q *Queue) Clear() []*types.Order {
	q.mu.Lock()
	defer q.mu.Unlock()
	dropped := q.orders
	q.orders = make([]*types.Order, 0, 16)
	q.byID = make(map[types.OrderID]*types.Order)
	return dropped
}
