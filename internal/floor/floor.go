// Package floor coordinates orders with table occupancy.
//
// A Floor owns the pending-order queue and the table registry and applies
// every step that touches both under one lock: submitting an order occupies
// its table, completing it frees the table. Callers never update table
// status for orders themselves.
package floor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/tableside/internal/ledger"
	"github.com/mesh-intelligence/tableside/internal/menu"
	"github.com/mesh-intelligence/tableside/internal/orders"
	"github.com/mesh-intelligence/tableside/internal/roster"
	"github.com/mesh-intelligence/tableside/internal/tables"
	"github.com/mesh-intelligence/tableside/pkg/types"
)

// ErrQueueEmpty is returned by CompleteNext when no order is queued.
var ErrQueueEmpty = errors.New("no orders are queued")

// Recorder receives every order leaving the queue through completion or
// cancellation. A failing Recorder aborts the step.
type Recorder interface {
	Record(ctx context.Context, order *types.Order, completedAt time.Time) (ledger.Entry, error)
}

// Floor is the order and table state engine of one restaurant floor.
// It is safe for concurrent use. Read views never observe a half-applied
// submission or completion.
type Floor struct {
	mu sync.RWMutex

	catalog  *menu.Catalog
	registry *tables.Registry
	queue    *orders.Queue
	factory  *orders.Factory
	staff    *roster.Directory
	recorder Recorder
	policy   string
	now      func() time.Time
	log      *zap.Logger

	// finished holds the IDs of orders completed or cancelled on this floor.
	finished map[types.OrderID]bool
}

// Option configures a Floor.
type Option func(*Floor)

// WithRoster restricts orders to staff on the roster. An empty roster
// admits any non-empty staff ID.
func WithRoster(d *roster.Directory) Option {
	return func(f *Floor) { f.staff = d }
}

// WithRecorder sets where completed orders are recorded.
func WithRecorder(r Recorder) Option {
	return func(f *Floor) { f.recorder = r }
}

// WithPolicy sets the table policy, types.PolicyExclusive or
// types.PolicyShared.
func WithPolicy(policy string) Option {
	return func(f *Floor) { f.policy = policy }
}

// WithFactory sets the order factory. The default starts IDs at 1.
func WithFactory(factory *orders.Factory) Option {
	return func(f *Floor) {
		if factory != nil {
			f.factory = factory
		}
	}
}

// WithClock sets the source of completion times.
func WithClock(now func() time.Time) Option {
	return func(f *Floor) {
		if now != nil {
			f.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Floor) {
		if l != nil {
			f.log = l
		}
	}
}

// New creates a floor over a catalog and a table registry with an empty
// queue.
func New(catalog *menu.Catalog, registry *tables.Registry, opts ...Option) (*Floor, error) {
	if catalog == nil || registry == nil {
		return nil, fmt.Errorf("%w: floor needs a catalog and a table registry", types.ErrInvalidArgument)
	}
	f := &Floor{
		catalog:  catalog,
		registry: registry,
		queue:    orders.NewQueue(),
		factory:  orders.NewFactory(),
		staff:    roster.New(nil),
		policy:   types.PolicyExclusive,
		now:      time.Now,
		log:      zap.NewNop(),
		finished: make(map[types.OrderID]bool),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.staff == nil {
		f.staff = roster.New(nil)
	}
	switch f.policy {
	case "":
		f.policy = types.PolicyExclusive
	case types.PolicyExclusive, types.PolicyShared:
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrPolicyUnknown, f.policy)
	}
	return f, nil
}

// Catalog returns the menu.
func (f *Floor) Catalog() *menu.Catalog { return f.catalog }

// Roster returns the staff directory.
func (f *Floor) Roster() *roster.Directory { return f.staff }

// Policy returns the table policy in effect.
func (f *Floor) Policy() string { return f.policy }

// NewOrder creates an order for a table and a server. The order is not
// queued until Submit.
func (f *Floor) NewOrder(table int, staffID string) (*types.Order, error) {
	if err := types.ValidateOrderHeader(table, staffID); err != nil {
		return nil, err
	}
	if _, ok := f.registry.Table(table); !ok {
		return nil, fmt.Errorf("%w: %d", types.ErrUnknownTable, table)
	}
	if err := f.checkStaff(staffID); err != nil {
		return nil, err
	}
	order, err := f.factory.Create(table, staffID)
	if err != nil {
		return nil, err
	}
	f.log.Debug("order created",
		zap.Int64("order_id", int64(order.ID())),
		zap.Int("table", table),
		zap.String("staff_id", order.WaitStaffID()))
	return order, nil
}

func (f *Floor) checkStaff(staffID string) error {
	if f.staff.Empty() {
		return nil
	}
	if _, ok := f.staff.Lookup(staffID); !ok {
		return fmt.Errorf("%w: %q", types.ErrUnknownStaff, staffID)
	}
	return nil
}

// AddItem resolves an item in the catalog and adds it to order.
func (f *Floor) AddItem(order *types.Order, category, item string, quantity int) (*types.MenuItem, error) {
	if order == nil {
		return nil, types.ErrNilOrder
	}
	if err := f.checkOpen(order); err != nil {
		return nil, err
	}
	mi, ok := f.catalog.Item(category, item)
	if !ok {
		return nil, fmt.Errorf("%w: %s / %s", types.ErrUnknownMenuItem, category, item)
	}
	if err := order.AddItem(mi, quantity); err != nil {
		return nil, err
	}
	return mi, nil
}

// RemoveItem resolves an item in the catalog and drops its line from order.
// Reports whether a line was removed. Closed orders are rejected like in
// AddItem.
func (f *Floor) RemoveItem(order *types.Order, category, item string) (bool, error) {
	if order == nil {
		return false, types.ErrNilOrder
	}
	if err := f.checkOpen(order); err != nil {
		return false, err
	}
	mi, ok := f.catalog.Item(category, item)
	if !ok {
		return false, nil
	}
	return order.RemoveItem(mi), nil
}

// checkOpen rejects terminal orders and orders this floor already finished.
func (f *Floor) checkOpen(order *types.Order) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.checkOpenLocked(order)
}

func (f *Floor) checkOpenLocked(order *types.Order) error {
	if order.Status().Terminal() || f.finished[order.ID()] {
		return fmt.Errorf("%w: order %d", types.ErrOrderClosed, order.ID())
	}
	return nil
}

// Submit queues order and occupies its table. Either both happen or
// neither does.
func (f *Floor) Submit(order *types.Order) error {
	if order == nil {
		return types.ErrNilOrder
	}
	if order.Len() == 0 {
		return fmt.Errorf("%w: order %d", types.ErrEmptyOrder, order.ID())
	}
	if err := f.checkStaff(order.WaitStaffID()); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.checkOpenLocked(order); err != nil {
		return err
	}

	n := order.TableNumber()
	status, ok := f.registry.Status(n)
	if !ok {
		return fmt.Errorf("%w: %d", types.ErrUnknownTable, n)
	}
	if !f.admits(status) {
		return fmt.Errorf("%w: table %d is %s", types.ErrTableUnavailable, n, status)
	}
	if err := f.queue.Submit(order); err != nil {
		return err
	}
	if err := f.registry.SetStatus(n, types.TableOccupied); err != nil {
		f.queue.Remove(order)
		return err
	}

	f.log.Info("order submitted",
		zap.Int64("order_id", int64(order.ID())),
		zap.Int("table", n),
		zap.String("staff_id", order.WaitStaffID()),
		zap.String("total", order.TotalPrice().StringFixed(2)),
		zap.Int("queued", f.queue.Len()))
	return nil
}

func (f *Floor) admits(status types.TableStatus) bool {
	if status == types.TableVacant {
		return true
	}
	return f.policy == types.PolicyShared && status == types.TableOccupied
}

// Complete removes a queued order, records it and frees its table.
// If recording fails nothing changes.
func (f *Floor) Complete(ctx context.Context, id types.OrderID) (*types.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.queue.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: order %d", types.ErrOrderNotQueued, id)
	}
	if err := f.finishLocked(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CompleteNext completes the earliest queued order.
func (f *Floor) CompleteNext(ctx context.Context) (*types.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.queue.PeekHead()
	if !ok {
		return nil, ErrQueueEmpty
	}
	if err := f.finishLocked(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel marks a queued order CANCELLED and takes it off the floor like a
// completion. Paid orders cannot be cancelled.
func (f *Floor) Cancel(ctx context.Context, id types.OrderID) (*types.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.queue.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: order %d", types.ErrOrderNotQueued, id)
	}
	prev := order.Status()
	if err := order.Transition(types.OrderCancelled); err != nil {
		return nil, err
	}
	if err := f.finishLocked(ctx, order); err != nil {
		// Restore the status seen before the cancel attempt.
		_ = order.SetStatus(prev)
		return nil, err
	}
	return order, nil
}

func (f *Floor) finishLocked(ctx context.Context, order *types.Order) error {
	if f.recorder != nil {
		if _, err := f.recorder.Record(ctx, order, f.now()); err != nil {
			f.log.Warn("order not completed, ledger write failed",
				zap.Int64("order_id", int64(order.ID())), zap.Error(err))
			return fmt.Errorf("recording order %d: %w", order.ID(), err)
		}
	}
	f.queue.Remove(order)
	f.finished[order.ID()] = true
	vacated := f.releaseLocked(order.TableNumber())

	f.log.Info("order completed",
		zap.Int64("order_id", int64(order.ID())),
		zap.String("status", string(order.Status())),
		zap.Int("table", order.TableNumber()),
		zap.Bool("table_vacated", vacated),
		zap.Int("queued", f.queue.Len()))
	return nil
}

// releaseLocked frees a table unless another queued order still holds it.
func (f *Floor) releaseLocked(table int) bool {
	if f.queue.CountTable(table) > 0 {
		return false
	}
	if err := f.registry.SetStatus(table, types.TableVacant); err != nil {
		f.log.Error("freeing table", zap.Int("table", table), zap.Error(err))
		return false
	}
	return true
}

// ClearQueue discards every queued order without recording it and frees
// their tables. Returns the discarded orders in FIFO order.
func (f *Floor) ClearQueue() []*types.Order {
	f.mu.Lock()
	defer f.mu.Unlock()

	dropped := f.queue.Clear()
	freed := make(map[int]bool)
	for _, o := range dropped {
		if !freed[o.TableNumber()] {
			freed[o.TableNumber()] = f.releaseLocked(o.TableNumber())
		}
	}
	f.log.Warn("queue cleared", zap.Int("orders", len(dropped)), zap.Int("tables", len(freed)))
	return dropped
}

// SetOrderStatus moves a queued order along its lifecycle. Moving to
// CANCELLED through here keeps the order queued; use Cancel to take it off
// the floor.
func (f *Floor) SetOrderStatus(id types.OrderID, status types.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.queue.Get(id)
	if !ok {
		return fmt.Errorf("%w: order %d", types.ErrOrderNotQueued, id)
	}
	if err := order.Transition(status); err != nil {
		return err
	}
	f.log.Debug("order status changed",
		zap.Int64("order_id", int64(id)), zap.String("status", string(status)))
	return nil
}

// SetTableStatus sets a table status by hand, for example NEEDS_CLEANING
// after guests leave.
func (f *Floor) SetTableStatus(n int, status types.TableStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registry.SetStatus(n, status)
}

// Table returns a copy of table n.
func (f *Floor) Table(n int) (types.Table, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.registry.Table(n)
}

// Tables returns copies of all tables ordered by number.
func (f *Floor) Tables() []types.Table {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.registry.Tables()
}

// Queue returns the queued orders in FIFO order.
func (f *Floor) Queue() []*types.Order {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.queue.Snapshot()
}

// Order returns a queued order by ID.
func (f *Floor) Order(id types.OrderID) (*types.Order, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.queue.Get(id)
}

// QueueLen returns the number of queued orders.
func (f *Floor) QueueLen() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.queue.Len()
}
