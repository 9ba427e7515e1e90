// Package tables owns the fixed set of dining tables and their status.
package tables

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/tableside/pkg/types"
)

// Registry holds every table of the floor for the lifetime of the process.
// Tables are created once; only their status changes. Registry is safe for
// concurrent use: status changes take the write lock, reads take the read
// lock and return copies.
type Registry struct {
	mu     sync.RWMutex
	tables map[int]*types.Table
	order  []int
	log    *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for status changes.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry creates tables numbered 1..count, each with the same capacity.
func NewRegistry(count, capacity int, opts ...Option) (*Registry, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", types.ErrTablesInvalid, count)
	}
	tables := make([]*types.Table, 0, count)
	for n := 1; n <= count; n++ {
		t, err := types.NewTable(n, capacity)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return newRegistry(tables, opts...), nil
}

// FromTables builds a registry from explicitly constructed tables, for floors
// whose tables differ in size. Table numbers must be unique.
func FromTables(tables []*types.Table, opts ...Option) (*Registry, error) {
	seen := make(map[int]bool, len(tables))
	for _, t := range tables {
		if t == nil {
			return nil, fmt.Errorf("%w: nil table", types.ErrInvalidArgument)
		}
		if seen[t.Number()] {
			return nil, fmt.Errorf("%w: duplicate table number %d", types.ErrInvalidArgument, t.Number())
		}
		seen[t.Number()] = true
	}
	return newRegistry(tables, opts...), nil
}

func newRegistry(tables []*types.Table, opts ...Option) *Registry {
	r := &Registry{
		tables: make(map[int]*types.Table, len(tables)),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, t := range tables {
		r.tables[t.Number()] = t
		r.order = append(r.order, t.Number())
	}
	sort.Ints(r.order)
	return r
}

// Table returns a copy of table n. The copy does not track later changes.
func (r *Registry) Table(n int) (types.Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[n]
	if !ok {
		return types.Table{}, false
	}
	return *t, true
}

// Status returns the status of table n.
func (r *Registry) Status(n int) (types.TableStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[n]
	if !ok {
		return "", false
	}
	return t.Status(), true
}

// SetStatus sets the status of table n. Any recognized status may follow any
// other. Returns ErrUnknownTable or ErrInvalidStatus on bad input, leaving
// the table unchanged.
func (r *Registry) SetStatus(n int, status types.TableStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setStatusLocked(n, status)
}

// CompareAndSet sets the status of table n only if its current status is one
// of from. It reports whether the swap happened.
func (r *Registry) CompareAndSet(n int, status types.TableStatus, from ...types.TableStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[n]
	if !ok {
		return false, fmt.Errorf("%w: %d", types.ErrUnknownTable, n)
	}
	for _, f := range from {
		if t.Status() == f {
			return true, r.setStatusLocked(n, status)
		}
	}
	return false, nil
}

func (r *Registry) setStatusLocked(n int, status types.TableStatus) error {
	t, ok := r.tables[n]
	if !ok {
		return fmt.Errorf("%w: %d", types.ErrUnknownTable, n)
	}
	prev := t.Status()
	if err := t.SetStatus(status); err != nil {
		return err
	}
	if prev != status {
		r.log.Debug("table status changed",
			zap.Int("table", n),
			zap.String("from", string(prev)),
			zap.String("to", string(status)))
	}
	return nil
}

// Tables returns copies of all tables ordered by number.
func (r *Registry) Tables() []types.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.Table, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, *r.tables[n])
	}
	return out
}

// Count returns the number of tables per status.
func (r *Registry) Count() map[types.TableStatus]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[types.TableStatus]int)
	for _, t := range r.tables {
		counts[t.Status()]++
	}
	return counts
}

// Len returns the number of tables.
func (r *Registry) Len() int {
	return len(r.order)
}
