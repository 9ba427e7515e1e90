package orders

import (
	"time"

	"github.com/mesh-intelligence/tableside/pkg/types"
)

// Factory creates orders with IDs from its own sequence. Two factories never
// share a counter unless given the same Sequence.
type Factory struct {
	seq *Sequence
	now func() time.Time
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithSequence sets the ID sequence. The default starts at 1.
func WithSequence(seq *Sequence) FactoryOption {
	return func(f *Factory) {
		if seq != nil {
			f.seq = seq
		}
	}
}

// WithClock sets the source of order times.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFactory creates a factory.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{seq: NewSequence(), now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create validates the header and returns a new PLACED order. Invalid input
// fails before an ID is consumed, so issued IDs have no gaps caused by
// rejected calls.
func (f *Factory) Create(table int, staffID string) (*types.Order, error) {
	if err := types.ValidateOrderHeader(table, staffID); err != nil {
		return nil, err
	}
	return types.NewOrder(types.OrderID(f.seq.Next()), table, staffID, f.now())
}

// LastID returns the most recently issued ID.
func (f *Factory) LastID() types.OrderID {
	return types.OrderID(f.seq.Current())
}
