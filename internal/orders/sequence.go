// Package orders creates orders and holds the pending-order queue.
package orders

import "sync/atomic"

// Sequence issues order IDs. Every call to Next returns a unique value
// strictly greater than all previous ones. Sequence is safe for concurrent
// use.
type Sequence struct {
	last atomic.Int64
}

// NewSequence creates a sequence whose first ID is 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// NewSequenceAt creates a sequence whose next ID is last+1.
func NewSequenceAt(last int64) *Sequence {
	s := &Sequence{}
	s.last.Store(last)
	return s
}

// Next returns the next ID.
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Current returns the most recently issued ID, or the starting point if none
// was issued yet.
func (s *Sequence) Current() int64 {
	return s.last.Load()
}
