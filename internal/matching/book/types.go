// Package book implements the per-instrument order book: the arena that
// owns order records, the lazily-deleted price-time priority heaps, and the
// continuous-auction matching algorithm described in spec.md §3-§4.4.
package book

// Side identifies which side of the book an order rests on.
type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "Bid"
	}
	return "Ask"
}

// LimitOrder is the mutable record the arena owns for the lifetime of the
// process. Once appended, its index never changes, so back-references held
// by the heap remain valid for as long as the process runs.
//
// Invariants (spec.md §3):
//   - 0 <= FilledQuantity <= Quantity
//   - IsCancelled is monotonic: once true, never false again.
//   - IsCancelled implies FilledQuantity is frozen.
type LimitOrder struct {
	Side            Side
	TimestampNS     uint64
	Price           uint32
	Quantity        uint32
	FilledQuantity  uint32
	Balance         int64
	IsCancelled     bool
}

// Remaining returns the unfilled quantity.
func (o *LimitOrder) Remaining() uint32 {
	return o.Quantity - o.FilledQuantity
}

// Resting reports whether the order still belongs on a heap: not cancelled
// and not fully filled. A resting check is what lazy deletion tests for at
// the top of a heap.
func (o *LimitOrder) Resting() bool {
	return !o.IsCancelled && o.FilledQuantity < o.Quantity
}

// Snapshot is the read-only view returned by QueryOrder.
type Snapshot struct {
	ID             uint64
	TimestampNS    uint64
	Balance        int64
	Price          uint32
	Quantity       uint32
	FilledQuantity uint32
	IsCancelled    bool
	Found          bool
}
