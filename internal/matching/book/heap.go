package book

import "container/heap"

// orderHeap is a container/heap.Interface over back-references to arena
// entries. It never owns the LimitOrder it points to; the arena does. The
// heap may transiently hold references to cancelled or fully filled
// entries — lazy deletion is handled at read time (see peekTop) rather
// than by eagerly unlinking on cancel, matching spec.md's "Heap with lazy
// deletion" design note.
type orderHeap struct {
	side  Side
	items []*LimitOrder
}

func newOrderHeap(side Side) *orderHeap {
	h := &orderHeap{side: side}
	heap.Init(h)
	return h
}

func (h *orderHeap) Len() int { return len(h.items) }

func (h *orderHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Price == b.Price {
		return a.TimestampNS < b.TimestampNS
	}
	if h.side == Bid {
		return a.Price > b.Price // best bid = highest price
	}
	return a.Price < b.Price // best ask = lowest price
}

func (h *orderHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *orderHeap) Push(x interface{}) {
	h.items = append(h.items, x.(*LimitOrder))
}

func (h *orderHeap) Pop() interface{} {
	n := len(h.items)
	item := h.items[n-1]
	h.items[n-1] = nil
	h.items = h.items[:n-1]
	return item
}

// peekTop pops stale (cancelled or fully filled) entries off the top of the
// heap until a live one surfaces or the heap empties, then returns that
// live entry without removing it. This is the lazy-deletion cleanup spec.md
// §4.3 requires QuoteBestBidAsk (and, inline, the matcher) to perform.
func (h *orderHeap) peekTop() *LimitOrder {
	for h.Len() > 0 {
		top := h.items[0]
		if top.Resting() {
			return top
		}
		heap.Pop(h)
	}
	return nil
}

func (h *orderHeap) push(o *LimitOrder) {
	heap.Push(h, o)
}

// popTop removes and returns the current top, which the caller must already
// know is fully filled (the matcher pops only once a resting order's
// remaining quantity has hit zero).
func (h *orderHeap) popTop() {
	heap.Pop(h)
}
