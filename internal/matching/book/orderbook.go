package book

import "sync"

// OrderBook holds the two priority heaps for a single instrument and
// implements the continuous-auction, price-time-priority matching
// algorithm described in spec.md §4.4. The heaps hold non-owning
// back-references into an Arena; the OrderBook never allocates or frees
// LimitOrder records itself.
type OrderBook struct {
	mu   sync.Mutex
	bids *orderHeap
	asks *orderHeap
}

// NewOrderBook creates an empty order book.
func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids: newOrderHeap(Bid),
		asks: newOrderHeap(Ask),
	}
}

// MatchResult summarizes one MatchAndInsert call purely for ambient
// telemetry (see internal/matching/engine/metrics.go) — it is never persisted and is
// not a trade tape: spec.md's non-goal is streaming/replayable trade
// history to an external observer, not an in-process return value that the
// caller discards after incrementing a counter.
type MatchResult struct {
	Trades         int
	TradedQuantity uint64
	Rested         bool
}

// MatchAndInsert runs newOrder against the opposite side of the book,
// mutating both newOrder and any resting orders it trades against in
// place, then — if any quantity remains — pushes newOrder onto its own
// side's heap. It implements spec.md §4.4 verbatim, including the lazy
// popping of stale (cancelled or fully filled) tops.
func (b *OrderBook) MatchAndInsert(newOrder *LimitOrder) MatchResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.matchAndInsertLocked(newOrder)
}

// MatchAndInsertAt assigns newOrder's TimestampNS by calling assignTimestamp
// while holding the book's lock, then runs the same algorithm as
// MatchAndInsert. Assigning the timestamp inside the critical section
// guarantees that whichever concurrent PlaceOrder call against this
// instrument acquires the lock first is also the one that receives the
// earlier timestamp, so spec.md §5's "the matcher assigns timestamps in
// this order" guarantee holds even when the caller's own clock read and
// its priority-insert would otherwise be two separate, racy steps.
func (b *OrderBook) MatchAndInsertAt(newOrder *LimitOrder, assignTimestamp func() uint64) MatchResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	newOrder.TimestampNS = assignTimestamp()
	return b.matchAndInsertLocked(newOrder)
}

// matchAndInsertLocked is MatchAndInsert's body; callers must hold b.mu.
func (b *OrderBook) matchAndInsertLocked(newOrder *LimitOrder) MatchResult {
	var result MatchResult

	opposite := b.asks
	if newOrder.Side == Ask {
		opposite = b.bids
	}

	for newOrder.Remaining() > 0 {
		top := opposite.peekTop()
		if top == nil {
			break
		}

		// Strict price-crossing test (spec.md §4.4 step 3). Equal prices cross.
		if newOrder.Side == Bid {
			if top.Price > newOrder.Price {
				break
			}
		} else {
			if top.Price < newOrder.Price {
				break
			}
		}

		available := top.Remaining()
		want := newOrder.Remaining()
		q := available
		if want < q {
			q = want
		}

		// Trade price is always the resting order's price.
		tradePrice := int64(top.Price)
		cash := int64(q) * tradePrice

		if newOrder.Side == Bid {
			newOrder.Balance -= cash
			top.Balance += cash
		} else {
			newOrder.Balance += cash
			top.Balance -= cash
		}

		newOrder.FilledQuantity += q
		top.FilledQuantity += q

		result.Trades++
		result.TradedQuantity += uint64(q)

		if top.FilledQuantity == top.Quantity {
			opposite.popTop()
		}
	}

	if newOrder.Remaining() > 0 {
		if newOrder.Side == Bid {
			b.bids.push(newOrder)
		} else {
			b.asks.push(newOrder)
		}
		result.Rested = true
	}

	return result
}

// BestBidAsk peels stale entries off both heap tops and reports the live
// best price on each side, or 0 ("no quote available") if a side is empty.
// It mutates heap shape (the lazy cleanup) but never mutates order records.
func (b *OrderBook) BestBidAsk() (bestBid, bestAsk uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if top := b.bids.peekTop(); top != nil {
		bestBid = top.Price
	}
	if top := b.asks.peekTop(); top != nil {
		bestAsk = top.Price
	}
	return bestBid, bestAsk
}

// BidDepth and AskDepth report the raw heap length (including stale
// entries awaiting lazy removal), used only for operational metrics.
func (b *OrderBook) BidDepth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.Len()
}

func (b *OrderBook) AskDepth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.asks.Len()
}
