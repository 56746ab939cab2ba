package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newOrder(side Side, ts uint64, price, qty uint32) *LimitOrder {
	return &LimitOrder{Side: side, TimestampNS: ts, Price: price, Quantity: qty}
}

// S1 — exact single match.
func TestMatchAndInsert_ExactMatch(t *testing.T) {
	ob := NewOrderBook()

	bid := newOrder(Bid, 1, 50000, 800)
	ob.MatchAndInsert(bid)

	ask := newOrder(Ask, 2, 50000, 800)
	res := ob.MatchAndInsert(ask)

	assert.Equal(t, 1, res.Trades)
	assert.EqualValues(t, 800, bid.FilledQuantity)
	assert.EqualValues(t, 800, ask.FilledQuantity)
	assert.EqualValues(t, -40_000_000, bid.Balance)
	assert.EqualValues(t, 40_000_000, ask.Balance)
	assert.Equal(t, 0, ob.BidDepth())
	assert.Equal(t, 0, ob.AskDepth())
}

// S2 — partial aggressor remainder rests.
func TestMatchAndInsert_PartialAggressorRests(t *testing.T) {
	ob := NewOrderBook()

	ask := newOrder(Ask, 1, 15000, 100)
	ob.MatchAndInsert(ask)

	bid := newOrder(Bid, 2, 15000, 150)
	res := ob.MatchAndInsert(bid)

	assert.True(t, res.Rested)
	assert.EqualValues(t, 100, ask.FilledQuantity)
	assert.EqualValues(t, 100, bid.FilledQuantity)
	assert.EqualValues(t, 50, bid.Remaining())
	assert.EqualValues(t, -1_500_000, bid.Balance)
	assert.EqualValues(t, 1_500_000, ask.Balance)
	assert.Equal(t, 1, ob.BidDepth())
}

// S3 — price-time priority on the ask side: the better-priced ask fills
// first even though it arrived later.
func TestMatchAndInsert_PriceTimePriority(t *testing.T) {
	ob := NewOrderBook()

	askWorseEarlier := newOrder(Ask, 1, 15000, 50)
	ob.MatchAndInsert(askWorseEarlier)

	askBest := newOrder(Ask, 2, 14900, 50) // better price, later insertion
	ob.MatchAndInsert(askBest)

	bid := newOrder(Bid, 3, 15000, 75)
	ob.MatchAndInsert(bid)

	assert.EqualValues(t, 75, bid.FilledQuantity)
	assert.EqualValues(t, 50, askBest.FilledQuantity, "better price fills first")
	assert.EqualValues(t, 25, askWorseEarlier.FilledQuantity)
	assert.EqualValues(t, -(50*14900 + 25*15000), bid.Balance)
	assert.Equal(t, 0, ob.BidDepth())
	assert.Equal(t, 1, ob.AskDepth())
}

// S4 — aggressor crosses at the resting order's price, not its own.
func TestMatchAndInsert_TradesAtRestingPrice(t *testing.T) {
	ob := NewOrderBook()

	bid := newOrder(Bid, 1, 15100, 100)
	ob.MatchAndInsert(bid)

	ask := newOrder(Ask, 2, 15000, 100)
	ob.MatchAndInsert(ask)

	assert.EqualValues(t, 100, bid.FilledQuantity)
	assert.EqualValues(t, 100, ask.FilledQuantity)
	assert.EqualValues(t, -1_510_000, bid.Balance)
	assert.EqualValues(t, 1_510_000, ask.Balance)
}

// P7 — lazy-cleanup equivalence: a cancelled top is skipped transparently.
func TestBestBidAsk_SkipsCancelledTop(t *testing.T) {
	ob := NewOrderBook()

	stale := newOrder(Bid, 1, 16000, 10)
	ob.MatchAndInsert(stale)
	stale.IsCancelled = true

	live := newOrder(Bid, 2, 15000, 10)
	ob.MatchAndInsert(live)

	bestBid, bestAsk := ob.BestBidAsk()
	assert.EqualValues(t, 15000, bestBid)
	assert.EqualValues(t, 0, bestAsk)
}

func TestBestBidAsk_EmptySideReportsZero(t *testing.T) {
	ob := NewOrderBook()
	bestBid, bestAsk := ob.BestBidAsk()
	assert.EqualValues(t, 0, bestBid)
	assert.EqualValues(t, 0, bestAsk)
}

// Equal prices cross; the remainder at that price rests.
func TestMatchAndInsert_EqualPriceAggressorRemainderRests(t *testing.T) {
	ob := NewOrderBook()

	ask := newOrder(Ask, 1, 100, 10)
	ob.MatchAndInsert(ask)

	bid := newOrder(Bid, 2, 100, 15)
	res := ob.MatchAndInsert(bid)

	assert.True(t, res.Rested)
	assert.EqualValues(t, 5, bid.Remaining())
}
