package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdoElHodaky/tradsys-clob/internal/matching/book"
	clobErrors "github.com/abdoElHodaky/tradsys-clob/pkg/errors"
)

// fakeClock hands out a fixed, strictly increasing sequence so scenario
// assertions don't depend on wall-clock timing.
func fakeClock() ClockFunc {
	var n uint64
	return func() uint64 {
		n++
		return n
	}
}

// S5 — cancel then place: a cancelled resting order never trades.
func TestEngine_CancelThenPlace_NoMatch(t *testing.T) {
	e := New(nil, nil, fakeClock())
	inst := e.AddInstrument("Example Corp", "EX")

	bidID := e.PlaceOrder(inst, book.Bid, 15000, 100)
	require.NoError(t, e.CancelOrder(bidID))

	askID := e.PlaceOrder(inst, book.Ask, 15000, 100)

	bidSnap := e.QueryOrder(bidID)
	askSnap := e.QueryOrder(askID)

	assert.True(t, bidSnap.IsCancelled)
	assert.EqualValues(t, 0, bidSnap.FilledQuantity)
	assert.EqualValues(t, 0, askSnap.FilledQuantity, "ask should not trade against a cancelled bid")
}

// S6 — placing against an unknown instrument is recorded, not an error.
func TestEngine_PlaceOrder_UnknownInstrument(t *testing.T) {
	e := New(nil, nil, fakeClock())

	id := e.PlaceOrder(99, book.Bid, 100, 10)

	snap := e.QueryOrder(id)
	assert.True(t, snap.Found)
	assert.True(t, snap.IsCancelled)
}

// P6 — cancel is a one-shot transition: it succeeds once, then reports
// AlreadyTerminal on every subsequent call against the same id.
func TestEngine_CancelOrder_SecondCallIsAlreadyTerminal(t *testing.T) {
	e := New(nil, nil, fakeClock())
	inst := e.AddInstrument("Example Corp", "EX")

	id := e.PlaceOrder(inst, book.Bid, 100, 10)
	require.NoError(t, e.CancelOrder(id))

	err := e.CancelOrder(id)
	require.Error(t, err)
	assert.True(t, clobErrors.Is(err, clobErrors.AlreadyTerminal))

	snap := e.QueryOrder(id)
	assert.True(t, snap.IsCancelled)
}

// Cancelling an order that already traded to completion also reports
// AlreadyTerminal rather than silently succeeding.
func TestEngine_CancelOrder_FullyFilledIsAlreadyTerminal(t *testing.T) {
	e := New(nil, nil, fakeClock())
	inst := e.AddInstrument("Example Corp", "EX")

	bidID := e.PlaceOrder(inst, book.Bid, 100, 10)
	e.PlaceOrder(inst, book.Ask, 100, 10)

	err := e.CancelOrder(bidID)
	require.Error(t, err)
	assert.True(t, clobErrors.Is(err, clobErrors.AlreadyTerminal))
}

// P6 (unknown id) — cancelling an id that was never issued reports an error.
func TestEngine_CancelOrder_UnknownID(t *testing.T) {
	e := New(nil, nil, fakeClock())
	e.AddInstrument("Example Corp", "EX")

	err := e.CancelOrder(EncodeID(book.Bid, 42))
	require.Error(t, err)
	assert.True(t, clobErrors.Is(err, clobErrors.UnknownOrder))
}

// P8 — ids on opposite sides never collide, even at the same arena index.
func TestEngine_EncodeID_DisambiguatesSides(t *testing.T) {
	e := New(nil, nil, fakeClock())
	inst := e.AddInstrument("Example Corp", "EX")

	bidID := e.PlaceOrder(inst, book.Bid, 100, 10)
	askID := e.PlaceOrder(inst, book.Ask, 200, 10)

	assert.Equal(t, book.Bid, DecodeSide(bidID))
	assert.Equal(t, book.Ask, DecodeSide(askID))
	assert.NotEqual(t, bidID, askID)
}

// P9 — timestamps assigned by PlaceOrder are monotonically increasing even
// when the underlying clock source does not advance.
func TestEngine_PlaceOrder_MonotonicTimestamps(t *testing.T) {
	stuck := func() uint64 { return 5 }
	e := New(nil, nil, stuck)
	inst := e.AddInstrument("Example Corp", "EX")

	first := e.PlaceOrder(inst, book.Bid, 100, 10)
	second := e.PlaceOrder(inst, book.Bid, 100, 10)

	firstSnap := e.QueryOrder(first)
	secondSnap := e.QueryOrder(second)

	assert.Less(t, firstSnap.TimestampNS, secondSnap.TimestampNS)
}

func TestEngine_QuoteBestBidAsk_UnknownInstrument(t *testing.T) {
	e := New(nil, nil, fakeClock())

	_, _, err := e.QuoteBestBidAsk(7)
	require.Error(t, err)
	assert.True(t, clobErrors.Is(err, clobErrors.UnknownInstrument))
}

func TestEngine_QuoteBestBidAsk_ReflectsResting(t *testing.T) {
	e := New(nil, nil, fakeClock())
	inst := e.AddInstrument("Example Corp", "EX")

	e.PlaceOrder(inst, book.Bid, 14950, 10)
	e.PlaceOrder(inst, book.Ask, 15050, 10)

	bestBid, bestAsk, err := e.QuoteBestBidAsk(inst)
	require.NoError(t, err)
	assert.EqualValues(t, 14950, bestBid)
	assert.EqualValues(t, 15050, bestAsk)
}
