// Package engine implements the matching engine façade: the single entry
// point spec.md §5-§6 describes, composing an instrument registry, a shared
// order arena, and one OrderBook per instrument behind PlaceOrder,
// CancelOrder, QueryOrder and QuoteBestBidAsk.
package engine

import (
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/abdoElHodaky/tradsys-clob/internal/matching/book"
	"github.com/abdoElHodaky/tradsys-clob/internal/matching/instrument"
	clobErrors "github.com/abdoElHodaky/tradsys-clob/pkg/errors"
)

// Engine owns every instrument's order book and the single arena backing
// all of them. Per spec.md §5, each OrderBook serializes its own matching
// under its own mutex; Engine's mutex only ever guards the books slice
// itself (registering a new instrument), never a match.
type Engine struct {
	logger   *zap.Logger
	registry *instrument.Registry
	arena    *book.Arena
	clock    *monotonicClock
	metrics  *Metrics

	mu    sync.RWMutex
	books []*book.OrderBook // parallel to registry entries, indexed by instrument id
}

// New constructs an empty Engine. metrics may be nil to disable telemetry;
// clockSource may be nil to use the system clock.
func New(logger *zap.Logger, metrics *Metrics, clockSource ClockFunc) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:   logger,
		registry: instrument.New(logger),
		arena:    book.NewArena(),
		clock:    newMonotonicClock(clockSource),
		metrics:  metrics,
	}
}

// AddInstrument registers a new instrument and allocates its order book,
// returning the dense instrument id assigned to it.
func (e *Engine) AddInstrument(name, ticker string) uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.registry.Add(name, ticker)
	e.books = append(e.books, book.NewOrderBook())
	return id
}

// bookFor returns the OrderBook for id, or nil if id is unregistered.
func (e *Engine) bookFor(instrumentID uint32) *book.OrderBook {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if int(instrumentID) >= len(e.books) {
		return nil
	}
	return e.books[instrumentID]
}

// PlaceOrder appends a new order to instrumentID's side of the arena and
// runs it against the book. Per spec.md §7, boundary validation of
// price/quantity belongs to the service adapter; PlaceOrder itself only
// guards against an unregistered instrument, in which case the order is
// recorded as cancelled on arrival and its id is returned with no error —
// spec.md's "unknown instrument" scenario (S6) is not an error from the
// engine's point of view, it is a rejected order with an id.
func (e *Engine) PlaceOrder(instrumentID uint32, side book.Side, price, quantity uint32) uint64 {
	order := &book.LimitOrder{
		Side:     side,
		Price:    price,
		Quantity: quantity,
	}

	ob := e.bookFor(instrumentID)
	if ob == nil {
		order.TimestampNS = e.clock.next()
		order.IsCancelled = true
		index := e.arena.Append(order)
		e.logger.Warn("order placed against unknown instrument",
			zap.Uint32("instrument_id", instrumentID),
			zap.String("side", side.String()))
		return EncodeID(side, index)
	}

	// Timestamp assignment happens inside MatchAndInsertAt, under the
	// book's own lock, so it stays atomic with the priority-insert it
	// orders (spec.md §5).
	result := ob.MatchAndInsertAt(order, e.clock.next)
	index := e.arena.Append(order)

	if e.metrics != nil {
		e.metrics.ordersPlaced.WithLabelValues(side.String()).Inc()
		if result.Trades > 0 {
			e.metrics.tradesTotal.WithLabelValues(side.String()).Add(float64(result.Trades))
			e.metrics.tradedVolume.WithLabelValues(side.String()).Add(float64(result.TradedQuantity))
		}
		if result.Rested {
			e.metrics.ordersResting.WithLabelValues(side.String()).Inc()
		}
		e.metrics.bookDepth.WithLabelValues(instrumentIDLabel(instrumentID), "bid").Set(float64(ob.BidDepth()))
		e.metrics.bookDepth.WithLabelValues(instrumentIDLabel(instrumentID), "ask").Set(float64(ob.AskDepth()))
	}

	return EncodeID(side, index)
}

// CancelOrder marks id as cancelled, making it inert to future matching and
// invisible to BestBidAsk/QuoteBestBidAsk. Per spec.md §4.3 and P6, cancel
// is a one-shot state transition, not an idempotent no-op: the first call
// against a still-resting order succeeds; a second call against the same
// id — or any call against an order that was already fully filled — finds
// nothing left to cancel and reports AlreadyTerminal, with no state change.
func (e *Engine) CancelOrder(id uint64) error {
	side := DecodeSide(id)
	index := DecodeIndex(id)

	order := e.arena.Get(side, index)
	if order == nil {
		return clobErrors.New(clobErrors.UnknownOrder, "order id out of range")
	}

	if order.IsCancelled || order.FilledQuantity == order.Quantity {
		return clobErrors.New(clobErrors.AlreadyTerminal, "order is already cancelled or fully filled")
	}

	order.IsCancelled = true
	if e.metrics != nil {
		e.metrics.ordersCancelled.WithLabelValues(side.String()).Inc()
	}
	return nil
}

// QueryOrder returns a point-in-time snapshot of id. Found is false when id
// is out of range for its decoded side.
func (e *Engine) QueryOrder(id uint64) book.Snapshot {
	side := DecodeSide(id)
	index := DecodeIndex(id)

	order := e.arena.Get(side, index)
	if order == nil {
		return book.Snapshot{}
	}

	return book.Snapshot{
		ID:             id,
		TimestampNS:    order.TimestampNS,
		Balance:        order.Balance,
		Price:          order.Price,
		Quantity:       order.Quantity,
		FilledQuantity: order.FilledQuantity,
		IsCancelled:    order.IsCancelled,
		Found:          true,
	}
}

// QuoteBestBidAsk reports the best live bid and ask for instrumentID. It
// returns an UnknownInstrument error if the instrument was never
// registered — unlike PlaceOrder, there is no sensible non-error answer to
// "what is the best price on a book that doesn't exist" (spec.md §6).
func (e *Engine) QuoteBestBidAsk(instrumentID uint32) (bestBid, bestAsk uint32, err error) {
	ob := e.bookFor(instrumentID)
	if ob == nil {
		return 0, 0, clobErrors.Newf(clobErrors.UnknownInstrument, "instrument %d is not registered", instrumentID)
	}
	bestBid, bestAsk = ob.BestBidAsk()
	return bestBid, bestAsk, nil
}

func instrumentIDLabel(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}
