package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abdoElHodaky/tradsys-clob/internal/matching/book"
	"github.com/abdoElHodaky/tradsys-clob/internal/matching/engine"
	clobErrors "github.com/abdoElHodaky/tradsys-clob/pkg/errors"
)

// OrderHandler exposes the matching engine façade over HTTP, grounded on
// the trading system's order_handler.go but mapped directly onto
// engine.Engine's four operations instead of a database-backed order
// service.
type OrderHandler struct {
	engine *engine.Engine
	logger *zap.Logger
}

// NewOrderHandler builds an OrderHandler.
func NewOrderHandler(eng *engine.Engine, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{engine: eng, logger: logger}
}

// RegisterRoutes mounts the four matching-core routes under router.
func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/orders", h.PlaceOrder)
	router.GET("/orders/:side/:id", h.GetOrder)
	router.DELETE("/orders/:side/:id", h.CancelOrder)
	router.GET("/instruments/:id/quote", h.Quote)
}

func parseSide(raw string) (book.Side, bool) {
	switch raw {
	case "bid":
		return book.Bid, true
	case "ask":
		return book.Ask, true
	default:
		return 0, false
	}
}

// encodeOrderID combines the :side and :id path params into the engine's
// 64-bit id. :id may be the dense per-side index or the full order_id
// returned in OrderResponse (which carries the ask flag for asks); EncodeID
// leaves an already-set flag in place, so both forms resolve to the same id.
func encodeOrderID(c *gin.Context) (uint64, bool) {
	side, ok := parseSide(c.Param("side"))
	if !ok {
		return 0, false
	}
	index, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return engine.EncodeID(side, index), true
}

func writeError(c *gin.Context, err error) {
	clobErr, ok := err.(*clobErrors.Error)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: string(clobErrors.Internal), Message: err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch clobErr.Code {
	case clobErrors.UnknownInstrument, clobErrors.UnknownOrder:
		status = http.StatusNotFound
	case clobErrors.InvalidArgument:
		status = http.StatusBadRequest
	case clobErrors.AlreadyTerminal:
		status = http.StatusConflict
	}

	c.JSON(status, ErrorResponse{Code: string(clobErr.Code), Message: clobErr.Message})
}

// PlaceOrder handles POST /v1/orders.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: string(clobErrors.InvalidArgument), Message: err.Error()})
		return
	}

	side, ok := parseSide(req.Side)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: string(clobErrors.InvalidArgument), Message: "side must be \"bid\" or \"ask\""})
		return
	}

	id := h.engine.PlaceOrder(req.InstrumentID, side, req.Price, req.Quantity)
	snap := h.engine.QueryOrder(id)

	h.logger.Info("order placed",
		zap.Uint64("order_id", id),
		zap.Uint32("instrument_id", req.InstrumentID),
		zap.String("side", req.Side))

	c.JSON(http.StatusCreated, snapshotToResponse(id, snap))
}

// GetOrder handles GET /v1/orders/:side/:id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := encodeOrderID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: string(clobErrors.InvalidArgument), Message: "malformed order id"})
		return
	}

	snap := h.engine.QueryOrder(id)
	if !snap.Found {
		c.JSON(http.StatusNotFound, ErrorResponse{Code: string(clobErrors.UnknownOrder), Message: "order not found"})
		return
	}

	c.JSON(http.StatusOK, snapshotToResponse(id, snap))
}

// CancelOrder handles DELETE /v1/orders/:side/:id.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := encodeOrderID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: string(clobErrors.InvalidArgument), Message: "malformed order id"})
		return
	}

	if err := h.engine.CancelOrder(id); err != nil {
		writeError(c, err)
		return
	}

	snap := h.engine.QueryOrder(id)
	c.JSON(http.StatusOK, snapshotToResponse(id, snap))
}

// Quote handles GET /v1/instruments/:id/quote.
func (h *OrderHandler) Quote(c *gin.Context) {
	instrumentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: string(clobErrors.InvalidArgument), Message: "malformed instrument id"})
		return
	}

	bestBid, bestAsk, err := h.engine.QuoteBestBidAsk(uint32(instrumentID))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{
		InstrumentID: uint32(instrumentID),
		BestBid:      bestBid,
		BestAsk:      bestAsk,
	})
}

func snapshotToResponse(id uint64, snap book.Snapshot) OrderResponse {
	return OrderResponse{
		OrderID:        id,
		TimestampNS:    snap.TimestampNS,
		Price:          snap.Price,
		Quantity:       snap.Quantity,
		FilledQuantity: snap.FilledQuantity,
		Balance:        snap.Balance,
		IsCancelled:    snap.IsCancelled,
	}
}
