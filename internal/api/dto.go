package api

// PlaceOrderRequest is the wire shape for POST /v1/orders.
type PlaceOrderRequest struct {
	InstrumentID uint32 `json:"instrument_id"`
	Side         string `json:"side" binding:"required,oneof=bid ask"`
	Price        uint32 `json:"price" binding:"required,gt=0"`
	Quantity     uint32 `json:"quantity" binding:"required,gt=0"`
}

// OrderResponse is the wire shape returned by PlaceOrder and QueryOrder.
type OrderResponse struct {
	OrderID        uint64 `json:"order_id"`
	TimestampNS    uint64 `json:"timestamp_ns"`
	Price          uint32 `json:"price"`
	Quantity       uint32 `json:"quantity"`
	FilledQuantity uint32 `json:"filled_quantity"`
	Balance        int64  `json:"balance"`
	IsCancelled    bool   `json:"is_cancelled"`
}

// QuoteResponse is the wire shape for GET /v1/instruments/:id/quote.
type QuoteResponse struct {
	InstrumentID uint32 `json:"instrument_id"`
	BestBid      uint32 `json:"best_bid"`
	BestAsk      uint32 `json:"best_ask"`
}

// ErrorResponse is the wire shape for every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
