package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors the engine updates on PlaceOrder
// and on successful CancelOrder calls; QueryOrder and QuoteBestBidAsk do not
// touch them. It is operational telemetry only — aggregate counters and
// gauges, never a replayable trade tape (spec.md's non-goal), and it has no
// effect on matching behaviour.
//
// Grounded on internal/monitoring/metrics.go and pkg/matching/engine_monitor.go
// in the teacher repository.
type Metrics struct {
	ordersPlaced    *prometheus.CounterVec
	ordersResting   *prometheus.CounterVec
	ordersCancelled *prometheus.CounterVec
	tradesTotal     *prometheus.CounterVec
	tradedVolume    *prometheus.CounterVec
	bookDepth       *prometheus.GaugeVec
}

// NewMetrics registers the engine's collectors against reg. Pass
// prometheus.NewRegistry() in tests to avoid colliding with the default
// global registry across test runs.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ordersPlaced: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clob_orders_placed_total",
			Help: "Total number of PlaceOrder calls, labelled by side.",
		}, []string{"side"}),
		ordersResting: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clob_orders_resting_total",
			Help: "Total number of placed orders that rested on the book, labelled by side.",
		}, []string{"side"}),
		ordersCancelled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clob_orders_cancelled_total",
			Help: "Total number of successful CancelOrder calls, labelled by side.",
		}, []string{"side"}),
		tradesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clob_trades_total",
			Help: "Total number of individual fills executed, labelled by aggressor side.",
		}, []string{"side"}),
		tradedVolume: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clob_traded_quantity_total",
			Help: "Total quantity traded, labelled by aggressor side.",
		}, []string{"side"}),
		bookDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clob_book_depth",
			Help: "Current resting-order heap length per instrument and side.",
		}, []string{"instrument_id", "side"}),
	}
}
