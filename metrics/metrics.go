// Package metrics registers the prometheus collectors shared by the
// decision pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignalsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgex_signals_generated_total",
			Help: "Total number of raw signals emitted (by strategy).",
		},
		[]string{"strategy"},
	)

	SignalsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgex_signals_rejected_total",
			Help: "Total number of signals dropped by the risk gate (by reason).",
		},
		[]string{"reason"},
	)

	TradesSimulated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "edgex_trades_simulated_total",
			Help: "Total number of simulated fills recorded by the backtest engine.",
		},
	)

	OrdersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgex_orders_placed_total",
			Help: "Total number of orders sent to an execution venue.",
		},
		[]string{"venue"},
	)

	EquityGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "edgex_equity",
			Help: "Current equity of the active run.",
		},
	)

	DrawdownGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "edgex_drawdown",
			Help: "Current drawdown fraction from the equity high-water mark.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		SignalsGenerated,
		SignalsRejected,
		TradesSimulated,
		OrdersPlaced,
		EquityGauge,
		DrawdownGauge,
	)
}
