// Package backtest replays a historical bar series through the full
// decision pipeline and accumulates a trade ledger and equity curve.
package backtest

import (
	"fmt"
	"time"

	"github.com/bhanukaranwal/EdgeX/analytics"
	"github.com/bhanukaranwal/EdgeX/journal"
	"github.com/bhanukaranwal/EdgeX/logger"
	"github.com/bhanukaranwal/EdgeX/market"
	"github.com/bhanukaranwal/EdgeX/metrics"
	"github.com/bhanukaranwal/EdgeX/risk"
	"github.com/bhanukaranwal/EdgeX/strategy"
)

// Trade is one simulated fill, appended to the run's ordered, append-only
// ledger.
type Trade struct {
	Time       time.Time
	Symbol     string
	Action     strategy.Action
	Size       int
	EntryPrice float64
	ExitPrice  float64
	PnL        float64
	Returns    float64
	Reason     string
}

// Config holds the per-run engine parameters.
type Config struct {
	InitialCapital float64

	// Warmup is the bar offset the replay starts at. The engine uses the
	// strategy's lookback when it is larger. Default 50.
	Warmup int
}

// Engine drives Strategy -> Gate -> simulated fill over a bar series.
//
// The fill model is deliberately naive: every accepted signal enters at the
// signal price and exits at the last close of the same window (single-bar
// holding). That is a documented modeling simplification, not a defect, and
// it keeps the engine flat between cycles so gate exposure is always zero.
type Engine struct {
	cfg   Config
	strat strategy.Strategy
	gate  *risk.Gate
	jrnl  journal.Journal
	log   logger.Logger

	// Run state, owned by the engine for the duration of one Run.
	RunID   string
	Capital float64
	Trades  []Trade
	Equity  []float64
}

// NewEngine assembles an engine. gate may be nil to run ungated; jrnl may be
// nil to skip persistence.
func NewEngine(cfg Config, strat strategy.Strategy, gate *risk.Gate, jrnl journal.Journal, log logger.Logger) *Engine {
	if cfg.Warmup <= 0 {
		cfg.Warmup = 50
	}
	return &Engine{
		cfg:   cfg,
		strat: strat,
		gate:  gate,
		jrnl:  jrnl,
		log:   logger.OrNop(log),
	}
}

// Run replays bars sequentially and returns the performance summary.
// Given identical bars and parameters the run is fully deterministic: same
// trades, same equity curve, same summary.
func (e *Engine) Run(bars []market.Bar) (analytics.Summary, error) {
	if e.strat == nil {
		return analytics.Summary{}, fmt.Errorf("backtest: strategy is required")
	}
	if !market.Ordered(bars) {
		return analytics.Summary{}, fmt.Errorf("backtest: bars must have strictly increasing timestamps")
	}

	warmup := e.cfg.Warmup
	if lb := e.strat.Lookback(); lb > warmup {
		warmup = lb
	}

	e.RunID = journal.NewID()
	e.Capital = e.cfg.InitialCapital
	e.Trades = nil
	e.Equity = []float64{e.Capital}
	e.recordEquity(0, time.Time{})

	e.log.Info("backtest_started",
		logger.String("run_id", e.RunID),
		logger.String("strategy", e.strat.Name()),
		logger.Int("bars", len(bars)),
		logger.Int("warmup", warmup),
	)

	for i := warmup; i < len(bars); i++ {
		window := bars[:i]
		signals := e.strat.GenerateSignals(window)
		if e.gate != nil {
			// The engine is always flat between cycles under the
			// single-bar holding model, so committed exposure is zero.
			signals = e.gate.Check(signals, 0)
		}
		if len(signals) == 0 {
			continue
		}

		last := window[len(window)-1]
		for _, sig := range signals {
			e.fill(sig, last)
		}
	}

	pnls := make([]float64, len(e.Trades))
	rets := make([]float64, len(e.Trades))
	for i, t := range e.Trades {
		pnls[i] = t.PnL
		rets[i] = t.Returns
	}
	summary := analytics.Summarize(pnls, rets, e.Equity)

	e.log.Info("backtest_finished",
		logger.String("run_id", e.RunID),
		logger.Int("trades", summary.TradeCount),
		logger.Float64("total_pnl", summary.TotalPnL),
	)
	return summary, nil
}

// fill simulates an immediate same-bar exit at the window's last close.
func (e *Engine) fill(sig strategy.Signal, last market.Bar) {
	exit := last.Close
	pnl := (exit - sig.Price) * float64(sig.Size)
	if !sig.Action.Long() {
		pnl = -pnl
	}

	e.Capital += pnl
	ret := 0.0
	if e.Capital != 0 {
		ret = pnl / e.Capital
	}

	t := Trade{
		Time:       last.Time,
		Symbol:     sig.Symbol,
		Action:     sig.Action,
		Size:       sig.Size,
		EntryPrice: sig.Price,
		ExitPrice:  exit,
		PnL:        pnl,
		Returns:    ret,
		Reason:     sig.Reason,
	}
	e.Trades = append(e.Trades, t)
	e.Equity = append(e.Equity, e.Capital)

	metrics.TradesSimulated.Inc()
	metrics.EquityGauge.Set(e.Capital)
	if e.gate != nil && e.gate.Guard != nil {
		e.gate.Guard.UpdateEquity(e.Capital)
	}

	if e.jrnl != nil {
		rec := journal.TradeRecord{
			TradeID: journal.NewID(),
			RunID:   e.RunID,
			Symbol:  t.Symbol,
			Action:  string(t.Action),
			Size:    t.Size,
			Entry:   t.EntryPrice,
			Exit:    t.ExitPrice,
			PnL:     t.PnL,
			Returns: t.Returns,
			Time:    t.Time,
			Reason:  t.Reason,
		}
		if err := e.jrnl.RecordTrade(rec); err != nil {
			e.log.Error("journal_trade_failed", logger.Err(err))
		}
		e.recordEquity(len(e.Equity)-1, t.Time)
	}
}

func (e *Engine) recordEquity(seq int, at time.Time) {
	if e.jrnl == nil {
		return
	}
	err := e.jrnl.RecordEquity(journal.EquityPoint{
		RunID:  e.RunID,
		Seq:    seq,
		Equity: e.Equity[seq],
		Time:   at,
	})
	if err != nil {
		e.log.Error("journal_equity_failed", logger.Err(err))
	}
}
