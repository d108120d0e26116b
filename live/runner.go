package live

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bhanukaranwal/EdgeX/config"
	"github.com/bhanukaranwal/EdgeX/indicators"
	"github.com/bhanukaranwal/EdgeX/logger"
	"github.com/bhanukaranwal/EdgeX/risk"
	"github.com/bhanukaranwal/EdgeX/strategy"
)

// Runner polls the bar source, runs the decision pipeline and routes
// accepted signals to the execution venue.
//
// Configuration is an immutable snapshot swapped atomically by Reload; each
// cycle reads the current snapshot once, so a reload takes effect between
// cycles, never mid-cycle. Stop requests (context cancellation or Stop)
// likewise take effect between cycles. Collaborator failures are logged and
// the cycle skipped; nothing short of an explicit stop ends the loop.
type Runner struct {
	source BarSource
	venue  ExecutionVenue
	guard  *risk.DrawdownGuard
	log    logger.Logger

	cfg      atomic.Pointer[config.Config]
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRunner wires a runner. The drawdown guard persists across cycles and
// reloads; everything else is rebuilt from the config snapshot each cycle.
func NewRunner(cfg *config.Config, source BarSource, venue ExecutionVenue, log logger.Logger) *Runner {
	r := &Runner{
		source: source,
		venue:  venue,
		log:    logger.OrNop(log),
		stopCh: make(chan struct{}),
	}
	r.cfg.Store(cfg)
	r.guard = risk.NewDrawdownGuard(
		cfg.Account.InitialCapital,
		cfg.Risk.MaxDrawdown,
		cfg.Risk.PauseThreshold,
		r.log,
	)
	return r
}

// Reload atomically swaps in a new configuration snapshot. The next cycle
// picks it up.
func (r *Runner) Reload(cfg *config.Config) {
	r.cfg.Store(cfg)
	r.log.Info("config_reloaded")
}

// Stop requests shutdown; it takes effect between poll cycles.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Guard exposes the long-lived drawdown guard so operators can reset a halt.
func (r *Runner) Guard() *risk.DrawdownGuard { return r.guard }

// Run blocks until the context is cancelled or Stop is called.
func (r *Runner) Run(ctx context.Context) error {
	interval, err := r.cfg.Load().Live.ParsePollInterval()
	if err != nil {
		return err
	}

	go r.monitor(ctx, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.log.Info("live_loop_started", logger.String("poll_interval", interval.String()))
	for {
		select {
		case <-ctx.Done():
			r.log.Info("live_loop_stopped", logger.String("cause", "context"))
			return nil
		case <-r.stopCh:
			r.log.Info("live_loop_stopped", logger.String("cause", "stop_request"))
			return nil
		case <-ticker.C:
			r.cycle(ctx)
		}
	}
}

// cycle executes one poll: fetch, generate, gate, size, stop, place.
func (r *Runner) cycle(ctx context.Context) {
	snap := r.cfg.Load()

	strat, err := strategy.New(snap.Strategy, r.log)
	if err != nil {
		r.log.Error("strategy_build_failed", logger.Err(err))
		return
	}

	to := time.Now()
	lookback := snap.Live.LookbackBars
	if lb := strat.Lookback(); lb > lookback {
		lookback = lb
	}
	from := to.Add(-time.Duration(lookback) * time.Minute * 5)

	bars, err := r.source.Fetch(ctx, snap.Live.SymbolToken, from, to, snap.Live.Interval)
	if err != nil {
		r.log.Error("bar_fetch_failed", logger.Err(err))
		return
	}
	if len(bars) == 0 {
		r.log.Debug("no_bars_returned")
		return
	}

	signals := strat.GenerateSignals(bars)

	gate := risk.NewGate(risk.Limits{
		MaxPerTrade: snap.Risk.MaxPerTradeLimit(),
		MaxTotal:    snap.Risk.MaxTotal,
	}, r.guard, r.log)
	signals = gate.Check(signals, 0)
	if len(signals) == 0 {
		return
	}

	sizer := risk.Sizer{
		Capital:      snap.Account.InitialCapital,
		RiskPerTrade: snap.Risk.RiskPerTrade,
		MinLotSize:   snap.Risk.MinLotSize,
		MaxLots:      snap.Risk.MaxLots,
	}
	stops := risk.StopLoss{
		Mode:     risk.StopMode(snap.Risk.StopMode),
		FixedPct: snap.Risk.StopFixedPct,
		TrailPct: snap.Risk.StopTrailPct,
	}
	atr := indicators.ATR(bars, 14)
	lastATR := atr[len(atr)-1]
	indicator := 0.0
	if !math.IsNaN(lastATR) {
		indicator = lastATR
	}

	for _, sig := range signals {
		qty := sig.Size
		if !math.IsNaN(lastATR) {
			qty = sizer.SizeByATR(lastATR, sig.Price)
		}

		stopPrice, err := stops.Price(risk.StopInputs{
			EntryPrice:   sig.Price,
			CurrentPrice: sig.Price,
			HighestPrice: sig.Price,
			Indicator:    indicator,
		})
		if err != nil {
			r.log.Warn("stop_price_unavailable", logger.Err(err))
			stopPrice = 0
		}

		ack, err := r.venue.PlaceOrder(ctx, OrderRequest{
			Exchange:  "NSE",
			Symbol:    sig.Symbol,
			Side:      "BUY",
			Qty:       qty,
			OrderType: "MARKET",
			Product:   "MIS",
			Price:     sig.Price,
			StopLoss:  stopPrice,
		})
		if err != nil {
			r.log.Error("order_placement_failed",
				logger.String("symbol", sig.Symbol),
				logger.Err(err),
			)
			continue
		}
		r.log.Info("order_placed",
			logger.String("order_id", ack.OrderID),
			logger.String("status", ack.Status),
			logger.String("symbol", sig.Symbol),
			logger.Int("qty", qty),
		)
	}
}

// monitor emits a periodic health line on its own goroutine, independent of
// the decision loop.
func (r *Runner) monitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			snap := r.cfg.Load()
			r.log.Info("health",
				logger.String("strategy", snap.Strategy.Name),
				logger.String("guard_state", r.guard.State().String()),
				logger.Bool("trading_active", r.guard.TradingActive()),
			)
		}
	}
}
