package risk

import (
	"sync"

	"github.com/bhanukaranwal/EdgeX/logger"
	"github.com/bhanukaranwal/EdgeX/metrics"
)

// State is the drawdown circuit-breaker state.
type State int

const (
	Active State = iota
	Paused
	Halted
)

func (s State) String() string {
	switch s {
	case Active:
		return "ACTIVE"
	case Paused:
		return "PAUSED"
	case Halted:
		return "HALTED"
	default:
		return "UNKNOWN"
	}
}

// DrawdownGuard tracks the running equity curve against a high-water mark
// and gates whether trading is permitted.
//
// PAUSED clears on its own once drawdown falls back below the pause
// threshold. HALTED is sticky: there is no automatic recovery, trading stays
// off until an operator calls Reset. The guard assumes but does not enforce
// pauseThreshold < maxDrawdown; configuration validation owns that check.
type DrawdownGuard struct {
	mu sync.Mutex

	equityHigh     float64
	maxDrawdown    float64
	pauseThreshold float64
	state          State
	log            logger.Logger
}

// NewDrawdownGuard creates a guard with the high-water mark seeded at the
// starting equity.
func NewDrawdownGuard(startEquity, maxDrawdown, pauseThreshold float64, log logger.Logger) *DrawdownGuard {
	return &DrawdownGuard{
		equityHigh:     startEquity,
		maxDrawdown:    maxDrawdown,
		pauseThreshold: pauseThreshold,
		state:          Active,
		log:            logger.OrNop(log),
	}
}

// UpdateEquity records a new equity value and returns the resulting state.
// The high-water mark only ever ratchets upward.
func (g *DrawdownGuard) UpdateEquity(currentEquity float64) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if currentEquity > g.equityHigh {
		g.equityHigh = currentEquity
	}
	dd := 1 - currentEquity/g.equityHigh
	metrics.DrawdownGauge.Set(dd)

	if g.state == Halted {
		return Halted
	}

	switch {
	case dd >= g.maxDrawdown:
		g.state = Halted
		g.log.Error("max_drawdown_reached",
			logger.Float64("drawdown", dd),
			logger.Float64("equity", currentEquity),
			logger.Float64("equity_high", g.equityHigh),
		)
	case dd >= g.pauseThreshold:
		g.state = Paused
		g.log.Warn("pause_threshold_reached",
			logger.Float64("drawdown", dd),
			logger.Float64("equity", currentEquity),
		)
	default:
		g.state = Active
	}
	return g.state
}

// TradingActive reports whether new trades are permitted. Only ACTIVE
// permits trading.
func (g *DrawdownGuard) TradingActive() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == Active
}

// State returns the current circuit-breaker state.
func (g *DrawdownGuard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// EquityHigh returns the high-water mark.
func (g *DrawdownGuard) EquityHigh() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.equityHigh
}

// Reset is the only way out of HALTED: an explicit operator action that
// reseeds the high-water mark and reactivates trading.
func (g *DrawdownGuard) Reset(equity float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.equityHigh = equity
	g.state = Active
	g.log.Info("drawdown_guard_reset", logger.Float64("equity", equity))
}
