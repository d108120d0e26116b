package risk

import (
	"github.com/bhanukaranwal/EdgeX/logger"
	"github.com/bhanukaranwal/EdgeX/metrics"
	"github.com/bhanukaranwal/EdgeX/strategy"
)

// Limits are the immutable per-run exposure limits. MaxTotal == 0 disables
// the aggregate cap.
type Limits struct {
	MaxPerTrade int
	MaxTotal    int
}

// Gate filters raw signals against exposure limits and the drawdown guard.
// Rejected signals are logged and dropped; Check never fails.
type Gate struct {
	Limits Limits
	Guard  *DrawdownGuard
	Log    logger.Logger
}

// NewGate wires the gate to its drawdown guard. The guard reference is
// consulted on every call, so a halt takes effect immediately.
func NewGate(limits Limits, guard *DrawdownGuard, log logger.Logger) *Gate {
	return &Gate{Limits: limits, Guard: guard, Log: logger.OrNop(log)}
}

// Check evaluates signals in list order and returns the accepted ones in the
// same order. currentExposure is the quantity already committed; accepted
// sizes accumulate against MaxTotal within the call.
func (g *Gate) Check(signals []strategy.Signal, currentExposure int) []strategy.Signal {
	if len(signals) == 0 {
		return nil
	}

	if g.Guard != nil && !g.Guard.TradingActive() {
		for _, sig := range signals {
			g.reject(sig, "trading_inactive")
		}
		return nil
	}

	exposure := currentExposure
	accepted := make([]strategy.Signal, 0, len(signals))
	for _, sig := range signals {
		if g.Limits.MaxPerTrade > 0 && sig.Size > g.Limits.MaxPerTrade {
			g.reject(sig, "per_trade_limit")
			continue
		}
		if g.Limits.MaxTotal > 0 && exposure+sig.Size > g.Limits.MaxTotal {
			g.reject(sig, "total_exposure_limit")
			continue
		}
		exposure += sig.Size
		accepted = append(accepted, sig)
	}
	return accepted
}

func (g *Gate) reject(sig strategy.Signal, reason string) {
	metrics.SignalsRejected.WithLabelValues(reason).Inc()
	g.Log.Warn("signal_rejected",
		logger.String("reason", reason),
		logger.String("symbol", sig.Symbol),
		logger.String("action", string(sig.Action)),
		logger.Int("size", sig.Size),
	)
}
