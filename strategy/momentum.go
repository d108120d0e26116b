package strategy

import (
	"fmt"
	"math"

	"github.com/bhanukaranwal/EdgeX/config"
	"github.com/bhanukaranwal/EdgeX/indicators"
	"github.com/bhanukaranwal/EdgeX/logger"
	"github.com/bhanukaranwal/EdgeX/market"
	"github.com/bhanukaranwal/EdgeX/metrics"
)

// MomentumBreakout fires on a short/long moving-average crossover between
// the last two bars: bullish cross buys a call, bearish cross buys a put.
// Bars without a cross produce no signal.
type MomentumBreakout struct {
	common
	shortPeriod int
	longPeriod  int
}

// NewMomentumBreakout validates parameters and applies the documented
// defaults (short 10, long 30, lot size 50).
func NewMomentumBreakout(cfg config.StrategyConfig, log logger.Logger) (*MomentumBreakout, error) {
	s := &MomentumBreakout{
		common:      newCommon(cfg, log),
		shortPeriod: cfg.ShortMAPeriod,
		longPeriod:  cfg.LongMAPeriod,
	}
	if s.shortPeriod == 0 {
		s.shortPeriod = 10
	}
	if s.longPeriod == 0 {
		s.longPeriod = 30
	}
	if s.shortPeriod <= 0 || s.longPeriod <= 0 {
		return nil, fmt.Errorf("momentum: MA periods must be positive")
	}
	if s.shortPeriod >= s.longPeriod {
		return nil, fmt.Errorf("momentum: short period %d must be below long period %d",
			s.shortPeriod, s.longPeriod)
	}
	s.log.Info("strategy_initialized",
		logger.String("strategy", s.Name()),
		logger.Int("short_ma", s.shortPeriod),
		logger.Int("long_ma", s.longPeriod),
	)
	return s, nil
}

func (s *MomentumBreakout) Name() string { return "MomentumBreakout" }

// Lookback needs one bar beyond the long window so the previous bar's
// averages are defined for cross detection.
func (s *MomentumBreakout) Lookback() int { return s.longPeriod + 1 }

func (s *MomentumBreakout) GenerateSignals(bars []market.Bar) []Signal {
	if len(bars) < s.Lookback() {
		return nil
	}

	closes := market.Closes(bars)
	short := indicators.SMA(closes, s.shortPeriod)
	long := indicators.SMA(closes, s.longPeriod)

	n := len(closes)
	prevShort, prevLong := short[n-2], long[n-2]
	curShort, curLong := short[n-1], long[n-1]
	if math.IsNaN(prevShort) || math.IsNaN(prevLong) || math.IsNaN(curShort) || math.IsNaN(curLong) {
		return nil
	}

	price := closes[n-1]
	var sig Signal
	switch {
	case prevShort < prevLong && curShort > curLong:
		sig = s.optionSignal(BuyCall, price, "Momentum bullish crossover")
	case prevShort > prevLong && curShort < curLong:
		sig = s.optionSignal(BuyPut, price, "Momentum bearish crossover")
	default:
		return nil
	}

	metrics.SignalsGenerated.WithLabelValues(s.Name()).Inc()
	s.log.Info("signal_generated",
		logger.String("strategy", s.Name()),
		logger.String("symbol", sig.Symbol),
		logger.String("action", string(sig.Action)),
		logger.Float64("price", sig.Price),
	)
	return []Signal{sig}
}
