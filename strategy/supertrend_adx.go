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

// SupertrendADX trades trend continuation: when ADX shows a strong trend it
// buys calls in a supertrend uptrend and puts in a downtrend.
type SupertrendADX struct {
	common
	stPeriod     int
	stMultiplier float64
	adxPeriod    int
	adxThreshold float64
}

// NewSupertrendADX validates parameters and applies the documented defaults
// (supertrend 10/3, ADX period 14, threshold 25, lot size 50).
func NewSupertrendADX(cfg config.StrategyConfig, log logger.Logger) (*SupertrendADX, error) {
	s := &SupertrendADX{
		common:       newCommon(cfg, log),
		stPeriod:     cfg.SupertrendPeriod,
		stMultiplier: cfg.SupertrendMultiplier,
		adxPeriod:    cfg.ADXPeriod,
		adxThreshold: cfg.ADXThreshold,
	}
	if s.stPeriod == 0 {
		s.stPeriod = 10
	}
	if s.stMultiplier == 0 {
		s.stMultiplier = 3
	}
	if s.adxPeriod == 0 {
		s.adxPeriod = 14
	}
	if s.adxThreshold == 0 {
		s.adxThreshold = 25
	}
	if s.stPeriod <= 0 || s.adxPeriod <= 0 {
		return nil, fmt.Errorf("supertrend: periods must be positive")
	}
	if s.stMultiplier <= 0 {
		return nil, fmt.Errorf("supertrend: multiplier must be positive, got %v", s.stMultiplier)
	}
	s.log.Info("strategy_initialized",
		logger.String("strategy", s.Name()),
		logger.Int("adx_period", s.adxPeriod),
		logger.Float64("adx_threshold", s.adxThreshold),
	)
	return s, nil
}

func (s *SupertrendADX) Name() string { return "SupertrendADX" }

// Lookback covers the ADX double warmup (period of DM sums plus period of DX
// smoothing) and the supertrend band seed.
func (s *SupertrendADX) Lookback() int {
	lb := 2*s.adxPeriod + 1
	if st := s.stPeriod + 1; st > lb {
		lb = st
	}
	return lb
}

func (s *SupertrendADX) GenerateSignals(bars []market.Bar) []Signal {
	if len(bars) < s.Lookback() {
		return nil
	}

	_, uptrend := indicators.Supertrend(bars, s.stPeriod, s.stMultiplier)
	adx := indicators.ADX(bars, s.adxPeriod)

	n := len(bars)
	if math.IsNaN(adx[n-1]) {
		s.log.Debug("adx_undefined", logger.String("strategy", s.Name()))
		return nil
	}
	if adx[n-1] <= s.adxThreshold {
		return nil
	}

	price := bars[n-1].Close
	var sig Signal
	if uptrend[n-1] {
		sig = s.optionSignal(BuyCall, price, "Supertrend up, ADX strong")
	} else {
		sig = s.optionSignal(BuyPut, price, "Supertrend down, ADX strong")
	}

	metrics.SignalsGenerated.WithLabelValues(s.Name()).Inc()
	s.log.Info("signal_generated",
		logger.String("strategy", s.Name()),
		logger.String("symbol", sig.Symbol),
		logger.String("action", string(sig.Action)),
		logger.Float64("adx", adx[n-1]),
	)
	return []Signal{sig}
}
