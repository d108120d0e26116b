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

// BollingerReversion buys puts when price closes above the upper band and
// calls when it closes below the lower band, expecting mean reversion.
type BollingerReversion struct {
	common
	window int
	numStd float64
}

// NewBollingerReversion validates parameters and applies the documented
// defaults (window 20, num_std 2, lot size 50).
func NewBollingerReversion(cfg config.StrategyConfig, log logger.Logger) (*BollingerReversion, error) {
	s := &BollingerReversion{
		common: newCommon(cfg, log),
		window: cfg.Window,
		numStd: cfg.NumStd,
	}
	if s.window == 0 {
		s.window = 20
	}
	if s.numStd == 0 {
		s.numStd = 2
	}
	if s.window < 2 {
		return nil, fmt.Errorf("bollinger: window must be >= 2, got %d", s.window)
	}
	if s.numStd < 0 {
		return nil, fmt.Errorf("bollinger: num_std must be non-negative, got %v", s.numStd)
	}
	s.log.Info("strategy_initialized",
		logger.String("strategy", s.Name()),
		logger.Int("window", s.window),
		logger.Float64("num_std", s.numStd),
	)
	return s, nil
}

func (s *BollingerReversion) Name() string { return "BollingerReversion" }

func (s *BollingerReversion) Lookback() int { return s.window }

func (s *BollingerReversion) GenerateSignals(bars []market.Bar) []Signal {
	if len(bars) < s.window {
		return nil
	}

	closes := market.Closes(bars)
	mean := indicators.SMA(closes, s.window)
	std := indicators.RollingStd(closes, s.window)

	n := len(closes)
	m, sd := mean[n-1], std[n-1]
	if math.IsNaN(m) || math.IsNaN(sd) {
		s.log.Debug("bands_undefined", logger.String("strategy", s.Name()))
		return nil
	}

	upper := m + s.numStd*sd
	lower := m - s.numStd*sd
	last := closes[n-1]

	var sig Signal
	switch {
	case last > upper:
		sig = s.optionSignal(BuyPut, last, "Price above upper Bollinger Band, mean reversion expected")
	case last < lower:
		sig = s.optionSignal(BuyCall, last, "Price below lower Bollinger Band, mean reversion expected")
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
