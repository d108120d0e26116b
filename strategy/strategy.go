// Package strategy implements the signal-generating strategy variants.
//
// A strategy is stateless across cycles: every call to GenerateSignals works
// only from the bar window it is handed. Windows shorter than Lookback()
// yield no signals and degenerate indicator math is logged and swallowed;
// neither condition ever aborts the calling loop.
package strategy

import (
	"fmt"
	"strings"

	"github.com/bhanukaranwal/EdgeX/config"
	"github.com/bhanukaranwal/EdgeX/logger"
	"github.com/bhanukaranwal/EdgeX/market"
)

// Strategy is the capability every variant implements.
type Strategy interface {
	Name() string

	// Lookback is the minimum number of bars required before the variant
	// can produce a signal.
	Lookback() int

	// GenerateSignals returns zero or one signal for the given window.
	GenerateSignals(bars []market.Bar) []Signal
}

// New builds a strategy variant by name from the configuration.
func New(cfg config.StrategyConfig, log logger.Logger) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case "bollinger", "bollinger-reversion":
		return NewBollingerReversion(cfg, log)
	case "momentum", "momentum-breakout":
		return NewMomentumBreakout(cfg, log)
	case "supertrend", "supertrend-adx":
		return NewSupertrendADX(cfg, log)
	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: bollinger, momentum, supertrend)", cfg.Name)
	}
}

// common holds the option-symbol parameters shared by all variants.
type common struct {
	underlying      string
	lotSize         int
	strikeIncrement float64
	log             logger.Logger
}

func newCommon(cfg config.StrategyConfig, log logger.Logger) common {
	c := common{
		underlying:      cfg.Underlying,
		lotSize:         cfg.LotSize,
		strikeIncrement: cfg.StrikeIncrement,
		log:             logger.OrNop(log),
	}
	if c.underlying == "" {
		c.underlying = "NIFTY"
	}
	if c.lotSize <= 0 {
		c.lotSize = 50
	}
	if c.strikeIncrement <= 0 {
		c.strikeIncrement = 50
	}
	return c
}

// optionSignal assembles a fully-derived option signal at the given price.
func (c common) optionSignal(action Action, price float64, reason string) Signal {
	return Signal{
		Symbol: OptionSymbol(c.underlying, price, c.strikeIncrement, action),
		Action: action,
		Size:   c.lotSize,
		Price:  price,
		Reason: reason,
	}
}
