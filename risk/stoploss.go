package risk

import (
	"fmt"
	"math"
)

// StopMode selects the stop-loss algorithm.
type StopMode string

const (
	StopFixed    StopMode = "fixed"
	StopTrailing StopMode = "trailing"
	StopDynamic  StopMode = "dynamic"
)

// StopLoss computes stop prices. It holds no state; Price is a pure
// function of its inputs.
type StopLoss struct {
	Mode     StopMode
	FixedPct float64 // percent, default 2.5
	TrailPct float64 // percent, default 2.0
}

// NewStopLoss returns a stop-loss engine with the documented defaults.
func NewStopLoss(mode StopMode) StopLoss {
	return StopLoss{Mode: mode, FixedPct: 2.5, TrailPct: 2.0}
}

// StopInputs carries the per-call inputs. Zero means "not provided" for the
// optional fields.
type StopInputs struct {
	EntryPrice   float64
	CurrentPrice float64 // informational, not used by the current modes
	HighestPrice float64 // required for trailing
	Indicator    float64 // required for dynamic, returned verbatim
}

// Price computes the stop price for the configured mode, rounded to two
// decimal places.
//
// fixed:    entry * (1 - FixedPct/100)
// trailing: highest * (1 - TrailPct/100); ErrMissingInput without highest
// dynamic:  the indicator value verbatim; ErrMissingInput without it
//
// An unknown mode yields ErrInvalidConfiguration.
func (s StopLoss) Price(in StopInputs) (float64, error) {
	var stop float64
	switch s.Mode {
	case StopFixed:
		stop = in.EntryPrice * (1 - s.FixedPct/100)
	case StopTrailing:
		if in.HighestPrice == 0 {
			return 0, fmt.Errorf("%w: trailing mode requires highest price", ErrMissingInput)
		}
		stop = in.HighestPrice * (1 - s.TrailPct/100)
	case StopDynamic:
		if in.Indicator == 0 {
			return 0, fmt.Errorf("%w: dynamic mode requires indicator value", ErrMissingInput)
		}
		stop = in.Indicator
	default:
		return 0, fmt.Errorf("%w: unknown stop loss mode %q", ErrInvalidConfiguration, s.Mode)
	}
	return math.Round(stop*100) / 100, nil
}
