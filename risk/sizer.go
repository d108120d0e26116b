package risk

import "math"

// Sizer converts a sizing request into a lot-quantized quantity. All methods
// are pure functions of their inputs and the stored parameters; results are
// clamped to [MinLotSize, MaxLots*MinLotSize].
type Sizer struct {
	Capital      float64
	RiskPerTrade float64 // fraction of capital risked per trade
	MinLotSize   int     // minimum tradable unit multiple
	MaxLots      int
}

// NewSizer returns a sizer with the documented defaults: 2% risk per trade,
// 25-unit lots, 10 lots max.
func NewSizer(capital float64) Sizer {
	return Sizer{
		Capital:      capital,
		RiskPerTrade: 0.02,
		MinLotSize:   25,
		MaxLots:      10,
	}
}

// SizeByATR sizes by volatility: lots = floor(capital*risk / (atr*lot)),
// at least one lot. A non-positive ATR cannot be sized against and falls
// back to a single lot.
func (s Sizer) SizeByATR(atr, price float64) int {
	lots := 1
	perLotRisk := atr * float64(s.MinLotSize)
	if perLotRisk > 0 {
		riskAmount := s.Capital * s.RiskPerTrade
		lots = int(riskAmount / perLotRisk)
	}
	return s.quantize(lots)
}

// FixedSize clamps the desired lot count into [1, MaxLots].
func (s Sizer) FixedSize(desiredLots int) int {
	return s.quantize(desiredLots)
}

// PctOfEquity sizes to a percentage of capital at the given price. A
// non-positive price falls back to a single lot.
func (s Sizer) PctOfEquity(percent, price float64) int {
	lots := 1
	notionalPerLot := price * float64(s.MinLotSize)
	if notionalPerLot > 0 {
		lots = int(math.Floor(s.Capital * percent / notionalPerLot))
	}
	return s.quantize(lots)
}

func (s Sizer) quantize(lots int) int {
	if lots < 1 {
		lots = 1
	}
	if lots > s.MaxLots {
		lots = s.MaxLots
	}
	return lots * s.MinLotSize
}
