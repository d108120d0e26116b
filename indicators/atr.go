package indicators

import (
	"math"

	"github.com/bhanukaranwal/EdgeX/market"
)

// TrueRange returns the per-bar true range series:
// max(high-low, |high-prevClose|, |low-prevClose|). The first entry is NaN
// because there is no previous close.
func TrueRange(bars []market.Bar) []float64 {
	out := nanSlice(len(bars))
	for i := 1; i < len(bars); i++ {
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - bars[i-1].Close)
		lc := math.Abs(bars[i].Low - bars[i-1].Close)
		out[i] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// ATR is the rolling mean of true range over period. Defined from index
// period onward (the first TR is NaN).
func ATR(bars []market.Bar, period int) []float64 {
	return rollingMean(TrueRange(bars), period)
}
