package indicators

import (
	"math"

	"github.com/bhanukaranwal/EdgeX/market"
)

// ADX computes the Average Directional Index over period.
//
// +DM/-DM are the positive high/low deltas clipped at zero, summed over
// period and divided by ATR to form +DI/-DI. DX = 100*|+DI - -DI|/(+DI + -DI)
// and ADX is the rolling mean of DX. Entries are NaN until roughly two full
// periods of data exist.
func ADX(bars []market.Bar, period int) []float64 {
	n := len(bars)
	plusDM := nanSlice(n)
	minusDM := nanSlice(n)
	for i := 1; i < n; i++ {
		up := bars[i].High - bars[i-1].High
		down := bars[i-1].Low - bars[i].Low
		plusDM[i] = math.Max(up, 0)
		minusDM[i] = math.Max(down, 0)
	}

	atr := ATR(bars, period)
	plusSum := rollingSum(plusDM, period)
	minusSum := rollingSum(minusDM, period)

	dx := nanSlice(n)
	for i := 0; i < n; i++ {
		if math.IsNaN(atr[i]) || math.IsNaN(plusSum[i]) || atr[i] == 0 {
			continue
		}
		pdi := 100 * plusSum[i] / atr[i]
		mdi := 100 * minusSum[i] / atr[i]
		den := pdi + mdi
		if den == 0 {
			continue
		}
		dx[i] = 100 * math.Abs(pdi-mdi) / den
	}

	return rollingMean(dx, period)
}
