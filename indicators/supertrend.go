package indicators

import (
	"math"

	"github.com/bhanukaranwal/EdgeX/market"
)

// Supertrend computes the supertrend line and trend flag for each bar.
//
// Basic bands are hl2 +/- multiplier*ATR. Final bands are tightened by a
// left-to-right scan that carries the previous bar's final band forward:
// while price stays on one side of a band, the band may only move toward the
// trend. Computing bands independently per bar produces incorrect trend
// flips, so the sequential scan is required.
//
// The line is the final upper band while close <= upper, otherwise the final
// lower band. uptrend[i] is close > line and always false while the line is
// still NaN.
func Supertrend(bars []market.Bar, period int, multiplier float64) (line []float64, uptrend []bool) {
	n := len(bars)
	line = nanSlice(n)
	uptrend = make([]bool, n)

	atr := ATR(bars, period)
	basicUB := nanSlice(n)
	basicLB := nanSlice(n)
	for i := 0; i < n; i++ {
		hl2 := (bars[i].High + bars[i].Low) / 2
		basicUB[i] = hl2 + multiplier*atr[i]
		basicLB[i] = hl2 - multiplier*atr[i]
	}

	finalUB := nanSlice(n)
	finalLB := nanSlice(n)
	for i := 0; i < n; i++ {
		if math.IsNaN(basicUB[i]) {
			continue
		}
		if i == 0 || math.IsNaN(finalUB[i-1]) {
			finalUB[i] = basicUB[i]
			finalLB[i] = basicLB[i]
			continue
		}
		if bars[i-1].Close <= finalUB[i-1] {
			finalUB[i] = math.Min(basicUB[i], finalUB[i-1])
		} else {
			finalUB[i] = basicUB[i]
		}
		if bars[i-1].Close >= finalLB[i-1] {
			finalLB[i] = math.Max(basicLB[i], finalLB[i-1])
		} else {
			finalLB[i] = basicLB[i]
		}
	}

	for i := 0; i < n; i++ {
		if math.IsNaN(finalUB[i]) {
			continue
		}
		if bars[i].Close <= finalUB[i] {
			line[i] = finalUB[i]
		} else {
			line[i] = finalLB[i]
		}
		uptrend[i] = bars[i].Close > line[i]
	}
	return line, uptrend
}
