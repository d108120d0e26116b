// Package indicators provides pure series functions over bar windows.
//
// Every function returns a slice aligned with its input where entries before
// the warmup period are NaN. Callers treat NaN as "no signal"; it is never a
// fault.
package indicators

import "math"

// SMA computes the simple moving average over period. Entries before the
// first full window are NaN.
func SMA(vals []float64, period int) []float64 {
	out := nanSlice(len(vals))
	if period <= 0 || len(vals) < period {
		return out
	}
	sum := 0.0
	for i, v := range vals {
		sum += v
		if i >= period {
			sum -= vals[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// RollingStd computes the rolling sample standard deviation (ddof=1) over
// period, matching the behavior the band math was calibrated against.
func RollingStd(vals []float64, period int) []float64 {
	out := nanSlice(len(vals))
	if period < 2 || len(vals) < period {
		return out
	}
	for i := period - 1; i < len(vals); i++ {
		win := vals[i-period+1 : i+1]
		mean := 0.0
		for _, v := range win {
			mean += v
		}
		mean /= float64(period)
		ss := 0.0
		for _, v := range win {
			d := v - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(period-1))
	}
	return out
}

// rollingMean averages over period and yields NaN whenever the window
// contains a NaN, so warmup gaps propagate instead of producing garbage.
func rollingMean(vals []float64, period int) []float64 {
	out := nanSlice(len(vals))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(vals); i++ {
		sum := 0.0
		ok := true
		for _, v := range vals[i-period+1 : i+1] {
			if math.IsNaN(v) {
				ok = false
				break
			}
			sum += v
		}
		if ok {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// rollingSum sums over period with the same NaN propagation as rollingMean.
func rollingSum(vals []float64, period int) []float64 {
	out := nanSlice(len(vals))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(vals); i++ {
		sum := 0.0
		ok := true
		for _, v := range vals[i-period+1 : i+1] {
			if math.IsNaN(v) {
				ok = false
				break
			}
			sum += v
		}
		if ok {
			out[i] = sum
		}
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
