// Package market defines the OHLCV bar type shared by every stage of the
// pipeline.
package market

import "time"

// Bar represents one OHLCV interval. Bars are immutable once produced and
// a series is always ordered by strictly increasing timestamp.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the close series from a bar window.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Ordered reports whether timestamps are strictly increasing.
func Ordered(bars []Bar) bool {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			return false
		}
	}
	return true
}
