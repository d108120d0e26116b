// Package live runs the decision pipeline against external collaborators on
// a polling loop.
package live

import (
	"context"
	"time"

	"github.com/bhanukaranwal/EdgeX/market"
)

// BarSource fetches an ordered OHLCV series. An empty or short result is
// treated as "no signal" by the caller, never as an error.
type BarSource interface {
	Fetch(ctx context.Context, symbolToken string, from, to time.Time, interval string) ([]market.Bar, error)
}

// StaticSource serves a fixed bar series, growing one bar per fetch to
// emulate a market feed. Useful for paper trading and tests.
type StaticSource struct {
	Bars []market.Bar

	cursor int
}

// NewStaticSource starts the replay with enough history for a warm start.
func NewStaticSource(bars []market.Bar, start int) *StaticSource {
	if start > len(bars) {
		start = len(bars)
	}
	return &StaticSource{Bars: bars, cursor: start}
}

func (s *StaticSource) Fetch(ctx context.Context, symbolToken string, from, to time.Time, interval string) ([]market.Bar, error) {
	if s.cursor < len(s.Bars) {
		s.cursor++
	}
	return s.Bars[:s.cursor], nil
}
