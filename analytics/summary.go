package analytics

import "math"

// Summary is the bit-exact output contract consumed by reporting tooling.
// Field names and rounding must not change.
type Summary struct {
	TotalPnL    float64   `json:"total_pnl" yaml:"total_pnl"`
	Sharpe      float64   `json:"sharpe" yaml:"sharpe"`
	Sortino     float64   `json:"sortino" yaml:"sortino"`
	MaxDrawdown float64   `json:"max_drawdown" yaml:"max_drawdown"`
	Expectancy  float64   `json:"expectancy" yaml:"expectancy"`
	WinRate     float64   `json:"win_rate" yaml:"win_rate"`
	TradeCount  int       `json:"trade_count" yaml:"trade_count"`
	EquityCurve []float64 `json:"equity_curve" yaml:"equity_curve"`
}

// Summarize reduces per-trade pnl and returns plus the equity curve to a
// Summary. All float fields are rounded to four decimal places; NaN values
// (insufficient samples) pass through unrounded.
func Summarize(pnls, returns, equity []float64) Summary {
	total := 0.0
	for _, p := range pnls {
		total += p
	}
	return Summary{
		TotalPnL:    round4(total),
		Sharpe:      round4(SharpeRatio(returns, 0)),
		Sortino:     round4(SortinoRatio(returns, 0)),
		MaxDrawdown: round4(MaxDrawdown(equity)),
		Expectancy:  round4(Expectancy(pnls)),
		WinRate:     round4(WinRate(pnls)),
		TradeCount:  len(pnls),
		EquityCurve: equity,
	}
}

func round4(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return math.Round(x*10000) / 10000
}
