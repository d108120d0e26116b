// Package analytics reduces a trade ledger and equity curve to the summary
// statistics the reporting tooling consumes.
package analytics

import "math"

const tradingDaysPerYear = 252

// SharpeRatio is mean(excess)/std(excess) * sqrt(252). NaN with fewer than
// two returns or zero variance.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	excess := subtract(returns, riskFreeRate)
	if len(excess) < 2 {
		return math.NaN()
	}
	sd := std(excess)
	if sd == 0 {
		return math.NaN()
	}
	return mean(excess) / sd * math.Sqrt(tradingDaysPerYear)
}

// SortinoRatio shares Sharpe's numerator but divides by the deviation of
// only the negative excess returns. NaN when no downside returns exist or
// their deviation is zero.
func SortinoRatio(returns []float64, riskFreeRate float64) float64 {
	excess := subtract(returns, riskFreeRate)
	var downside []float64
	for _, r := range excess {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	if len(downside) == 0 {
		return math.NaN()
	}
	sd := std(downside)
	if sd == 0 {
		return math.NaN()
	}
	return mean(excess) / sd * math.Sqrt(tradingDaysPerYear)
}

// MaxDrawdown is the largest fractional decline from the running equity
// high: max((runningHigh - equity)/runningHigh).
func MaxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}
	high := equity[0]
	maxDD := 0.0
	for _, eq := range equity {
		if eq > high {
			high = eq
		}
		if high > 0 {
			if dd := (high - eq) / high; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// Expectancy is avg_win*win_rate - |avg_loss|*(1-win_rate), the expected
// pnl per trade. Zero with no trades.
func Expectancy(pnls []float64) float64 {
	if len(pnls) == 0 {
		return 0
	}
	var wins, losses []float64
	for _, p := range pnls {
		if p > 0 {
			wins = append(wins, p)
		} else if p < 0 {
			losses = append(losses, p)
		}
	}
	winRate := float64(len(wins)) / float64(len(pnls))
	avgWin := 0.0
	if len(wins) > 0 {
		avgWin = mean(wins)
	}
	avgLoss := 0.0
	if len(losses) > 0 {
		avgLoss = math.Abs(mean(losses))
	}
	return avgWin*winRate - avgLoss*(1-winRate)
}

// WinRate is the fraction of trades with positive pnl. Zero with no trades.
func WinRate(pnls []float64) float64 {
	if len(pnls) == 0 {
		return 0
	}
	wins := 0
	for _, p := range pnls {
		if p > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(pnls))
}

func subtract(vals []float64, x float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v - x
	}
	return out
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// std is the population standard deviation, matching how the summary
// statistics were originally calibrated.
func std(vals []float64) float64 {
	m := mean(vals)
	ss := 0.0
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)))
}
