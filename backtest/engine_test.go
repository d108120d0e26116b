package backtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bhanukaranwal/EdgeX/config"
	"github.com/bhanukaranwal/EdgeX/journal"
	"github.com/bhanukaranwal/EdgeX/market"
	"github.com/bhanukaranwal/EdgeX/risk"
	"github.com/bhanukaranwal/EdgeX/strategy"
)

func mkBars(closes []float64) []market.Bar {
	start := time.Date(2025, 1, 1, 9, 15, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Time:   start.Add(time.Duration(i) * 5 * time.Minute),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func ramp(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func momentumStrat(t *testing.T) strategy.Strategy {
	t.Helper()
	s, err := strategy.New(config.StrategyConfig{
		Name:          "momentum",
		ShortMAPeriod: 5,
		LongMAPeriod:  15,
	}, nil)
	require.NoError(t, err)
	return s
}

// vShape declines then recovers, producing at least one bullish crossover.
func vShape() []market.Bar {
	return mkBars(append(ramp(100, -1, 30), ramp(70, 1, 50)...))
}

func TestEngineRisingSeriesNeverBuysPut(t *testing.T) {
	e := NewEngine(Config{InitialCapital: 100000, Warmup: 16}, momentumStrat(t), nil, nil, nil)

	_, err := e.Run(mkBars(ramp(100, 1, 80)))
	require.NoError(t, err)
	for _, tr := range e.Trades {
		require.NotEqual(t, strategy.BuyPut, tr.Action)
	}
}

func TestEngineVShapeTradesAndEquity(t *testing.T) {
	e := NewEngine(Config{InitialCapital: 100000, Warmup: 16}, momentumStrat(t), nil, nil, nil)

	summary, err := e.Run(vShape())
	require.NoError(t, err)

	require.NotEmpty(t, e.Trades, "recovery leg must produce a crossover trade")
	for _, tr := range e.Trades {
		require.Equal(t, strategy.BuyCall, tr.Action)
		// Entry and exit are the same close under the single-bar holding
		// model, so each trade nets zero.
		require.Equal(t, tr.EntryPrice, tr.ExitPrice)
		require.Equal(t, 0.0, tr.PnL)
	}

	require.Equal(t, 100000.0, e.Equity[0])
	require.Len(t, e.Equity, 1+len(e.Trades))
	require.Equal(t, 0.0, summary.TotalPnL)
	require.Equal(t, len(e.Trades), summary.TradeCount)
	require.Equal(t, 0.0, summary.MaxDrawdown)
}

func TestEngineDeterministicReplay(t *testing.T) {
	bars := vShape()

	a := NewEngine(Config{InitialCapital: 100000, Warmup: 16}, momentumStrat(t), nil, nil, nil)
	b := NewEngine(Config{InitialCapital: 100000, Warmup: 16}, momentumStrat(t), nil, nil, nil)

	sa, err := a.Run(bars)
	require.NoError(t, err)
	sb, err := b.Run(bars)
	require.NoError(t, err)

	require.Equal(t, a.Trades, b.Trades)
	require.Equal(t, a.Equity, b.Equity)
	require.Equal(t, sa, sb)
	require.NotEqual(t, a.RunID, b.RunID, "each run gets a fresh id")
}

func TestEngineWarmupHonorsLookback(t *testing.T) {
	// Warmup below the strategy lookback must be raised, not replayed early.
	bars := vShape()
	e := NewEngine(Config{InitialCapital: 100000, Warmup: 2}, momentumStrat(t), nil, nil, nil)
	_, err := e.Run(bars)
	require.NoError(t, err)

	// Lookback is 16, so the earliest possible fill is at bar index 15.
	earliest := bars[15].Time
	for _, tr := range e.Trades {
		require.False(t, tr.Time.Before(earliest))
	}
}

func TestEngineRequiresStrategy(t *testing.T) {
	e := NewEngine(Config{InitialCapital: 100000}, nil, nil, nil, nil)
	_, err := e.Run(vShape())
	require.Error(t, err)
}

func TestEngineRejectsUnorderedBars(t *testing.T) {
	bars := vShape()
	bars[3].Time = bars[2].Time

	e := NewEngine(Config{InitialCapital: 100000}, momentumStrat(t), nil, nil, nil)
	_, err := e.Run(bars)
	require.Error(t, err)
	require.Contains(t, err.Error(), "strictly increasing")
}

func TestEngineGateBlocksOversizedSignals(t *testing.T) {
	s, err := strategy.New(config.StrategyConfig{
		Name:          "momentum",
		ShortMAPeriod: 5,
		LongMAPeriod:  15,
		LotSize:       5000,
	}, nil)
	require.NoError(t, err)

	gate := risk.NewGate(risk.Limits{MaxPerTrade: 10}, nil, nil)
	e := NewEngine(Config{InitialCapital: 100000, Warmup: 16}, s, gate, nil, nil)

	_, err = e.Run(vShape())
	require.NoError(t, err)
	require.Empty(t, e.Trades)
}

func TestEngineHaltedGuardBlocksAllTrades(t *testing.T) {
	guard := risk.NewDrawdownGuard(100000, 0.20, 0.15, nil)
	guard.UpdateEquity(79000)
	require.False(t, guard.TradingActive())

	gate := risk.NewGate(risk.Limits{MaxPerTrade: 5000}, guard, nil)
	e := NewEngine(Config{InitialCapital: 100000, Warmup: 16}, momentumStrat(t), gate, nil, nil)

	_, err := e.Run(vShape())
	require.NoError(t, err)
	require.Empty(t, e.Trades)
}

func TestEngineJournalsRun(t *testing.T) {
	j, err := journal.NewSQLite(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	e := NewEngine(Config{InitialCapital: 100000, Warmup: 16}, momentumStrat(t), nil, j, nil)
	_, err = e.Run(vShape())
	require.NoError(t, err)
	require.NotEmpty(t, e.Trades)

	trades, err := j.ListTradesByRun(e.RunID)
	require.NoError(t, err)
	require.Len(t, trades, len(e.Trades))
	require.Equal(t, e.Trades[0].Symbol, trades[0].Symbol)

	equity, err := j.ListEquityByRun(e.RunID)
	require.NoError(t, err)
	require.Len(t, equity, 1+len(e.Trades))
	require.Equal(t, 0, equity[0].Seq)
	require.Equal(t, 100000.0, equity[0].Equity)
}
