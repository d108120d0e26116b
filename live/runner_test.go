package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bhanukaranwal/EdgeX/config"
	"github.com/bhanukaranwal/EdgeX/market"
)

type fakeVenue struct {
	mu     sync.Mutex
	orders []OrderRequest
	err    error
}

func (v *fakeVenue) PlaceOrder(ctx context.Context, req OrderRequest) (OrderAck, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.err != nil {
		return OrderAck{}, v.err
	}
	v.orders = append(v.orders, req)
	return OrderAck{OrderID: "TEST", Status: "FILLED"}, nil
}

func (v *fakeVenue) placed() []OrderRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]OrderRequest(nil), v.orders...)
}

type errSource struct{}

func (errSource) Fetch(ctx context.Context, symbolToken string, from, to time.Time, interval string) ([]market.Bar, error) {
	return nil, errors.New("feed down")
}

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

// liveCfg trades a strongly trending series every cycle: supertrend with
// short periods fires as soon as ADX is defined.
func liveCfg() *config.Config {
	cfg := config.Default()
	cfg.Strategy.Name = "supertrend"
	cfg.Strategy.SupertrendPeriod = 3
	cfg.Strategy.SupertrendMultiplier = 3
	cfg.Strategy.ADXPeriod = 3
	cfg.Strategy.ADXThreshold = 25
	cfg.Live.PollInterval = "5ms"
	cfg.Live.LookbackBars = 40
	return cfg
}

func TestRunnerCyclePlacesSizedStoppedOrder(t *testing.T) {
	bars := mkBars(ramp(100, 5, 40))
	venue := &fakeVenue{}
	r := NewRunner(liveCfg(), NewStaticSource(bars, len(bars)-1), venue, nil)

	r.cycle(context.Background())

	orders := venue.placed()
	require.Len(t, orders, 1)
	o := orders[0]
	require.Equal(t, "NSE", o.Exchange)
	require.Equal(t, "BUY", o.Side)
	require.Equal(t, "MARKET", o.OrderType)
	require.Contains(t, o.Symbol, "CE")

	// ATR-based sizing clamps at max_lots: 10 lots of 25.
	require.Equal(t, 250, o.Qty)

	// Fixed stop 2.5% under the 295 entry.
	require.Equal(t, 295.0, o.Price)
	require.InDelta(t, 287.625, o.StopLoss, 0.006)
}

func TestRunnerCycleSkipsOnFetchError(t *testing.T) {
	venue := &fakeVenue{}
	r := NewRunner(liveCfg(), errSource{}, venue, nil)

	r.cycle(context.Background())
	require.Empty(t, venue.placed())
}

func TestRunnerCycleSkipsOnEmptyFeed(t *testing.T) {
	venue := &fakeVenue{}
	r := NewRunner(liveCfg(), NewStaticSource(nil, 0), venue, nil)

	r.cycle(context.Background())
	require.Empty(t, venue.placed())
}

func TestRunnerCycleSurvivesVenueError(t *testing.T) {
	bars := mkBars(ramp(100, 5, 40))
	venue := &fakeVenue{err: errors.New("broker rejected")}
	r := NewRunner(liveCfg(), NewStaticSource(bars, len(bars)-1), venue, nil)

	r.cycle(context.Background())
	require.Empty(t, venue.placed())

	// The loop must remain usable on the next cycle.
	venue.mu.Lock()
	venue.err = nil
	venue.mu.Unlock()
	r.cycle(context.Background())
	require.Len(t, venue.placed(), 1)
}

func TestRunnerHaltedGuardBlocksOrders(t *testing.T) {
	bars := mkBars(ramp(100, 5, 40))
	venue := &fakeVenue{}
	r := NewRunner(liveCfg(), NewStaticSource(bars, len(bars)-1), venue, nil)

	r.Guard().UpdateEquity(700000)
	require.False(t, r.Guard().TradingActive())

	r.cycle(context.Background())
	require.Empty(t, venue.placed())

	// Operator reset restores the pipeline.
	r.Guard().Reset(700000)
	r.cycle(context.Background())
	require.Len(t, venue.placed(), 1)
}

func TestRunnerReloadTakesEffectNextCycle(t *testing.T) {
	bars := mkBars(ramp(100, 5, 40))
	venue := &fakeVenue{}
	r := NewRunner(liveCfg(), NewStaticSource(bars, len(bars)-1), venue, nil)

	r.cycle(context.Background())
	require.Len(t, venue.placed(), 1)

	// Momentum sees no crossover on a monotonic series, so the swapped
	// snapshot stops order flow.
	next := liveCfg()
	next.Strategy.Name = "momentum"
	r.Reload(next)

	r.cycle(context.Background())
	require.Len(t, venue.placed(), 1)
}

func TestRunnerStopEndsRun(t *testing.T) {
	venue := &fakeVenue{}
	r := NewRunner(liveCfg(), NewStaticSource(mkBars(ramp(100, 5, 40)), 0), venue, nil)

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	r.Stop()
	r.Stop() // idempotent

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestRunnerContextCancelEndsRun(t *testing.T) {
	venue := &fakeVenue{}
	r := NewRunner(liveCfg(), NewStaticSource(mkBars(ramp(100, 5, 40)), 0), venue, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunnerRejectsBadPollInterval(t *testing.T) {
	cfg := liveCfg()
	cfg.Live.PollInterval = "soon"
	r := NewRunner(cfg, NewStaticSource(nil, 0), &fakeVenue{}, nil)

	require.Error(t, r.Run(context.Background()))
}

func TestStaticSourceGrowsOneBarPerFetch(t *testing.T) {
	bars := mkBars(ramp(100, 1, 5))
	s := NewStaticSource(bars, 2)

	got, err := s.Fetch(context.Background(), "", time.Time{}, time.Time{}, "")
	require.NoError(t, err)
	require.Len(t, got, 3)

	got, _ = s.Fetch(context.Background(), "", time.Time{}, time.Time{}, "")
	require.Len(t, got, 4)

	// Exhausted source keeps serving the full series.
	s.Fetch(context.Background(), "", time.Time{}, time.Time{}, "")
	got, _ = s.Fetch(context.Background(), "", time.Time{}, time.Time{}, "")
	require.Len(t, got, 5)
}
