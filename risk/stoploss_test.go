package risk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStopLossFixed(t *testing.T) {
	sl := NewStopLoss(StopFixed)

	got, err := sl.Price(StopInputs{EntryPrice: 100})
	require.NoError(t, err)
	require.Equal(t, 97.5, got)
}

func TestStopLossFixedRoundsToPaise(t *testing.T) {
	sl := NewStopLoss(StopFixed)

	// 99.99 * 0.975 = 97.49025, rounded to 97.49.
	got, err := sl.Price(StopInputs{EntryPrice: 99.99})
	require.NoError(t, err)
	require.Equal(t, 97.49, got)
}

func TestStopLossTrailing(t *testing.T) {
	sl := NewStopLoss(StopTrailing)

	got, err := sl.Price(StopInputs{EntryPrice: 100, HighestPrice: 110})
	require.NoError(t, err)
	require.Equal(t, 107.8, got)
}

func TestStopLossTrailingMissingHighest(t *testing.T) {
	sl := NewStopLoss(StopTrailing)

	_, err := sl.Price(StopInputs{EntryPrice: 100})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingInput))
}

func TestStopLossDynamic(t *testing.T) {
	sl := NewStopLoss(StopDynamic)

	got, err := sl.Price(StopInputs{EntryPrice: 100, Indicator: 95.556})
	require.NoError(t, err)
	require.Equal(t, 95.56, got)
}

func TestStopLossDynamicMissingIndicator(t *testing.T) {
	sl := NewStopLoss(StopDynamic)

	_, err := sl.Price(StopInputs{EntryPrice: 100})
	require.True(t, errors.Is(err, ErrMissingInput))
}

func TestStopLossUnknownMode(t *testing.T) {
	sl := NewStopLoss(StopMode("banana"))

	_, err := sl.Price(StopInputs{EntryPrice: 100})
	require.True(t, errors.Is(err, ErrInvalidConfiguration))
}
