package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bhanukaranwal/EdgeX/config"
)

func supertrendCfg() config.StrategyConfig {
	return config.StrategyConfig{
		Name:                 "supertrend",
		SupertrendPeriod:     3,
		SupertrendMultiplier: 3,
		ADXPeriod:            3,
		ADXThreshold:         25,
	}
}

func TestSupertrendADXUptrendBuysCall(t *testing.T) {
	s, err := NewSupertrendADX(supertrendCfg(), nil)
	require.NoError(t, err)

	sigs := s.GenerateSignals(mkBars(ramp(100, 5, 20)))
	require.Len(t, sigs, 1)
	require.Equal(t, BuyCall, sigs[0].Action)
	require.Equal(t, "Supertrend up, ADX strong", sigs[0].Reason)
}

func TestSupertrendADXDowntrendBuysPut(t *testing.T) {
	s, err := NewSupertrendADX(supertrendCfg(), nil)
	require.NoError(t, err)

	sigs := s.GenerateSignals(mkBars(ramp(200, -5, 20)))
	require.Len(t, sigs, 1)
	require.Equal(t, BuyPut, sigs[0].Action)
}

func TestSupertrendADXFlatSeriesNoSignal(t *testing.T) {
	s, err := NewSupertrendADX(supertrendCfg(), nil)
	require.NoError(t, err)

	// Zero directional movement leaves ADX undefined; the strategy must
	// swallow that, not trade on it.
	sigs := s.GenerateSignals(mkBars(repeat(100, 20)))
	require.Empty(t, sigs)
}

func TestSupertrendADXShortWindowNoSignal(t *testing.T) {
	s, err := NewSupertrendADX(supertrendCfg(), nil)
	require.NoError(t, err)
	require.Equal(t, 7, s.Lookback())
	require.Empty(t, s.GenerateSignals(mkBars(ramp(100, 5, 6))))
}

func TestSupertrendADXDefaultLookback(t *testing.T) {
	s, err := NewSupertrendADX(config.StrategyConfig{Name: "supertrend"}, nil)
	require.NoError(t, err)
	require.Equal(t, 29, s.Lookback())
}
