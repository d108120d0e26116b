// Package config loads and validates the run configuration. Files may be
// YAML or JSON; YAML is tried first.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration for a backtest or live run.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Risk     RiskConfig     `json:"risk" yaml:"risk"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Live     LiveConfig     `json:"live" yaml:"live"`
}

// AccountConfig holds capital initialization parameters.
type AccountConfig struct {
	ID             string  `json:"id" yaml:"id"`
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// StrategyConfig carries the tunables of all strategy variants. Each variant
// reads only the fields it cares about; zero values fall back to the
// documented defaults.
type StrategyConfig struct {
	Name       string `json:"name" yaml:"name"`
	Underlying string `json:"underlying" yaml:"underlying"` // option symbol prefix, default "NIFTY"
	LotSize    int    `json:"lot_size" yaml:"lot_size"`     // default 50

	// Strike derivation: strike = round(price/increment) * increment.
	StrikeIncrement float64 `json:"strike_increment" yaml:"strike_increment"` // default 50

	// BollingerReversion
	Window int     `json:"window" yaml:"window"`   // default 20
	NumStd float64 `json:"num_std" yaml:"num_std"` // default 2

	// MomentumBreakout
	ShortMAPeriod int `json:"short_ma_period" yaml:"short_ma_period"` // default 10
	LongMAPeriod  int `json:"long_ma_period" yaml:"long_ma_period"`   // default 30

	// SupertrendADX
	SupertrendPeriod     int     `json:"supertrend_period" yaml:"supertrend_period"`         // default 10
	SupertrendMultiplier float64 `json:"supertrend_multiplier" yaml:"supertrend_multiplier"` // default 3
	ADXPeriod            int     `json:"adx_period" yaml:"adx_period"`                       // default 14
	ADXThreshold         float64 `json:"adx_threshold" yaml:"adx_threshold"`                 // default 25
}

// RiskConfig bundles exposure limits, drawdown thresholds, sizing and stop
// parameters.
type RiskConfig struct {
	// PositionLimit is the legacy single limit; when set it stands in for
	// MaxPerTrade. MaxTotal == 0 disables the aggregate cap.
	PositionLimit int `json:"position_limit" yaml:"position_limit"`
	MaxPerTrade   int `json:"max_per_trade" yaml:"max_per_trade"`
	MaxTotal      int `json:"max_total" yaml:"max_total"`

	MaxDrawdown    float64 `json:"max_drawdown" yaml:"max_drawdown"`       // default 0.20
	PauseThreshold float64 `json:"pause_threshold" yaml:"pause_threshold"` // default 0.15

	RiskPerTrade float64 `json:"risk_per_trade" yaml:"risk_per_trade"` // default 0.02
	MinLotSize   int     `json:"min_lot_size" yaml:"min_lot_size"`     // default 25
	MaxLots      int     `json:"max_lots" yaml:"max_lots"`             // default 10

	StopMode     string  `json:"stop_mode" yaml:"stop_mode"`           // fixed|trailing|dynamic, default fixed
	StopFixedPct float64 `json:"stop_fixed_pct" yaml:"stop_fixed_pct"` // default 2.5
	StopTrailPct float64 `json:"stop_trail_pct" yaml:"stop_trail_pct"` // default 2.0
}

// MaxPerTradeLimit resolves the per-trade limit, honoring the legacy
// position_limit alias.
func (r RiskConfig) MaxPerTradeLimit() int {
	if r.MaxPerTrade > 0 {
		return r.MaxPerTrade
	}
	return r.PositionLimit
}

// JournalConfig selects the trade-ledger backend.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
}

// LiveConfig controls the live poll loop.
type LiveConfig struct {
	PollInterval string `json:"poll_interval" yaml:"poll_interval"` // e.g. "60s"
	SymbolToken  string `json:"symbol_token" yaml:"symbol_token"`
	Interval     string `json:"interval" yaml:"interval"` // bar interval, e.g. "5minute"
	LookbackBars int    `json:"lookback_bars" yaml:"lookback_bars"`
}

// ParsePollInterval converts PollInterval, defaulting to one minute.
func (l LiveConfig) ParsePollInterval() (time.Duration, error) {
	if l.PollInterval == "" {
		return time.Minute, nil
	}
	return time.ParseDuration(l.PollInterval)
}

// LoadFromFile loads configuration, trying YAML then JSON, and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML (or JSON for .json paths).
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if len(path) > 5 && path[len(path)-5:] == ".json" {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate returns the first configuration problem found.
func (c *Config) Validate() error {
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	if c.Risk.MaxDrawdown <= 0 || c.Risk.MaxDrawdown >= 1 {
		return fmt.Errorf("risk.max_drawdown must be in (0, 1)")
	}
	if c.Risk.PauseThreshold <= 0 || c.Risk.PauseThreshold >= 1 {
		return fmt.Errorf("risk.pause_threshold must be in (0, 1)")
	}
	// The guard itself does not enforce this ordering; it is a
	// configuration responsibility.
	if c.Risk.PauseThreshold >= c.Risk.MaxDrawdown {
		return fmt.Errorf("risk.pause_threshold (%v) must be below risk.max_drawdown (%v)",
			c.Risk.PauseThreshold, c.Risk.MaxDrawdown)
	}
	if c.Risk.RiskPerTrade <= 0 || c.Risk.RiskPerTrade > 0.5 {
		return fmt.Errorf("risk.risk_per_trade must be >0 and <=0.5")
	}
	if c.Risk.MinLotSize <= 0 {
		return fmt.Errorf("risk.min_lot_size must be positive")
	}
	if c.Risk.MaxLots <= 0 {
		return fmt.Errorf("risk.max_lots must be positive")
	}
	if c.Risk.MaxPerTradeLimit() <= 0 {
		return fmt.Errorf("risk.max_per_trade (or position_limit) must be positive")
	}
	switch c.Risk.StopMode {
	case "fixed", "trailing", "dynamic":
	default:
		return fmt.Errorf("risk.stop_mode must be fixed, trailing or dynamic, got %q", c.Risk.StopMode)
	}
	switch c.Journal.Type {
	case "", "none":
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite type")
		}
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for csv type")
		}
	default:
		return fmt.Errorf("journal.type must be none, csv or sqlite")
	}
	if _, err := c.Live.ParsePollInterval(); err != nil {
		return fmt.Errorf("live.poll_interval: %w", err)
	}
	return nil
}

// Default returns a configuration with documented defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:             "SIM-001",
			InitialCapital: 1_000_000,
		},
		Strategy: StrategyConfig{
			Name:                 "bollinger",
			Underlying:           "NIFTY",
			LotSize:              50,
			StrikeIncrement:      50,
			Window:               20,
			NumStd:               2,
			ShortMAPeriod:        10,
			LongMAPeriod:         30,
			SupertrendPeriod:     10,
			SupertrendMultiplier: 3,
			ADXPeriod:            14,
			ADXThreshold:         25,
		},
		Risk: RiskConfig{
			MaxPerTrade:    500,
			MaxTotal:       1500,
			MaxDrawdown:    0.20,
			PauseThreshold: 0.15,
			RiskPerTrade:   0.02,
			MinLotSize:     25,
			MaxLots:        10,
			StopMode:       "fixed",
			StopFixedPct:   2.5,
			StopTrailPct:   2.0,
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Live: LiveConfig{
			PollInterval: "60s",
			SymbolToken:  "260105",
			Interval:     "5minute",
			LookbackBars: 200,
		},
	}
}
