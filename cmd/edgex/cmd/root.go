package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "edgex",
	Short: "An automated options-trading bot with a backtest simulator",
	Long: `EdgeX ingests historical or live price bars, generates signals from
pluggable strategies, filters them through risk rules, sizes and stops
positions, and simulates execution to produce performance statistics.

It provides tools for:
  - Backtesting strategies against historical OHLCV data
  - Risk gating with exposure limits and a drawdown circuit breaker
  - Volatility-aware position sizing and stop-loss computation
  - Journaling trade ledgers to SQLite or CSV
  - Running a live paper-trading poll loop`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}
