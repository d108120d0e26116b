package cmd

import (
	"fmt"

	"github.com/bhanukaranwal/EdgeX/backtest"
	"github.com/bhanukaranwal/EdgeX/config"
	"github.com/bhanukaranwal/EdgeX/journal"
	"github.com/bhanukaranwal/EdgeX/logger"
	"github.com/bhanukaranwal/EdgeX/market"
	"github.com/bhanukaranwal/EdgeX/risk"
	"github.com/bhanukaranwal/EdgeX/strategy"
	"github.com/spf13/cobra"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay a bar series through a strategy and print the summary",
	Long: `Backtest replays historical OHLCV bars through the selected strategy,
filters signals through the risk gate and drawdown guard, simulates fills
and prints the performance summary.

Supported strategies:
  - bollinger:  Bollinger band mean reversion
  - momentum:   short/long moving-average crossover
  - supertrend: Supertrend direction with ADX strength filter

Example:
  edgex backtest --bars data/nifty_5m.csv --strategy supertrend --capital 1000000`,
	RunE: runBacktest,
}

var (
	btBarsPath string
	btConfig   string
	btStrategy string
	btCapital  float64
	btWarmup   int
	btDBPath   string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btBarsPath, "bars", "b", "", "path to bar CSV (time,open,high,low,close,volume) (required)")
	backtestCmd.Flags().StringVarP(&btConfig, "config", "c", "", "path to YAML/JSON config (optional)")
	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", "", "strategy name (bollinger, momentum, supertrend)")
	backtestCmd.Flags().Float64Var(&btCapital, "capital", 0, "initial capital (overrides config)")
	backtestCmd.Flags().IntVar(&btWarmup, "warmup", 50, "warm-up bar offset before replay starts")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "", "path to SQLite journal DB (optional)")

	backtestCmd.MarkFlagRequired("bars")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	log, err := logger.New()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(btConfig)
	if err != nil {
		return err
	}
	if btStrategy != "" {
		cfg.Strategy.Name = btStrategy
	}
	if btCapital > 0 {
		cfg.Account.InitialCapital = btCapital
	}

	bars, err := market.LoadCSV(btBarsPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	strat, err := strategy.New(cfg.Strategy, log)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	guard := risk.NewDrawdownGuard(cfg.Account.InitialCapital, cfg.Risk.MaxDrawdown, cfg.Risk.PauseThreshold, log)
	gate := risk.NewGate(risk.Limits{
		MaxPerTrade: cfg.Risk.MaxPerTradeLimit(),
		MaxTotal:    cfg.Risk.MaxTotal,
	}, guard, log)

	var jrnl journal.Journal
	if btDBPath != "" {
		j, err := journal.NewSQLite(btDBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		jrnl = j
	}

	engine := backtest.NewEngine(backtest.Config{
		InitialCapital: cfg.Account.InitialCapital,
		Warmup:         btWarmup,
	}, strat, gate, jrnl, log)

	fmt.Printf("Running backtest with strategy: %s\n", strat.Name())
	fmt.Printf("  Bars: %s (%d bars)\n\n", btBarsPath, len(bars))

	summary, err := engine.Run(bars)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Printf("Backtest Complete! (run %s)\n", engine.RunID)
	fmt.Printf("  total_pnl:    %.4f\n", summary.TotalPnL)
	fmt.Printf("  sharpe:       %.4f\n", summary.Sharpe)
	fmt.Printf("  sortino:      %.4f\n", summary.Sortino)
	fmt.Printf("  max_drawdown: %.4f\n", summary.MaxDrawdown)
	fmt.Printf("  expectancy:   %.4f\n", summary.Expectancy)
	fmt.Printf("  win_rate:     %.4f\n", summary.WinRate)
	fmt.Printf("  trade_count:  %d\n", summary.TradeCount)
	fmt.Printf("  final_equity: %.2f\n", summary.EquityCurve[len(summary.EquityCurve)-1])

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}
