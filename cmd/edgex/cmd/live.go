package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/bhanukaranwal/EdgeX/live"
	"github.com/bhanukaranwal/EdgeX/logger"
	"github.com/bhanukaranwal/EdgeX/market"
	"github.com/spf13/cobra"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Run the live poll loop against a paper venue",
	Long: `Live polls a bar source on an interval, runs the decision pipeline and
routes accepted signals to the execution venue. The built-in paper venue
logs simulated fills; a bar CSV replayed one bar per cycle stands in for a
market-data feed.

Stop with Ctrl-C; shutdown takes effect between poll cycles.`,
	RunE: runLive,
}

var (
	liveConfig   string
	liveBarsPath string
)

func init() {
	rootCmd.AddCommand(liveCmd)

	liveCmd.Flags().StringVarP(&liveConfig, "config", "c", "", "path to YAML/JSON config (optional)")
	liveCmd.Flags().StringVarP(&liveBarsPath, "bars", "b", "", "path to bar CSV replayed as the feed (required)")

	liveCmd.MarkFlagRequired("bars")
}

func runLive(cmd *cobra.Command, args []string) error {
	log, err := logger.New()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(liveConfig)
	if err != nil {
		return err
	}

	bars, err := market.LoadCSV(liveBarsPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	source := live.NewStaticSource(bars, cfg.Live.LookbackBars)
	venue := live.NewPaperVenue(log)
	runner := live.NewRunner(cfg, source, venue, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Running live loop with strategy: %s (paper venue)\n", cfg.Strategy.Name)
	return runner.Run(ctx)
}
