package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV writes the ledger to two flat files, one for trades and one for the
// equity curve.
type CSV struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write([]string{"trade_id", "run_id", "symbol", "action", "size",
		"entry_price", "exit_price", "pnl", "returns", "time", "reason"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "seq", "equity", "time"}); err != nil {
		return nil, err
	}
	tw.Flush()
	ew.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSV{trades: tw, equity: ew, tf: tf, ef: ef}, nil
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	if err := j.trades.Write([]string{
		t.TradeID,
		t.RunID,
		t.Symbol,
		t.Action,
		strconv.Itoa(t.Size),
		f(t.Entry),
		f(t.Exit),
		f(t.PnL),
		f(t.Returns),
		t.Time.Format(time.RFC3339),
		t.Reason,
	}); err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordEquity(e EquityPoint) error {
	if err := j.equity.Write([]string{
		e.RunID,
		strconv.Itoa(e.Seq),
		f(e.Equity),
		e.Time.Format(time.RFC3339),
	}); err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSV) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}
	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
