// Package journal persists the trade ledger and equity curve of a run.
package journal

import "time"

// TradeRecord is one simulated or live fill.
type TradeRecord struct {
	TradeID string
	RunID   string
	Symbol  string
	Action  string
	Size    int
	Entry   float64
	Exit    float64
	PnL     float64
	Returns float64
	Time    time.Time
	Reason  string
}

// EquityPoint is one capital-affecting event on the equity curve. Seq is
// the event order within the run, starting at 0 for the initial capital.
type EquityPoint struct {
	RunID  string
	Seq    int
	Equity float64
	Time   time.Time
}

// Journal records trades and equity points.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquityPoint) error
	Close() error
}
