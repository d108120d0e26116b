package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCSVJournalWritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tradesPath, equityPath)
	require.NoError(t, err)

	runID := NewID()
	ts := time.Date(2025, 1, 1, 9, 20, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(testTrade(runID, NewID(), ts)))
	require.NoError(t, j.RecordEquity(EquityPoint{RunID: runID, Seq: 0, Equity: 100000, Time: ts}))
	require.NoError(t, j.Close())

	tf, err := os.Open(tradesPath)
	require.NoError(t, err)
	defer tf.Close()
	rows, err := csv.NewReader(tf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "trade_id", rows[0][0])
	require.Equal(t, "NIFTY24950CE", rows[1][2])
	require.Equal(t, "50", rows[1][4])
	require.Equal(t, "87.500000", rows[1][7])
	require.Equal(t, "2025-01-01T09:20:00Z", rows[1][9])

	ef, err := os.Open(equityPath)
	require.NoError(t, err)
	defer ef.Close()
	erows, err := csv.NewReader(ef).ReadAll()
	require.NoError(t, err)
	require.Len(t, erows, 2)
	require.Equal(t, []string{"run_id", "seq", "equity", "time"}, erows[0])
	require.Equal(t, "100000.000000", erows[1][2])
}

func TestNewIDMonotonicWithinProcess(t *testing.T) {
	a, b := NewID(), NewID()
	require.Len(t, a, 26)
	require.NotEqual(t, a, b)
	require.Less(t, a, b, "ULIDs issued later must sort later")
}
