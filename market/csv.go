package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadCSV reads bars from a CSV file with columns
// time,open,high,low,close,volume. The time column accepts RFC3339 or epoch
// seconds. A header row is detected and skipped.
func LoadCSV(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses bars from r. See LoadCSV for the expected format.
func ReadCSV(r io.Reader) ([]Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var bars []Bar
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}
		b, err := parseRow(row)
		if err != nil {
			return nil, err
		}
		if n := len(bars); n > 0 && !b.Time.After(bars[n-1].Time) {
			return nil, fmt.Errorf("market: bar %d timestamp %s not after previous %s",
				n, b.Time.Format(time.RFC3339), bars[n-1].Time.Format(time.RFC3339))
		}
		bars = append(bars, b)
	}
	return bars, nil
}

func parseRow(row []string) (Bar, error) {
	if len(row) < 5 {
		return Bar{}, fmt.Errorf("market: bad row (need time,open,high,low,close[,volume]): %v", row)
	}

	ts := strings.TrimSpace(row[0])
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		secs, err2 := strconv.ParseInt(ts, 10, 64)
		if err2 != nil {
			return Bar{}, fmt.Errorf("market: bad time %q: %w", ts, err)
		}
		t = time.Unix(secs, 0).UTC()
	}

	vals := make([]float64, 0, 5)
	for _, col := range row[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(col), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("market: bad value %q: %w", col, err)
		}
		vals = append(vals, v)
		if len(vals) == 5 {
			break
		}
	}

	b := Bar{Time: t, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3]}
	if len(vals) > 4 {
		b.Volume = vals[4]
	}
	return b, nil
}
