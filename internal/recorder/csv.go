package recorder

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"IntradaySentinel/internal/model"
)

// CSVRecorder overwrites a CSV file with the latest batch. The file is written
// to a temporary sibling and renamed into place, so a failed write leaves the
// previous snapshot intact.
type CSVRecorder struct {
	Path string
}

func NewCSVRecorder(path string) *CSVRecorder {
	return &CSVRecorder{Path: path}
}

func (r *CSVRecorder) Name() string { return "csv" }

func (r *CSVRecorder) RecordBatch(_ context.Context, batch model.Batch) error {
	if len(batch) == 0 {
		return nil
	}
	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range batch {
		if err := w.Write(toRow(s)); err != nil {
			tmp.Close()
			return fmt.Errorf("write row %s: %w", s.Symbol, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.Path); err != nil {
		return fmt.Errorf("replace %s: %w", r.Path, err)
	}
	return nil
}

func (r *CSVRecorder) Close() error { return nil }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func toRow(s model.IndicatorSnapshot) []string {
	return []string{
		s.Symbol,
		formatFloat(s.CurrentPrice),
		formatBool(s.Buy),
		formatBool(s.Sell),
		formatFloat(s.RSI),
		formatFloat(s.SMA20),
		formatFloat(s.BollingerUpper),
		formatFloat(s.BollingerLower),
	}
}

// ReadCSV loads a snapshot file written by CSVRecorder.
func ReadCSV(path string) (model.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read csv: missing header")
	}
	for i, col := range Columns {
		if i >= len(rows[0]) || rows[0][i] != col {
			return nil, fmt.Errorf("read csv: unexpected header %v", rows[0])
		}
	}

	batch := make(model.Batch, 0, len(rows)-1)
	for n, row := range rows[1:] {
		s, err := fromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+1, err)
		}
		batch = append(batch, s)
	}
	return batch, nil
}

func fromRow(row []string) (model.IndicatorSnapshot, error) {
	var s model.IndicatorSnapshot
	if len(row) != len(Columns) {
		return s, fmt.Errorf("expected %d fields, got %d", len(Columns), len(row))
	}
	floats := make([]float64, 0, 5)
	for _, i := range []int{1, 4, 5, 6, 7} {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return s, fmt.Errorf("%s: %w", Columns[i], err)
		}
		floats = append(floats, v)
	}
	buy, err := strconv.ParseBool(row[2])
	if err != nil {
		return s, fmt.Errorf("%s: %w", Columns[2], err)
	}
	sell, err := strconv.ParseBool(row[3])
	if err != nil {
		return s, fmt.Errorf("%s: %w", Columns[3], err)
	}
	return model.IndicatorSnapshot{
		Symbol:         row[0],
		CurrentPrice:   floats[0],
		Buy:            buy,
		Sell:           sell,
		RSI:            floats[1],
		SMA20:          floats[2],
		BollingerUpper: floats[3],
		BollingerLower: floats[4],
	}, nil
}
