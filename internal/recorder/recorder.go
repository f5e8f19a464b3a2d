package recorder

import (
	"context"
	"errors"
	"fmt"

	"IntradaySentinel/internal/model"
)

// Columns is the persisted column order shared by every tabular sink.
var Columns = []string{
	"Symbol",
	"Current Price",
	"Buy Signal",
	"Sell Signal",
	"RSI",
	"SMA 20",
	"Bollinger Upper",
	"Bollinger Lower",
}

// Recorder persists the latest batch, replacing whatever it held before.
// Implementations ignore empty batches.
type Recorder interface {
	RecordBatch(ctx context.Context, batch model.Batch) error
	Name() string
	Close() error
}

// MultiRecorder fans a batch out to several sinks. A failing sink does not
// prevent the others from being written.
type MultiRecorder struct {
	sinks []Recorder
}

func NewMultiRecorder(sinks ...Recorder) *MultiRecorder {
	return &MultiRecorder{sinks: sinks}
}

func (m *MultiRecorder) Name() string { return "multi" }

// Add appends a sink.
func (m *MultiRecorder) Add(r Recorder) { m.sinks = append(m.sinks, r) }

// Len returns the number of sinks.
func (m *MultiRecorder) Len() int { return len(m.sinks) }

func (m *MultiRecorder) RecordBatch(ctx context.Context, batch model.Batch) error {
	if len(batch) == 0 {
		return nil
	}
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordBatch(ctx, batch); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (m *MultiRecorder) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
