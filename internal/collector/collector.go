package collector

import (
	"context"
	"fmt"
	"time"

	"IntradaySentinel/internal/model"
	"IntradaySentinel/internal/strategy"
)

// DefaultFetchTimeout bounds a single symbol fetch.
const DefaultFetchTimeout = 20 * time.Second

// Collector orchestrates data fetching and indicator computation for one symbol at a time.
type Collector struct {
	Fetcher  Fetcher
	Params   strategy.Params
	Period   string
	Interval string
	Timeout  time.Duration
}

// NewCollector creates a new Collector for the current session at one-minute granularity.
func NewCollector(fetcher Fetcher, params strategy.Params) *Collector {
	return &Collector{
		Fetcher:  fetcher,
		Params:   params,
		Period:   "1d",
		Interval: "1m",
		Timeout:  DefaultFetchTimeout,
	}
}

// Collect fetches the intraday series for symbol and evaluates it.
// An empty series surfaces as strategy.ErrNoData.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.IndicatorSnapshot, error) {
	fetchCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	series, err := c.Fetcher.FetchIntraday(fetchCtx, symbol, c.Period, c.Interval)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if series.Symbol == "" {
		series.Symbol = symbol
	}
	return strategy.Evaluate(series, c.Params)
}
