package collector

import (
	"context"

	"IntradaySentinel/internal/model"
)

// Fetcher defines the interface for fetching intraday market data.
// An unavailable symbol yields an empty series rather than an error.
type Fetcher interface {
	FetchIntraday(ctx context.Context, symbol, period, interval string) (model.PriceSeries, error)
	Name() string
}
