package collector

import (
	"context"
	"math"
	"time"

	"IntradaySentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols present in Series are served verbatim; symbols listed in Errors fail;
// anything else gets a generated intraday walk around Price, or an empty series
// when Price is zero.
type MockFetcher struct {
	Price  float64
	Bars   int
	Series map[string][]float64
	Errors map[string]error
	// Delay simulates a slow source; it honours ctx cancellation.
	Delay time.Duration
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchIntraday(ctx context.Context, symbol, _, _ string) (model.PriceSeries, error) {
	series := model.PriceSeries{Symbol: symbol, FetchedAt: time.Now()}
	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return series, ctx.Err()
		case <-time.After(m.Delay):
		}
	}
	if err, ok := m.Errors[symbol]; ok {
		return series, err
	}
	if closes, ok := m.Series[symbol]; ok {
		series.Bars = barsFromCloses(closes, series.FetchedAt)
		return series, nil
	}
	if m.Price == 0 {
		return series, nil
	}
	n := m.Bars
	if n == 0 {
		n = 120
	}
	series.Bars = generateMockBars(m.Price, n, series.FetchedAt)
	return series, nil
}

func barsFromCloses(closes []float64, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:  end.Add(-time.Duration(len(closes)-i) * time.Minute),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return bars
}

func generateMockBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + 0.004*math.Sin(float64(i)/6) + 0.001*math.Cos(float64(i)*1.3))
		bars[i] = model.OHLCV{
			Time:   end.Add(-time.Duration(count-i) * time.Minute),
			Open:   p * 0.9995,
			High:   p * 1.001,
			Low:    p * 0.999,
			Close:  p,
			Volume: 1000,
		}
	}
	return bars
}
