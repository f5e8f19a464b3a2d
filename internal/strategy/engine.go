package strategy

import (
	"errors"
	"fmt"

	"IntradaySentinel/internal/calculator"
	"IntradaySentinel/internal/model"
)

var (
	// ErrNoData means the data source returned an empty series.
	ErrNoData = errors.New("no data available")
	// ErrInsufficientData means the series is too short for an indicator window.
	ErrInsufficientData = errors.New("insufficient data for indicators")
)

// Evaluate computes the indicator snapshot and buy/sell classification for one symbol.
// It has no side effects.
func Evaluate(series model.PriceSeries, p Params) (*model.IndicatorSnapshot, error) {
	if series.Empty() {
		return nil, ErrNoData
	}
	closes := series.Closes()
	if len(closes) < p.MinSamples() {
		return nil, fmt.Errorf("%w: %d samples, need %d", ErrInsufficientData, len(closes), p.MinSamples())
	}

	price := closes[len(closes)-1]
	rsi, ok := calculator.RSI(closes, p.RSIPeriod).Latest()
	if !ok {
		return nil, fmt.Errorf("%w: rsi(%d)", ErrInsufficientData, p.RSIPeriod)
	}
	sma, ok := calculator.SMA(closes, p.SMAPeriod).Latest()
	if !ok {
		return nil, fmt.Errorf("%w: sma(%d)", ErrInsufficientData, p.SMAPeriod)
	}
	_, upperSeries, lowerSeries := calculator.BollingerBands(closes, p.BollingerPeriod, p.BollingerStdDev)
	upper, okUpper := upperSeries.Latest()
	lower, okLower := lowerSeries.Latest()
	if !okUpper || !okLower {
		return nil, fmt.Errorf("%w: bollinger(%d)", ErrInsufficientData, p.BollingerPeriod)
	}

	buy, sell := Classify(price, rsi, upper, lower, p)
	return &model.IndicatorSnapshot{
		Symbol:         series.Symbol,
		CurrentPrice:   price,
		Buy:            buy,
		Sell:           sell,
		RSI:            rsi,
		SMA20:          sma,
		BollingerUpper: upper,
		BollingerLower: lower,
	}, nil
}

// Classify applies the mean-reversion rule: buy below the lower band while oversold,
// sell above the upper band while overbought.
func Classify(price, rsi, upper, lower float64, p Params) (buy, sell bool) {
	buy = price < lower && rsi < p.RSIOversold
	sell = price > upper && rsi > p.RSIOverbought
	return buy, sell
}
