package model

// IndicatorSnapshot is the per-symbol result of one polling cycle.
// Field order matches the persisted column order.
type IndicatorSnapshot struct {
	Symbol         string  `json:"symbol" db:"symbol"`
	CurrentPrice   float64 `json:"current_price" db:"current_price"`
	Buy            bool    `json:"buy_signal" db:"buy_signal"`
	Sell           bool    `json:"sell_signal" db:"sell_signal"`
	RSI            float64 `json:"rsi" db:"rsi"`
	SMA20          float64 `json:"sma_20" db:"sma_20"`
	BollingerUpper float64 `json:"bollinger_upper" db:"bollinger_upper"`
	BollingerLower float64 `json:"bollinger_lower" db:"bollinger_lower"`
}

// Signal returns "BUY", "SELL" or "HOLD".
func (s IndicatorSnapshot) Signal() string {
	switch {
	case s.Buy:
		return "BUY"
	case s.Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Batch holds the snapshots of every symbol evaluated successfully in one cycle,
// in configured symbol order.
type Batch []IndicatorSnapshot

// Symbols lists the symbols present in the batch.
func (b Batch) Symbols() []string {
	out := make([]string, len(b))
	for i, s := range b {
		out[i] = s.Symbol
	}
	return out
}
