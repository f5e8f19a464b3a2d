package notifier

import (
	"strconv"
	"strings"

	"IntradaySentinel/internal/model"
)

// Separator follows every snapshot block on the console.
var Separator = strings.Repeat("-", 40)

// FormatBatch renders each snapshot as eight labeled lines followed by a separator.
func FormatBatch(batch model.Batch) string {
	var b strings.Builder
	for _, s := range batch {
		b.WriteString("Symbol: " + s.Symbol + "\n")
		b.WriteString("Current Price: " + formatFloat(s.CurrentPrice) + "\n")
		b.WriteString("Buy Signal: " + formatBool(s.Buy) + "\n")
		b.WriteString("Sell Signal: " + formatBool(s.Sell) + "\n")
		b.WriteString("RSI: " + formatFloat(s.RSI) + "\n")
		b.WriteString("SMA 20: " + formatFloat(s.SMA20) + "\n")
		b.WriteString("Bollinger Upper: " + formatFloat(s.BollingerUpper) + "\n")
		b.WriteString("Bollinger Lower: " + formatFloat(s.BollingerLower) + "\n")
		b.WriteString(Separator + "\n")
	}
	return b.String()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
