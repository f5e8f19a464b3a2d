package notifier

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"IntradaySentinel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBatch(t *testing.T) {
	batch := model.Batch{
		{Symbol: "AAA", CurrentPrice: 90, Buy: true, RSI: 25, SMA20: 102.5, BollingerUpper: 110, BollingerLower: 95},
		{Symbol: "BBB", CurrentPrice: 101.25, RSI: 50, SMA20: 100, BollingerUpper: 104, BollingerLower: 96},
	}
	out := FormatBatch(batch)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 18, "eight fields plus separator per snapshot")

	assert.Equal(t, []string{
		"Symbol: AAA",
		"Current Price: 90",
		"Buy Signal: True",
		"Sell Signal: False",
		"RSI: 25",
		"SMA 20: 102.5",
		"Bollinger Upper: 110",
		"Bollinger Lower: 95",
		strings.Repeat("-", 40),
	}, lines[:9])
	assert.Equal(t, "Current Price: 101.25", lines[10])
}

func TestFormatBatch_Empty(t *testing.T) {
	assert.Empty(t, FormatBatch(nil))
}

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := &ConsoleNotifier{Out: &buf}
	require.NoError(t, n.Notify(model.Batch{{Symbol: "AAA"}}))
	assert.Contains(t, buf.String(), "Symbol: AAA\n")
	assert.NotContains(t, buf.String(), "Waiting")
}

func TestConsoleNotifier_Waiting(t *testing.T) {
	tests := []struct {
		name    string
		next    time.Duration
		updated bool
		want    string
	}{
		{"fixed delay", 30 * time.Second, true, "Data updated. Waiting 30s for the next update...\n\n"},
		{"next cron run", 17*time.Minute + 3*time.Second, true, "Data updated. Waiting 17m3s for the next update...\n\n"},
		{"empty cycle", 30 * time.Second, false, "No data available this cycle. Waiting 30s for the next update...\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n := &ConsoleNotifier{Out: &buf}
			require.NoError(t, n.Waiting(tt.next, tt.updated))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
