package calculator

import "math"

// RSI computes the Relative Strength Index using Wilder smoothing, expressed as an
// exponential mean with alpha = 1/window over per-bar gains and losses. The first
// bar contributes a zero change; values are emitted from index window-1 onwards.
// A window with no losses reports 100.
func RSI(values []float64, window int) Series {
	out := nanSeries(len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	alpha := 1.0 / float64(window)
	var avgGain, avgLoss float64
	for i := range values {
		gain, loss := 0.0, 0.0
		if i > 0 {
			change := values[i] - values[i-1]
			if change > 0 {
				gain = change
			} else {
				loss = -change
			}
		}
		if i == 0 {
			avgGain, avgLoss = gain, loss
		} else {
			avgGain = (1-alpha)*avgGain + alpha*gain
			avgLoss = (1-alpha)*avgLoss + alpha*loss
		}
		if i < window-1 {
			continue
		}
		out[i] = computeRSI(avgGain, avgLoss)
	}
	return out
}

func computeRSI(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rsi := 100.0 - 100.0/(1.0+avgGain/avgLoss)
	return math.Max(0, math.Min(100, rsi))
}
