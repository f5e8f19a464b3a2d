package calculator

import "math"

// BollingerBands returns the middle (SMA), upper and lower bands using k
// standard deviations around the rolling mean.
func BollingerBands(values []float64, window int, k float64) (middle, upper, lower Series) {
	middle = SMA(values, window)
	sd := StdDev(values, window)
	upper = nanSeries(len(values))
	lower = nanSeries(len(values))
	for i := range values {
		if math.IsNaN(middle[i]) || math.IsNaN(sd[i]) {
			continue
		}
		upper[i] = middle[i] + k*sd[i]
		lower[i] = middle[i] - k*sd[i]
	}
	return middle, upper, lower
}
