package calculator

import "math"

// Series is an indicator output aligned index-for-index with its input.
// Slots before the indicator's warm-up window are NaN.
type Series []float64

// Latest returns the most recent value. ok is false when the series is empty
// or still inside its warm-up window.
func (s Series) Latest() (v float64, ok bool) {
	if len(s) == 0 {
		return 0, false
	}
	v = s[len(s)-1]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Valid counts the non-NaN values in the series.
func (s Series) Valid() int {
	n := 0
	for _, v := range s {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

func nanSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
