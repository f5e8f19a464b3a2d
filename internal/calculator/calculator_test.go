package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesLatest(t *testing.T) {
	_, ok := Series{}.Latest()
	assert.False(t, ok, "empty series has no latest value")

	_, ok = Series{1, math.NaN()}.Latest()
	assert.False(t, ok, "NaN tail means warm-up not reached")

	v, ok := Series{math.NaN(), 3.5}.Latest()
	require.True(t, ok)
	assert.Equal(t, 3.5, v)
}

func TestSMA(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-12)
	assert.InDelta(t, 3.0, out[3], 1e-12)
	assert.InDelta(t, 4.0, out[4], 1e-12)
	assert.Equal(t, 3, out.Valid())
}

func TestSMA_ShortInput(t *testing.T) {
	out := SMA([]float64{1, 2}, 20)
	require.Len(t, out, 2)
	_, ok := out.Latest()
	assert.False(t, ok)

	out = SMA([]float64{1, 2}, 0)
	_, ok = out.Latest()
	assert.False(t, ok, "non-positive window never panics and yields nothing")
}

func TestStdDev_Population(t *testing.T) {
	out := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8)
	v, ok := out.Latest()
	require.True(t, ok)
	assert.InDelta(t, 2.0, v, 1e-12)
}

func TestBollingerBands_Constant(t *testing.T) {
	values := make([]float64, 25)
	for i := range values {
		values[i] = 100
	}
	mid, up, low := BollingerBands(values, 20, 2)
	m, _ := mid.Latest()
	u, _ := up.Latest()
	l, _ := low.Latest()
	assert.Equal(t, 100.0, m)
	assert.Equal(t, 100.0, u)
	assert.Equal(t, 100.0, l)
}

func TestBollingerBands_Ordering(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = 100 + 5*math.Sin(float64(i)/3) + float64(i%7)
	}
	mid, up, low := BollingerBands(values, 20, 2)
	for i := 19; i < len(values); i++ {
		assert.LessOrEqual(t, low[i], mid[i])
		assert.LessOrEqual(t, mid[i], up[i])
	}
	for i := 0; i < 19; i++ {
		assert.True(t, math.IsNaN(up[i]))
	}
}

func TestRSI_Small(t *testing.T) {
	out := RSI([]float64{1, 2, 1}, 2)
	require.Len(t, out, 3)
	assert.True(t, math.IsNaN(out[0]))
	assert.InDelta(t, 100.0, out[1], 1e-9)
	assert.InDelta(t, 100.0/3.0, out[2], 1e-9)
}

func TestRSI_Extremes(t *testing.T) {
	up := make([]float64, 30)
	down := make([]float64, 30)
	for i := range up {
		up[i] = 100 + float64(i)
		down[i] = 100 - float64(i)
	}
	v, ok := RSI(up, 14).Latest()
	require.True(t, ok)
	assert.Equal(t, 100.0, v)

	v, ok = RSI(down, 14).Latest()
	require.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestRSI_Bounded(t *testing.T) {
	values := make([]float64, 200)
	for i := range values {
		values[i] = 50 + 10*math.Sin(float64(i)*0.7) + 3*math.Cos(float64(i)*1.3)
	}
	out := RSI(values, 14)
	assert.Equal(t, len(values)-13, out.Valid())
	for _, v := range out {
		if math.IsNaN(v) {
			continue
		}
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestRSI_WarmupWindow(t *testing.T) {
	out := RSI([]float64{1, 2, 3}, 14)
	_, ok := out.Latest()
	assert.False(t, ok)
}
