package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollingMean_WarmUp(t *testing.T) {
	got := RollingMean([]float64{1, 2, 3, 4, 5}, 3)

	assert.True(t, Undefined(got[0]))
	assert.True(t, Undefined(got[1]))
	assert.InDelta(t, 2.0, got[2], 1e-12)
	assert.InDelta(t, 3.0, got[3], 1e-12)
	assert.InDelta(t, 4.0, got[4], 1e-12)
}

func TestRolling_UndefinedInWindow(t *testing.T) {
	got := RollingMean([]float64{math.NaN(), 2, 3, 4}, 2)

	assert.True(t, Undefined(got[1]), "window touching NaN must stay undefined")
	assert.InDelta(t, 2.5, got[2], 1e-12)
}

func TestRollingStd_Sample(t *testing.T) {
	got := RollingStd([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8)
	// sample std of the classic population-std-2 data set
	assert.InDelta(t, math.Sqrt(32.0/7.0), got[7], 1e-12)
}

func TestRolling_ConstantWindowExact(t *testing.T) {
	values := []float64{33.33, 33.33, 33.33, 33.33, 33.33, 33.33, 33.33}

	mean := RollingMean(values, 5)
	std := RollingStd(values, 5)
	for i := 4; i < len(values); i++ {
		assert.Equal(t, 33.33, mean[i])
		assert.Equal(t, 0.0, std[i])
	}
	assert.True(t, Undefined(ZScore(values, 5)[6]))
}

func TestPercentile_Linear(t *testing.T) {
	values := []float64{4, 1, 3, 2}

	assert.InDelta(t, 1.0, Percentile(values, 0), 1e-12)
	assert.InDelta(t, 4.0, Percentile(values, 1), 1e-12)
	assert.InDelta(t, 2.5, Percentile(values, 0.5), 1e-12)
	assert.InDelta(t, 1.99, Percentile(values, 0.33), 1e-12)
	assert.True(t, Undefined(Percentile(nil, 0.5)))
}

func TestPercentileOfScore_Rank(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	assert.InDelta(t, 75.0, PercentileOfScore(values, 3), 1e-12)
	assert.InDelta(t, 100.0, PercentileOfScore(values, 5), 1e-12)
	assert.InDelta(t, 0.0, PercentileOfScore(values, 0), 1e-12)
	assert.InDelta(t, 87.5, PercentileOfScore([]float64{1, 2, 3, 3}, 3), 1e-12)
}

func TestBetaAndCorrelation(t *testing.T) {
	x := []float64{0.01, -0.02, 0.03, 0.005, -0.01}

	assert.InDelta(t, 1.0, Beta(x, x), 1e-12)
	assert.InDelta(t, 1.0, Correlation(x, x), 1e-12)

	doubled := Series(x).Scale(2)
	assert.InDelta(t, 2.0, Beta(doubled, x), 1e-12)

	assert.True(t, Undefined(Correlation(x, flat(5, 0.5))))
	assert.True(t, Undefined(Beta(x, flat(5, 0.5))))
}

func TestSeries_Accessors(t *testing.T) {
	s := Series{math.NaN(), 1, math.NaN()}

	_, ok := s.Last()
	assert.False(t, ok)
	assert.Equal(t, 7.0, s.LastOr(7))
	assert.Equal(t, []float64{1}, s.DefinedValues())
	assert.True(t, Undefined(s.At(5)))
	assert.True(t, s.Defined(1))
}
