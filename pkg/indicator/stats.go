package indicator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// rolling applies fn to every full trailing window. A window containing an
// undefined row yields an undefined result.
func rolling(values []float64, window int, fn func(w []float64) float64) Series {
	out := NewSeries(len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		w := values[i-window+1 : i+1]
		if hasUndefined(w) {
			continue
		}
		out[i] = fn(w)
	}
	return out
}

// isConstant reports whether every value equals the first; summing such a
// window can still round away from the value itself
func isConstant(w []float64) bool {
	if len(w) == 0 {
		return false
	}
	for _, v := range w[1:] {
		if v != w[0] {
			return false
		}
	}
	return true
}

// RollingMean is the simple moving average over window rows
func RollingMean(values []float64, window int) Series {
	return rolling(values, window, func(w []float64) float64 {
		if isConstant(w) {
			return w[0]
		}
		return stat.Mean(w, nil)
	})
}

// RollingStd is the sample (n-1) standard deviation over window rows
func RollingStd(values []float64, window int) Series {
	return rolling(values, window, func(w []float64) float64 {
		if len(w) < 2 {
			return math.NaN()
		}
		if isConstant(w) {
			return 0
		}
		return stat.StdDev(w, nil)
	})
}

// RollingQuantile is the q-th quantile (linear interpolation) over window rows
func RollingQuantile(values []float64, window int, q float64) Series {
	return rolling(values, window, func(w []float64) float64 {
		return Percentile(w, q)
	})
}

// Percentile returns the q-th quantile (0..1) of values using linear
// interpolation between closest ranks. Undefined rows are ignored.
func Percentile(values []float64, q float64) float64 {
	sorted := Series(values).DefinedValues()
	if len(sorted) == 0 {
		return math.NaN()
	}
	sort.Float64s(sorted)
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// PercentileOfScore returns the percentile rank (0..100) of score within values.
// Ties are averaged: (count(<score) + count(<=score) [+1 if any tie]) * 50 / n.
func PercentileOfScore(values []float64, score float64) float64 {
	defined := Series(values).DefinedValues()
	if len(defined) == 0 || math.IsNaN(score) {
		return math.NaN()
	}
	var left, right int
	for _, v := range defined {
		if v < score {
			left++
		}
		if v <= score {
			right++
		}
	}
	extra := 0
	if right > left {
		extra = 1
	}
	return float64(left+right+extra) * 50.0 / float64(len(defined))
}

// Mean of the defined rows
func Mean(values []float64) float64 {
	d := Series(values).DefinedValues()
	if len(d) == 0 {
		return math.NaN()
	}
	return stat.Mean(d, nil)
}

// StdDev is the sample standard deviation of the defined rows
func StdDev(values []float64) float64 {
	d := Series(values).DefinedValues()
	if len(d) < 2 {
		return math.NaN()
	}
	return stat.StdDev(d, nil)
}

// Correlation is the Pearson correlation of two equal-length samples,
// undefined when either side has zero variance.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// Beta is cov(x, y) / var(y) using the same (n-1) normalisation on both sides
func Beta(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}
	return ratio(stat.Covariance(x, y, nil), stat.Variance(y, nil))
}
