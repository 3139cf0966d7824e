package metrics

import "math"

// pct returns a/b*100, NaN for a zero denominator
func pct(a, b float64) float64 {
	if b == 0 {
		return math.NaN()
	}
	return a / b * 100
}

func tail(values []float64, n int) []float64 {
	if n >= len(values) {
		return values
	}
	return values[len(values)-n:]
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
