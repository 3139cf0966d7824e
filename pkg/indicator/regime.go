package indicator

import "github.com/mohamedkhairy/equity-signals/internal/models"

// ClusterWindow is the trailing window of the volatility cluster z-score
const ClusterWindow = 20

// ClassifyVolatilityRegime buckets each row against the trailing 33rd and 67th
// percentiles of the volatility column over lookback rows:
// at or below p33 is low, above p67 is high, otherwise medium.
func ClassifyVolatilityRegime(vol Series, lookback int) []models.VolatilityRegime {
	p33 := RollingQuantile(vol, lookback, 0.33)
	p67 := RollingQuantile(vol, lookback, 0.67)

	out := make([]models.VolatilityRegime, len(vol))
	for i, v := range vol {
		switch {
		case Undefined(v) || Undefined(p33[i]) || Undefined(p67[i]):
			out[i] = models.RegimeUndefined
		case v <= p33[i]:
			out[i] = models.RegimeLow
		case v > p67[i]:
			out[i] = models.RegimeHigh
		default:
			out[i] = models.RegimeMedium
		}
	}
	return out
}

// DetectVolatilityClusters flags rows whose volatility z-score against the
// trailing 20-row mean and std exceeds threshold
func DetectVolatilityClusters(vol Series, threshold float64) []bool {
	z := ZScore(vol, ClusterWindow)
	out := make([]bool, len(vol))
	for i, v := range z {
		out[i] = !Undefined(v) && v > threshold
	}
	return out
}

// ZScore is (x - rolling mean) / rolling std over window rows
func ZScore(values []float64, window int) Series {
	mean := RollingMean(values, window)
	std := RollingStd(values, window)
	out := NewSeries(len(values))
	for i := range out {
		out[i] = ratio(values[i]-mean[i], std[i])
	}
	return out
}
