package indicator

import "fmt"

// DefaultMAPeriods are the moving average windows added to every annotated series
var DefaultMAPeriods = []int{5, 10, 20, 50, 200}

// SMA is the simple moving average of values over period rows
func SMA(values []float64, period int) Series {
	return RollingMean(values, period)
}

// EMA is the bias-adjusted exponentially weighted mean with alpha = 2/(span+1).
// It is defined from the first observation: each row is the weighted average of
// every row so far, weights decaying by (1-alpha) per step. The running mean is
// only moved when the new value differs from it, so a constant input stays
// exactly constant.
func EMA(values []float64, span int) Series {
	out := NewSeries(len(values))
	if span < 1 {
		return out
	}
	decay := 1 - 2.0/(float64(span)+1)
	var weighted, oldWt float64
	started := false
	for i, v := range values {
		if Undefined(v) {
			if started {
				oldWt *= decay
				out[i] = weighted
			}
			continue
		}
		if !started {
			weighted, oldWt = v, 1
			started = true
			out[i] = weighted
			continue
		}
		oldWt *= decay
		if weighted != v {
			weighted = (oldWt*weighted + v) / (oldWt + 1)
		}
		oldWt++
		out[i] = weighted
	}
	return out
}

// MovingAverages returns one SMA column per period, keyed ma_<period>
func MovingAverages(close []float64, periods []int) map[string]Series {
	out := make(map[string]Series, len(periods))
	for _, p := range periods {
		out[MAColumn(p)] = SMA(close, p)
	}
	return out
}

// MAColumn is the column name of the SMA with the given period
func MAColumn(period int) string {
	return fmt.Sprintf("ma_%d", period)
}
