package indicator

// RSI computes the relative strength index over period deltas using simple
// rolling means of gains and losses. The first delta has no predecessor and
// contributes neither gain nor loss. A zero average loss leaves the row undefined.
func RSI(close []float64, period int) Series {
	n := len(close)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		d := close[i] - close[i-1]
		switch {
		case d > 0:
			gains[i] = d
		case d < 0:
			losses[i] = -d
		}
	}

	avgGain := RollingMean(gains, period)
	avgLoss := RollingMean(losses, period)

	out := NewSeries(n)
	for i := range out {
		rs := ratio(avgGain[i], avgLoss[i])
		if Undefined(rs) {
			continue
		}
		out[i] = 100 - 100/(1+rs)
	}
	return out
}
