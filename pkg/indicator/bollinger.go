package indicator

// BollingerResult holds the Bollinger band columns
type BollingerResult struct {
	Upper     Series
	Middle    Series
	Lower     Series
	Bandwidth Series
	Position  Series
}

// Bollinger computes bands at k sample standard deviations around the period SMA.
// Position is undefined when the bands coincide.
func Bollinger(close []float64, period int, k float64) BollingerResult {
	n := len(close)
	middle := SMA(close, period)
	std := RollingStd(close, period)

	res := BollingerResult{
		Upper:     NewSeries(n),
		Middle:    middle,
		Lower:     NewSeries(n),
		Bandwidth: NewSeries(n),
		Position:  NewSeries(n),
	}
	for i := 0; i < n; i++ {
		if Undefined(middle[i]) || Undefined(std[i]) {
			continue
		}
		upper := middle[i] + k*std[i]
		lower := middle[i] - k*std[i]
		res.Upper[i] = upper
		res.Lower[i] = lower
		res.Bandwidth[i] = ratio(upper-lower, middle[i])
		res.Position[i] = ratio(close[i]-lower, upper-lower)
	}
	return res
}

// BollingerSqueeze flags rows whose bandwidth is below its trailing q-quantile
// over window rows. Undefined rows are false.
func BollingerSqueeze(bandwidth Series, window int, q float64) []bool {
	threshold := RollingQuantile(bandwidth, window, q)
	out := make([]bool, len(bandwidth))
	for i := range out {
		if Undefined(bandwidth[i]) || Undefined(threshold[i]) {
			continue
		}
		out[i] = bandwidth[i] < threshold[i]
	}
	return out
}
