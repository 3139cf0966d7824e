package indicator

// StochasticResult holds %K and its %D smoothing
type StochasticResult struct {
	K Series
	D Series
}

// Stochastic computes %K = 100*(close-LL)/(HH-LL) over kPeriod bars and %D = SMA(%K, dPeriod)
func Stochastic(in Input, kPeriod, dPeriod int) StochasticResult {
	hh := HighestHigh(in, kPeriod)
	ll := LowestLow(in, kPeriod)

	k := NewSeries(in.Len())
	for i := range k {
		r := ratio(in.Close[i]-ll[i], hh[i]-ll[i])
		if !Undefined(r) {
			k[i] = 100 * r
		}
	}
	return StochasticResult{K: k, D: SMA(k, dPeriod)}
}

// WilliamsR computes -100*(HH-close)/(HH-LL) over period bars
func WilliamsR(in Input, period int) Series {
	hh := HighestHigh(in, period)
	ll := LowestLow(in, period)

	out := NewSeries(in.Len())
	for i := range out {
		r := ratio(hh[i]-in.Close[i], hh[i]-ll[i])
		if !Undefined(r) {
			out[i] = -100 * r
		}
	}
	return out
}
