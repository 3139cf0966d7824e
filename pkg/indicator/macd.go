package indicator

// MACDResult holds the three MACD columns
type MACDResult struct {
	MACD      Series
	Signal    Series
	Histogram Series
}

// MACD computes EMA(fast) - EMA(slow), its signal line EMA(signal) and the histogram
func MACD(close []float64, fast, slow, signal int) MACDResult {
	fastEMA := EMA(close, fast)
	slowEMA := EMA(close, slow)

	line := make(Series, len(close))
	for i := range line {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	sig := EMA(line, signal)

	hist := make(Series, len(close))
	for i := range hist {
		hist[i] = line[i] - sig[i]
	}
	return MACDResult{MACD: line, Signal: sig, Histogram: hist}
}
