package indicator

import "math"

// TradingDaysPerYear annualises daily statistics
const TradingDaysPerYear = 252

// Returns is the fractional change between consecutive rows; the first row is undefined
func Returns(values []float64) Series {
	out := NewSeries(len(values))
	for i := 1; i < len(values); i++ {
		out[i] = ratio(values[i]-values[i-1], values[i-1])
	}
	return out
}

// LogReturns is ln(v[i]/v[i-1]); the first row is undefined
func LogReturns(values []float64) Series {
	out := NewSeries(len(values))
	for i := 1; i < len(values); i++ {
		r := ratio(values[i], values[i-1])
		if r > 0 {
			out[i] = math.Log(r)
		}
	}
	return out
}

// RollingVolatility is the rolling sample std of returns, optionally scaled by sqrt(252)
func RollingVolatility(returns []float64, window int, annualize bool) Series {
	vol := RollingStd(returns, window)
	if annualize {
		return vol.Scale(math.Sqrt(TradingDaysPerYear))
	}
	return vol
}

// DailySpreadPct is (high-low)/close*100 per bar
func DailySpreadPct(in Input) Series {
	out := make(Series, in.Len())
	for i := range out {
		out[i] = ratio(in.High[i]-in.Low[i], in.Close[i]) * 100
	}
	return out
}
