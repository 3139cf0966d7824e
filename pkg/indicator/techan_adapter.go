package indicator

import (
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// candleEpoch anchors the synthetic daily periods of the techan series;
// techan only requires candle periods to be strictly increasing.
var candleEpoch = time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC)

// newTechanSeries converts the OHLCV input into a techan time series.
// ok is false when a column is short or undefined, or techan rejected a candle.
func newTechanSeries(in Input) (series *techan.TimeSeries, ok bool) {
	n := in.Len()
	for _, col := range [][]float64{in.Open, in.High, in.Low, in.Volume} {
		if len(col) != n || hasUndefined(col) {
			return nil, false
		}
	}
	if hasUndefined(in.Close) {
		return nil, false
	}

	series = techan.NewTimeSeries()
	for i := 0; i < in.Len(); i++ {
		period := techan.NewTimePeriod(candleEpoch.AddDate(0, 0, i), 24*time.Hour)
		candle := techan.NewCandle(period)
		candle.OpenPrice = big.NewDecimal(in.Open[i])
		candle.MaxPrice = big.NewDecimal(in.High[i])
		candle.MinPrice = big.NewDecimal(in.Low[i])
		candle.ClosePrice = big.NewDecimal(in.Close[i])
		candle.Volume = big.NewDecimal(in.Volume[i])
		if !series.AddCandle(candle) {
			return nil, false
		}
	}
	return series, true
}

// HighestHigh returns the rolling maximum of the high column over window bars
func HighestHigh(in Input, window int) Series {
	series, ok := newTechanSeries(in)
	if !ok {
		return rolling(in.High, window, maxOf)
	}
	return fromTechan(techan.NewMaximumValueIndicator(techan.NewHighPriceIndicator(series), window), in.Len(), window)
}

// LowestLow returns the rolling minimum of the low column over window bars
func LowestLow(in Input, window int) Series {
	series, ok := newTechanSeries(in)
	if !ok {
		return rolling(in.Low, window, minOf)
	}
	return fromTechan(techan.NewMinimumValueIndicator(techan.NewLowPriceIndicator(series), window), in.Len(), window)
}

// fromTechan evaluates a techan indicator row by row, leaving the warm-up rows undefined
func fromTechan(ind techan.Indicator, n, window int) Series {
	out := NewSeries(n)
	if window <= 0 {
		return out
	}
	for i := window - 1; i < n; i++ {
		out[i] = ind.Calculate(i).Float()
	}
	return out
}

func maxOf(w []float64) float64 {
	m := w[0]
	for _, v := range w[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(w []float64) float64 {
	m := w[0]
	for _, v := range w[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
