package signals

import (
	"math"

	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
)

// Signal thresholds
const (
	RSIOversold      = 30.0
	RSIOverbought    = 70.0
	VolumeZThreshold = 1.5
	ReturnStdWindow  = 20

	// BuyThreshold and SellThreshold bound the composite score; a score exactly
	// on a threshold is Hold.
	BuyThreshold  = 0.30
	SellThreshold = -0.30

	// scoreTolerance absorbs rounding in the weighted sum (0.2+0.1 != 0.3)
	scoreTolerance = 1e-9
)

// Weights are the composite blending weights per indicator
type Weights struct {
	RSI       float64
	MACD      float64
	Bollinger float64
	MA        float64
	Volume    float64
}

// DefaultWeights is the fixed composite policy
var DefaultWeights = Weights{RSI: 0.25, MACD: 0.25, Bollinger: 0.20, MA: 0.20, Volume: 0.10}

// Input holds the columns the composer reads
type Input struct {
	Close        indicator.Series
	Returns      indicator.Series
	RSI          indicator.Series
	MACD         indicator.Series
	MACDSignal   indicator.Series
	BBUpper      indicator.Series
	BBLower      indicator.Series
	MA5          indicator.Series
	MA10         indicator.Series
	MA20         indicator.Series
	VolumeZScore indicator.Series
}

// InputFromColumns picks the composer inputs out of computed indicator columns
func InputFromColumns(closes []float64, cols indicator.Columns) Input {
	return Input{
		Close:        closes,
		Returns:      cols[indicator.ColReturns],
		RSI:          cols[indicator.ColRSI],
		MACD:         cols[indicator.ColMACD],
		MACDSignal:   cols[indicator.ColMACDSignal],
		BBUpper:      cols[indicator.ColBBUpper],
		BBLower:      cols[indicator.ColBBLower],
		MA5:          cols[indicator.MAColumn(5)],
		MA10:         cols[indicator.MAColumn(10)],
		MA20:         cols[indicator.MAColumn(20)],
		VolumeZScore: cols[indicator.ColVolumeZScore],
	}
}

// Result holds the per-indicator and composite signal columns
type Result struct {
	RSI       []models.Signal
	MACD      []models.Signal
	Bollinger []models.Signal
	MA        []models.Signal
	Volume    []models.Signal
	Composite []models.Signal
	Score     indicator.Series
}

// Compose derives every per-indicator signal and blends them with DefaultWeights
func Compose(in Input) Result {
	res := Result{
		RSI:       RSISignals(in.RSI),
		MACD:      MACDSignals(in.MACD, in.MACDSignal),
		Bollinger: BollingerSignals(in.Close, in.BBUpper, in.BBLower),
		MA:        MASignals(in.Close, in.MA5, in.MA10, in.MA20),
		Volume:    VolumeSignals(in.VolumeZScore, in.Returns, ReturnStdWindow),
	}
	res.Composite, res.Score = Composite(res, DefaultWeights)
	return res
}

// RSISignals is Buy below 30, Sell above 70
func RSISignals(rsi indicator.Series) []models.Signal {
	out := make([]models.Signal, len(rsi))
	for i, v := range rsi {
		switch {
		case indicator.Undefined(v):
		case v < RSIOversold:
			out[i] = models.Buy
		case v > RSIOverbought:
			out[i] = models.Sell
		}
	}
	return out
}

// MACDSignals is Buy on the bar MACD crosses above its signal line, Sell on a cross below
func MACDSignals(macd, signal indicator.Series) []models.Signal {
	out := make([]models.Signal, len(macd))
	for i := 1; i < len(macd); i++ {
		if !macd.Defined(i) || !macd.Defined(i-1) || !signal.Defined(i) || !signal.Defined(i-1) {
			continue
		}
		switch {
		case macd[i] > signal[i] && macd[i-1] <= signal[i-1]:
			out[i] = models.Buy
		case macd[i] < signal[i] && macd[i-1] >= signal[i-1]:
			out[i] = models.Sell
		}
	}
	return out
}

// BollingerSignals is Buy at or below the lower band, Sell at or above the upper band.
// Coinciding bands carry no signal.
func BollingerSignals(closes, upper, lower indicator.Series) []models.Signal {
	out := make([]models.Signal, len(closes))
	for i, c := range closes {
		if !upper.Defined(i) || !lower.Defined(i) || upper[i] <= lower[i] {
			continue
		}
		switch {
		case c <= lower[i]:
			out[i] = models.Buy
		case c >= upper[i]:
			out[i] = models.Sell
		}
	}
	return out
}

// MASignals is Buy when close is above MA5, MA10 and MA20, Sell when below all of them
func MASignals(closes, ma5, ma10, ma20 indicator.Series) []models.Signal {
	out := make([]models.Signal, len(closes))
	for i, c := range closes {
		if !ma5.Defined(i) || !ma10.Defined(i) || !ma20.Defined(i) {
			continue
		}
		switch {
		case c > ma5[i] && c > ma10[i] && c > ma20[i]:
			out[i] = models.Buy
		case c < ma5[i] && c < ma10[i] && c < ma20[i]:
			out[i] = models.Sell
		}
	}
	return out
}

// VolumeSignals follows the return direction on bars with |volume z| above 1.5
// and |return| above the trailing window std of returns
func VolumeSignals(zscore, returns indicator.Series, window int) []models.Signal {
	std := indicator.RollingStd(returns, window)
	out := make([]models.Signal, len(returns))
	for i, r := range returns {
		if !zscore.Defined(i) || !std.Defined(i) || indicator.Undefined(r) {
			continue
		}
		if math.Abs(zscore[i]) > VolumeZThreshold && math.Abs(r) > std[i] {
			out[i] = models.SignalFromSign(r)
		}
	}
	return out
}

// Composite blends the per-indicator signals into one signal per bar and
// returns the weighted score alongside
func Composite(per Result, w Weights) ([]models.Signal, indicator.Series) {
	n := len(per.RSI)
	signals := make([]models.Signal, n)
	score := make(indicator.Series, n)
	for i := 0; i < n; i++ {
		s := w.RSI*float64(per.RSI[i]) +
			w.MACD*float64(per.MACD[i]) +
			w.Bollinger*float64(per.Bollinger[i]) +
			w.MA*float64(per.MA[i]) +
			w.Volume*float64(per.Volume[i])
		score[i] = s
		switch {
		case s > BuyThreshold+scoreTolerance:
			signals[i] = models.Buy
		case s < SellThreshold-scoreTolerance:
			signals[i] = models.Sell
		}
	}
	return signals, score
}
