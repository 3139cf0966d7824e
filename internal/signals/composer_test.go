package signals

import (
	"math"
	"testing"

	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func composeCloses(t *testing.T, closes, volume []float64) Result {
	t.Helper()
	in := indicator.Input{Open: closes, High: closes, Low: closes, Close: closes, Volume: volume}
	cols, err := indicator.DefaultRegistry().ComputeAll(in)
	require.NoError(t, err)
	return Compose(InputFromColumns(closes, cols))
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestRSISignals(t *testing.T) {
	got := RSISignals(indicator.Series{nan, 25, 50, 75, 30, 70})
	assert.Equal(t, []models.Signal{models.Hold, models.Buy, models.Hold, models.Sell, models.Hold, models.Hold}, got)
}

func TestMACDSignals_Cross(t *testing.T) {
	macd := indicator.Series{0, -1, 1, 2, 0.5, 0.5}
	sig := indicator.Series{0, 0, 0, 1, 1, 0.5}

	got := MACDSignals(macd, sig)
	assert.Equal(t, models.Hold, got[0])
	assert.Equal(t, models.Sell, got[1], "0<=0 then -1<0 crosses below")
	assert.Equal(t, models.Buy, got[2])
	assert.Equal(t, models.Hold, got[3], "already above")
	assert.Equal(t, models.Sell, got[4])
	assert.Equal(t, models.Hold, got[5], "touching is not a cross")
}

func TestBollingerSignals(t *testing.T) {
	closes := indicator.Series{9, 11, 10, 10, 10}
	upper := indicator.Series{11, 11, 11, 10, nan}
	lower := indicator.Series{9, 9, 9, 10, nan}

	got := BollingerSignals(closes, upper, lower)
	assert.Equal(t, []models.Signal{models.Buy, models.Sell, models.Hold, models.Hold, models.Hold}, got)
}

func TestMASignals(t *testing.T) {
	closes := indicator.Series{10, 10, 10, 10}
	ma5 := indicator.Series{9, 11, 9, nan}
	ma10 := indicator.Series{9, 11, 11, 9}
	ma20 := indicator.Series{9, 11, 9, 9}

	got := MASignals(closes, ma5, ma10, ma20)
	assert.Equal(t, []models.Signal{models.Buy, models.Sell, models.Hold, models.Hold}, got)
}

func TestComposite_Thresholds(t *testing.T) {
	tests := []struct {
		name string
		per  [5]models.Signal // rsi, macd, bollinger, ma, volume
		want models.Signal
	}{
		{"all hold", [5]models.Signal{}, models.Hold},
		{"rsi alone", [5]models.Signal{models.Buy}, models.Hold},
		{"ma plus volume sits on threshold", [5]models.Signal{0, 0, 0, models.Buy, models.Buy}, models.Hold},
		// 0.2+0.1 rounds to 0.30000000000000004; a raw float compare would call this Buy
		{"bollinger plus volume sits on threshold", [5]models.Signal{0, 0, models.Buy, 0, models.Buy}, models.Hold},
		{"bollinger plus volume sell sits on threshold", [5]models.Signal{0, 0, models.Sell, 0, models.Sell}, models.Hold},
		{"rsi plus macd", [5]models.Signal{models.Buy, models.Buy}, models.Buy},
		{"bollinger plus ma sell", [5]models.Signal{0, 0, models.Sell, models.Sell}, models.Sell},
		{"conflict", [5]models.Signal{models.Buy, models.Sell, models.Buy, models.Sell, models.Buy}, models.Hold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			per := Result{
				RSI:       []models.Signal{tt.per[0]},
				MACD:      []models.Signal{tt.per[1]},
				Bollinger: []models.Signal{tt.per[2]},
				MA:        []models.Signal{tt.per[3]},
				Volume:    []models.Signal{tt.per[4]},
			}
			got, score := Composite(per, DefaultWeights)
			assert.Equal(t, tt.want, got[0])
			assert.Len(t, score, 1)
		})
	}
}

func TestCompose_FlatSeriesAllHold(t *testing.T) {
	for _, level := range []float64{50, 100, 33.33} {
		res := composeCloses(t, constant(60, level), constant(60, 5000))

		for i := range res.Composite {
			assert.Equal(t, models.Hold, res.RSI[i], "level %v row %d", level, i)
			assert.Equal(t, models.Hold, res.MACD[i], "level %v row %d", level, i)
			assert.Equal(t, models.Hold, res.Bollinger[i], "level %v row %d", level, i)
			assert.Equal(t, models.Hold, res.MA[i], "level %v row %d", level, i)
			assert.Equal(t, models.Hold, res.Volume[i], "level %v row %d", level, i)
			assert.Equal(t, models.Hold, res.Composite[i], "level %v row %d", level, i)
			assert.Equal(t, 0.0, res.Score[i], "level %v row %d", level, i)
		}
	}
}

func TestCompose_FlatStretchAddsNoMACDCross(t *testing.T) {
	closes := append(constant(40, 80), constant(40, 80)...)
	for i := 40; i < 50; i++ {
		closes[i] = 80 + float64(i-39)
	}
	for i := 50; i < len(closes); i++ {
		closes[i] = 90
	}
	res := composeCloses(t, closes, constant(len(closes), 5000))

	for i := 0; i < 40; i++ {
		assert.Equal(t, models.Hold, res.MACD[i], "row %d", i)
	}
}

func TestCompose_CompositeDomain(t *testing.T) {
	closes := make([]float64, 200)
	volume := make([]float64, 200)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/6) + float64(i%5)
		volume[i] = 10000 + 3000*math.Cos(float64(i)/3)
	}
	res := composeCloses(t, closes, volume)

	for i, s := range res.Composite {
		assert.Contains(t, []models.Signal{models.Sell, models.Hold, models.Buy}, s, "row %d", i)
	}
}

func TestVolumeSignals_Crash(t *testing.T) {
	closes := make([]float64, 40)
	volume := constant(40, 1000)
	for i := range closes {
		closes[i] = 100 + 0.5*math.Sin(float64(i))
	}
	closes[39] = closes[38] * 0.85
	volume[39] = 5000

	res := composeCloses(t, closes, volume)
	assert.Equal(t, models.Sell, res.Volume[39])
	assert.Equal(t, models.Sell, res.MA[39])
}

func TestDirectionalAccuracy(t *testing.T) {
	returns := indicator.Series{nan, 0.01, -0.02, 0.03, -0.01}

	t.Run("all hold", func(t *testing.T) {
		assert.Equal(t, 0.0, DirectionalAccuracy(make([]models.Signal, 5), returns, 1))
	})

	t.Run("mixed", func(t *testing.T) {
		signals := []models.Signal{models.Buy, models.Sell, models.Buy, models.Hold, models.Sell}
		// row0 -> +0.01 hit, row1 -> -0.02 hit, row2 -> +0.03 hit, row4 -> beyond end miss
		assert.InDelta(t, 75.0, DirectionalAccuracy(signals, returns, 1), 1e-12)
	})

	t.Run("range", func(t *testing.T) {
		signals := []models.Signal{models.Sell, models.Buy, models.Buy, models.Buy, models.Buy}
		got := DirectionalAccuracy(signals, returns, 2)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	})
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Signal{models.Buy, models.Hold, models.Sell, models.Buy})
	assert.Equal(t, Summary{Total: 3, Buy: 2, Sell: 1, Hold: 1}, s)
}
