package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
)

var testStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func buildBars(t *testing.T, closes []float64, volumes []int64) []models.Bar {
	t.Helper()
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		bars[i] = models.Bar{
			Symbol: "TEST",
			Date:   testStart.AddDate(0, 0, i),
			Open:   open,
			High:   math.Max(open, c) * 1.01,
			Low:    math.Min(open, c) * 0.99,
			Close:  c,
			Volume: volumes[i],
		}
	}
	if err := models.ValidateBars(bars); err != nil {
		t.Fatalf("invalid test bars: %v", err)
	}
	return bars
}

func noisyCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 8*math.Sin(float64(i)/5) + 3*math.Cos(float64(i)*1.3)
	}
	return out
}

func volumes(n int, base int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = base + int64((i*37)%11)*100
	}
	return out
}

func constantVolumes(n int, v int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func calculate(bars, benchmark []models.Bar) Snapshot {
	atr := indicator.ATR(indicator.InputFromBars(bars), 14)
	return NewCalculator().Calculate(NewInput(bars, atr, benchmark))
}
