package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/models"
)

// makeBars builds a valid daily bar sequence from closes, with a 1% high/low
// envelope and the open at the previous close.
func makeBars(t *testing.T, closes []float64, volume int64) []models.Bar {
	t.Helper()
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		bars[i] = models.Bar{
			Symbol: "TEST",
			Date:   start.AddDate(0, 0, i),
			Open:   open,
			High:   math.Max(open, c) * 1.01,
			Low:    math.Min(open, c) * 0.99,
			Close:  c,
			Volume: volume,
		}
	}
	if err := models.ValidateBars(bars); err != nil {
		t.Fatalf("invalid test bars: %v", err)
	}
	return bars
}

func rising(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// zigzag produces a deterministic noisy walk around base
func zigzag(n int, base float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + 5*math.Sin(float64(i)*0.7) + 2*math.Cos(float64(i)*1.9) + float64(i%7)*0.3
	}
	return out
}
