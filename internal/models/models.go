package models

import (
	"fmt"
	"math"
	"time"
)

// Bar is one end-of-day OHLCV observation for a single instrument
type Bar struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Validate validates a single Bar
func (b *Bar) Validate() error {
	if b.Date.IsZero() {
		return ErrInvalidTimestamp
	}
	for _, p := range []float64{b.Open, b.High, b.Low, b.Close} {
		if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return ErrInvalidPrice
		}
	}
	if b.High < b.Low {
		return ErrInvalidBar
	}
	if b.High < math.Max(b.Open, b.Close) || b.Low > math.Min(b.Open, b.Close) {
		return ErrInvalidBar
	}
	if b.Volume < 0 {
		return ErrInvalidVolume
	}
	return nil
}

// DateLayout is the calendar date format used for keys and reports
const DateLayout = "2006-01-02"

// DateKey is the calendar date of t in its own location. Bars are daily, so
// two bars with the same key are the same session.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidateBars checks the sequence invariants: non-empty, every bar valid,
// calendar dates strictly increasing.
func ValidateBars(bars []Bar) error {
	if len(bars) == 0 {
		return ErrEmptySeries
	}
	for i := range bars {
		key := DateKey(bars[i].Date)
		if err := bars[i].Validate(); err != nil {
			return fmt.Errorf("bar %d (%s): %w", i, key, err)
		}
		if i > 0 && (!bars[i].Date.After(bars[i-1].Date) || key <= DateKey(bars[i-1].Date)) {
			return fmt.Errorf("bar %d (%s): %w", i, key, ErrNonMonotonicDates)
		}
	}
	return nil
}

// Opens extracts the open column
func Opens(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Open
	}
	return out
}

// Closes extracts the close column
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Highs extracts the high column
func Highs(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low column
func Lows(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts the volume column as float64
func Volumes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = float64(b.Volume)
	}
	return out
}

// AttentionFlags summarises unusual market conditions derived from a metrics snapshot
type AttentionFlags struct {
	RequiresAttention bool      `json:"requires_attention"`
	Reasons           []string  `json:"attention_reasons"`
	RiskLevel         RiskLevel `json:"risk_level"`
}

// RiskLevel is the coarse risk bucket attached to AttentionFlags
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Rank orders risk levels so a level can only be raised
func (r RiskLevel) Rank() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}
