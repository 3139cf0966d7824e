package signals

import (
	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
)

// DirectionalAccuracy is the percentage of non-Hold signals whose direction
// matches the return lookforward bars later. Signals whose forward return falls
// past the end of the series or is undefined count as misses. No non-Hold
// signals gives 0.
func DirectionalAccuracy(signals []models.Signal, returns indicator.Series, lookforward int) float64 {
	var total, correct int
	for i, s := range signals {
		if s == models.Hold {
			continue
		}
		total++
		fwd := returns.At(i + lookforward)
		if indicator.Undefined(fwd) {
			continue
		}
		if (s == models.Buy && fwd > 0) || (s == models.Sell && fwd < 0) {
			correct++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// Summary counts composite signals
type Summary struct {
	Total int `json:"total_signals"`
	Buy   int `json:"buy_signals"`
	Sell  int `json:"sell_signals"`
	Hold  int `json:"hold_signals"`
}

// Summarize counts the non-Hold, Buy, Sell and Hold entries of signals
func Summarize(signals []models.Signal) Summary {
	var s Summary
	for _, sig := range signals {
		switch sig {
		case models.Buy:
			s.Buy++
		case models.Sell:
			s.Sell++
		default:
			s.Hold++
		}
	}
	s.Total = s.Buy + s.Sell
	return s
}
