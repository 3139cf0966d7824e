package analysis

import (
	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
)

// Fallbacks used wherever a latest value is surfaced and the last row is undefined
const (
	FallbackRSI         = 50.0
	FallbackMACD        = 0.0
	FallbackMACDSignal  = 0.0
	FallbackBBPosition  = 0.5
	FallbackBBBandwidth = 0.0
)

// LatestSignal returns the last signal, Hold for an empty column
func LatestSignal(s []models.Signal) models.Signal {
	if len(s) == 0 {
		return models.Hold
	}
	return s[len(s)-1]
}

// LatestOr returns the last row of s, or fallback when it is undefined
func LatestOr(s indicator.Series, fallback float64) float64 {
	return s.LastOr(fallback)
}

// LatestRegime returns the last regime, Medium when undefined
func LatestRegime(r []models.VolatilityRegime) models.VolatilityRegime {
	if len(r) == 0 || r[len(r)-1] == models.RegimeUndefined {
		return models.RegimeMedium
	}
	return r[len(r)-1]
}

// LatestFlag returns the last flag, false for an empty column
func LatestFlag(b []bool) bool {
	if len(b) == 0 {
		return false
	}
	return b[len(b)-1]
}
