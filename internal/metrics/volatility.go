package metrics

import (
	"math"

	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
)

// VolatilityComputer records annualised return volatility, its percentile rank
// against its own 20-bar history, a global regime label and ATR as % of close.
//
// The regime compares the current 20-bar volatility with mean +/- 1 std of the
// whole 20-bar volatility history. It is not the trailing-quantile classifier
// used for the per-bar regime column.
type VolatilityComputer struct{}

func (c *VolatilityComputer) Name() string           { return "volatility" }
func (c *VolatilityComputer) Dependencies() []string { return []string{} }

func (c *VolatilityComputer) Compute(in *Input, b *Builder) {
	annualize := math.Sqrt(indicator.TradingDaysPerYear) * 100

	if len(in.returns) >= MinReturns {
		b.Set(Volatility20d, indicator.StdDev(tail(in.returns, 20))*annualize)
		if len(in.returns) >= 60 {
			b.Set(Volatility60d, indicator.StdDev(tail(in.returns, 60))*annualize)
		}

		history := indicator.RollingStd(in.returns, 20).Scale(annualize).DefinedValues()
		current := history[len(history)-1]
		b.Set(VolatilityPctl, indicator.PercentileOfScore(history, current))
		b.SetLabel(VolatilityRegime, GlobalVolatilityRegime(history, current).String())
	}

	if atr, ok := in.ATR.Last(); ok && len(in.ATR) == in.Len() {
		b.Set(ATRPercentage, pct(atr, in.lastClose()))
	}
}

// GlobalVolatilityRegime classifies current against mean +/- 1 sample std of history.
// An undefined std (fewer than two points) classifies as medium.
func GlobalVolatilityRegime(history []float64, current float64) models.VolatilityRegime {
	mean := indicator.Mean(history)
	std := indicator.StdDev(history)
	switch {
	case indicator.Undefined(std):
		return models.RegimeMedium
	case current < mean-std:
		return models.RegimeLow
	case current > mean+std:
		return models.RegimeHigh
	default:
		return models.RegimeMedium
	}
}
