package metrics

import (
	"math"

	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
)

// RiskComputer records VaR, expected shortfall, max drawdown, Sharpe and Sortino
// over the full return history
type RiskComputer struct{}

func (c *RiskComputer) Name() string           { return "risk" }
func (c *RiskComputer) Dependencies() []string { return []string{} }

func (c *RiskComputer) Compute(in *Input, b *Builder) {
	r := in.returns
	if len(r) < MinReturns {
		return
	}

	v := indicator.Percentile(r, 0.05)
	b.Set(VaR5Pct, v*100)

	var tailLoss []float64
	for _, x := range r {
		if x <= v {
			tailLoss = append(tailLoss, x)
		}
	}
	b.Set(ExpectedShortfall5Pct, indicator.Mean(tailLoss)*100)

	b.Set(MaxDrawdown, MaxDrawdownPct(r))

	dailyRF := RiskFreeRate / indicator.TradingDaysPerYear
	excess := make([]float64, len(r))
	for i, x := range r {
		excess[i] = x - dailyRF
	}
	meanExcess := indicator.Mean(excess)
	annualize := math.Sqrt(indicator.TradingDaysPerYear)

	if std := indicator.StdDev(r); std > 0 {
		b.Set(SharpeRatio, meanExcess/std*annualize)
	}

	var downside []float64
	for _, x := range r {
		if x < 0 {
			downside = append(downside, x)
		}
	}
	if len(downside) == 0 {
		b.Set(SortinoRatio, math.Inf(1))
	} else if dstd := indicator.StdDev(downside); dstd > 0 {
		b.Set(SortinoRatio, meanExcess/dstd*annualize)
	}
}

// MaxDrawdownPct is the deepest peak-to-trough fall of the compounded return
// curve, in percent (<= 0). The running peak starts at the first compounded value.
func MaxDrawdownPct(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	cum := 1.0
	peak := math.Inf(-1)
	worst := 0.0
	for _, r := range returns {
		cum *= 1 + r
		if cum > peak {
			peak = cum
		}
		if dd := (cum - peak) / peak; dd < worst {
			worst = dd
		}
	}
	return worst * 100
}
