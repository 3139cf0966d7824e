package metrics

import "github.com/mohamedkhairy/equity-signals/pkg/indicator"

// SpreadComputer records the high-low spread proxy and the ATR-based effective spread
type SpreadComputer struct{}

func (c *SpreadComputer) Name() string           { return "spread" }
func (c *SpreadComputer) Dependencies() []string { return []string{} }

func (c *SpreadComputer) Compute(in *Input, b *Builder) {
	spread := indicator.DailySpreadPct(indicator.Input{
		Open: in.opens, High: in.highs, Low: in.lows, Close: in.closes, Volume: in.volumes,
	})
	current := spread[len(spread)-1]
	b.Set(DailySpreadPct, current)

	if in.Len() >= 20 {
		window := tail(spread, 20)
		b.Set(AvgSpread20d, indicator.Mean(window))
		b.Set(SpreadVolatility, indicator.StdDev(window))
		b.Set(SpreadPercentile, indicator.PercentileOfScore(spread, current))
	}

	if atr, ok := in.ATR.Last(); ok && len(in.ATR) == in.Len() {
		b.Set(EffectiveSpreadPct, pct(atr, in.lastClose()))
	}
}
