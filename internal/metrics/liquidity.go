package metrics

import (
	"math"

	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
)

// LiquidityComputer records volume statistics, 20-bar VWAP and the composite
// liquidity score
type LiquidityComputer struct{}

func (c *LiquidityComputer) Name() string           { return "liquidity" }
func (c *LiquidityComputer) Dependencies() []string { return []string{"price"} }

func (c *LiquidityComputer) Compute(in *Input, b *Builder) {
	n := in.Len()
	latest := in.volumes[n-1]
	closeNow := in.lastClose()

	b.Set(DailyVolume, math.Trunc(latest))

	if n >= 20 {
		window := tail(in.volumes, 20)
		avg := indicator.Mean(window)
		b.Set(AvgVolume20d, math.Trunc(avg))

		ratio := 1.0
		if avg > 0 {
			ratio = latest / avg
		}
		b.Set(VolumeRatio, ratio)

		z := 0.0
		if std := indicator.StdDev(window); std > 0 {
			z = (latest - avg) / std
		}
		b.Set(VolumeZScore, z)

		vwap, vsVWAP := 0.0, 0.0
		if volSum := sum(window); volSum > 0 {
			var pv float64
			for i, v := range window {
				pv += in.closes[n-20+i] * v
			}
			vwap = pv / volSum
			if vwap > 0 {
				vsVWAP = (closeNow - vwap) / vwap * 100
			}
		}
		b.Set(VWAP20d, vwap)
		b.Set(PriceVsVWAP, vsVWAP)
	}

	b.Set(DollarVolume, latest*closeNow)
	b.Set(LiquidityScore, liquidityScore(b))
}

// liquidityScore blends volume ratio (up to 40 points), positive volume
// z-score (up to 30) and a narrow daily range (up to 30), clamped to [0, 100]
func liquidityScore(b *Builder) float64 {
	var score float64
	if vr, ok := b.Get(VolumeRatio); ok {
		score += math.Min(vr, 3) / 3 * 40
	}
	if z, ok := b.Get(VolumeZScore); ok {
		score += math.Max(0, math.Min(z, 3)) / 3 * 30
	}
	if rng, ok := b.Get(DailyRangePct); ok {
		score += math.Max(0, (5-rng)/5*30)
	}
	return clamp(score, 0, 100)
}
