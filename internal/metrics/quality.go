package metrics

import (
	"math"

	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
)

// QualityComputer records price efficiency, the volume/price market impact
// proxy and price stability
type QualityComputer struct{}

func (c *QualityComputer) Name() string           { return "quality" }
func (c *QualityComputer) Dependencies() []string { return []string{"volatility"} }

func (c *QualityComputer) Compute(in *Input, b *Builder) {
	r := in.returns
	if len(r) >= MinReturns {
		autocorr := indicator.Correlation(r[1:], r[:len(r)-1])
		b.Set(PriceEfficiency, 1-math.Abs(autocorr))
	}

	if in.Len() >= 20 {
		volChange := indicator.Returns(in.volumes)
		priceChange := indicator.Returns(in.closes)
		var vc, pc []float64
		for i := 1; i < in.Len(); i++ {
			v, p := volChange[i], priceChange[i]
			if math.IsNaN(v) || math.IsInf(v, 0) || math.IsNaN(p) {
				continue
			}
			vc = append(vc, v)
			pc = append(pc, math.Abs(p))
		}
		if len(vc) >= MinImpactPoints {
			b.Set(MarketImpactProxy, indicator.Correlation(vc, pc))
		}
	}

	if vol, ok := b.Get(Volatility20d); ok {
		b.Set(PriceStability, math.Max(0, 100-vol))
	}
}
