package rules

import "github.com/mohamedkhairy/equity-signals/internal/metrics"

// Attention reasons
const (
	ReasonHighVolatility = "High volatility detected"
	ReasonVolumeSpike    = "Unusual volume spike"
	ReasonLargeMove      = "Large daily price movement"
	ReasonWideSpread     = "Wide bid-ask spread proxy"
	ReasonLowLiquidity   = "Low liquidity detected"
	ReasonDrawdown       = "Significant drawdown"
)

// DefaultRuleSet is the fixed attention policy. Missing metrics default to a
// value that does not trigger (volatility 0, volume ratio 1, change 0, spread 0,
// liquidity 100, drawdown 0).
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Rules: []AttentionRule{
			{
				ID:         "high_volatility",
				Reason:     ReasonHighVolatility,
				Condition:  Condition{Metric: metrics.Volatility20d, Operator: ">", Value: 40},
				ForcesHigh: true,
			},
			{
				ID:        "volume_spike",
				Reason:    ReasonVolumeSpike,
				Condition: Condition{Metric: metrics.VolumeRatio, Operator: ">", Value: 3, Default: 1},
			},
			{
				ID:         "large_move",
				Reason:     ReasonLargeMove,
				Condition:  Condition{Metric: metrics.DailyChangePct, Operator: ">", Value: 10, Absolute: true},
				ForcesHigh: true,
			},
			{
				ID:        "wide_spread",
				Reason:    ReasonWideSpread,
				Condition: Condition{Metric: metrics.DailySpreadPct, Operator: ">", Value: 5},
			},
			{
				ID:        "low_liquidity",
				Reason:    ReasonLowLiquidity,
				Condition: Condition{Metric: metrics.LiquidityScore, Operator: "<", Value: 30, Default: 100},
			},
			{
				ID:         "drawdown",
				Reason:     ReasonDrawdown,
				Condition:  Condition{Metric: metrics.MaxDrawdown, Operator: "<", Value: -20},
				ForcesHigh: true,
			},
		},
		RiskFactors: []Condition{
			{Metric: metrics.Volatility20d, Operator: ">", Value: 30},
			{Metric: metrics.DailyChangePct, Operator: ">", Value: 5, Absolute: true},
			{Metric: metrics.MaxDrawdown, Operator: "<", Value: -15},
		},
	}
}

// DefaultEvaluator compiles DefaultRuleSet
func DefaultEvaluator() *CompiledRuleSet {
	compiled, err := Compile(DefaultRuleSet())
	if err != nil {
		panic("rules: default rule set does not compile: " + err.Error())
	}
	return compiled
}
