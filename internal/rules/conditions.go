package rules

import (
	"math"
)

const equalityEpsilon = 0.0001

// ResolveMetric returns the metric value, or the condition default when absent
func ResolveMetric(cond *Condition, metrics MetricSource) float64 {
	v, ok := metrics.Get(cond.Metric)
	if !ok {
		v = cond.Default
	}
	if cond.Absolute {
		v = math.Abs(v)
	}
	return v
}

// EvaluateCondition evaluates a validated condition against metrics
func EvaluateCondition(cond *Condition, metrics MetricSource) bool {
	v := ResolveMetric(cond, metrics)
	switch cond.Operator {
	case ">":
		return v > cond.Value
	case "<":
		return v < cond.Value
	case ">=":
		return v >= cond.Value
	case "<=":
		return v <= cond.Value
	case "==":
		return math.Abs(v-cond.Value) < equalityEpsilon
	case "!=":
		return math.Abs(v-cond.Value) >= equalityEpsilon
	default:
		return false
	}
}
