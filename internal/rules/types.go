package rules

import (
	"github.com/mohamedkhairy/equity-signals/internal/models"
)

// Condition compares one snapshot metric with a threshold
type Condition struct {
	Metric   string  `json:"metric"`
	Operator string  `json:"operator"` // ">", "<", ">=", "<=", "==", "!="
	Value    float64 `json:"value"`

	// Absolute compares |metric| instead of the metric itself
	Absolute bool `json:"absolute,omitempty"`

	// Default is substituted when the metric is absent from the snapshot
	Default float64 `json:"default"`
}

// AttentionRule raises a reason when its condition holds
type AttentionRule struct {
	ID         string    `json:"id"`
	Reason     string    `json:"reason"`
	Condition  Condition `json:"condition"`
	ForcesHigh bool      `json:"forces_high,omitempty"`
}

// RuleSet is the full attention configuration: reason rules plus the risk
// factors counted in the second pass (one factor -> medium, two or more -> high)
type RuleSet struct {
	Rules       []AttentionRule `json:"rules"`
	RiskFactors []Condition     `json:"risk_factors"`
}

// CompiledCondition evaluates one condition against snapshot metrics
type CompiledCondition func(metrics MetricSource) bool

// MetricSource is the read side of a metrics snapshot
type MetricSource interface {
	Get(name string) (float64, bool)
}

// Evaluator produces attention flags from a metrics snapshot
type Evaluator interface {
	Evaluate(metrics MetricSource) models.AttentionFlags
}
