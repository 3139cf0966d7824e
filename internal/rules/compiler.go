package rules

import (
	"fmt"

	"github.com/mohamedkhairy/equity-signals/internal/models"
)

type compiledRule struct {
	reason     string
	forcesHigh bool
	match      CompiledCondition
}

// CompiledRuleSet evaluates a validated RuleSet
type CompiledRuleSet struct {
	rules       []compiledRule
	riskFactors []CompiledCondition
}

// Compile validates set and compiles its conditions
func Compile(set *RuleSet) (*CompiledRuleSet, error) {
	if set == nil {
		return nil, fmt.Errorf("rule set cannot be nil")
	}
	if err := ValidateRuleSet(set); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}

	out := &CompiledRuleSet{}
	for _, rule := range set.Rules {
		out.rules = append(out.rules, compiledRule{
			reason:     rule.Reason,
			forcesHigh: rule.ForcesHigh,
			match:      CompileCondition(rule.Condition),
		})
	}
	for _, cond := range set.RiskFactors {
		out.riskFactors = append(out.riskFactors, CompileCondition(cond))
	}
	return out, nil
}

// CompileCondition binds a condition into a closure
func CompileCondition(cond Condition) CompiledCondition {
	return func(metrics MetricSource) bool {
		return EvaluateCondition(&cond, metrics)
	}
}

// Evaluate applies every rule, in order, then the risk-factor pass. A level
// forced to high by a rule is never lowered by the risk-factor pass.
func (c *CompiledRuleSet) Evaluate(metrics MetricSource) models.AttentionFlags {
	flags := models.AttentionFlags{
		Reasons:   []string{},
		RiskLevel: models.RiskLow,
	}

	for _, rule := range c.rules {
		if !rule.match(metrics) {
			continue
		}
		flags.RequiresAttention = true
		flags.Reasons = append(flags.Reasons, rule.reason)
		if rule.forcesHigh {
			flags.RiskLevel = models.RiskHigh
		}
	}

	factors := 0
	for _, match := range c.riskFactors {
		if match(metrics) {
			factors++
		}
	}
	level := models.RiskLow
	switch {
	case factors >= 2:
		level = models.RiskHigh
	case factors == 1:
		level = models.RiskMedium
	}
	if level.Rank() > flags.RiskLevel.Rank() {
		flags.RiskLevel = level
	}

	return flags
}
