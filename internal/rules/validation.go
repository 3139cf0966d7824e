package rules

import (
	"fmt"

	"github.com/mohamedkhairy/equity-signals/internal/models"
)

var validOps = map[string]bool{
	">":  true,
	"<":  true,
	">=": true,
	"<=": true,
	"==": true,
	"!=": true,
}

// ValidateRuleSet validates every rule and risk factor
func ValidateRuleSet(set *RuleSet) error {
	seen := make(map[string]bool, len(set.Rules))
	for i := range set.Rules {
		rule := &set.Rules[i]
		if err := ValidateRule(rule); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
		if rule.ID != "" {
			if seen[rule.ID] {
				return fmt.Errorf("rule %d: duplicate id %q", i, rule.ID)
			}
			seen[rule.ID] = true
		}
	}
	for i := range set.RiskFactors {
		if err := ValidateCondition(&set.RiskFactors[i]); err != nil {
			return fmt.Errorf("risk factor %d: %w", i, err)
		}
	}
	return nil
}

// ValidateRule validates a single attention rule
func ValidateRule(rule *AttentionRule) error {
	if rule.Reason == "" {
		return models.ErrInvalidRuleReason
	}
	if err := ValidateCondition(&rule.Condition); err != nil {
		return fmt.Errorf("condition: %w", err)
	}
	return nil
}

// ValidateCondition validates a condition's metric name and operator
func ValidateCondition(cond *Condition) error {
	if err := ValidateMetricName(cond.Metric); err != nil {
		return err
	}
	return ValidateOperator(cond.Operator)
}

// ValidateMetricName validates that a metric name is well-formed
func ValidateMetricName(metric string) error {
	if metric == "" {
		return fmt.Errorf("%w: metric name cannot be empty", models.ErrInvalidMetric)
	}

	for _, r := range metric {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
			return fmt.Errorf("%w: metric name contains invalid character: %c", models.ErrInvalidMetric, r)
		}
	}

	return nil
}

// ValidateOperator validates that an operator is supported
func ValidateOperator(op string) error {
	if !validOps[op] {
		return fmt.Errorf("%w: %q (supported: >, <, >=, <=, ==, !=)", models.ErrInvalidOperator, op)
	}
	return nil
}
