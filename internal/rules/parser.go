package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ParseRuleSet parses a JSON rule set definition and validates it
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var set RuleSet

	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rule set: %w", err)
	}

	if err := ValidateRuleSet(&set); err != nil {
		return nil, fmt.Errorf("invalid rule set: %w", err)
	}

	return &set, nil
}

// ParseRuleSetFromReader parses a rule set from an io.Reader
func ParseRuleSetFromReader(reader io.Reader) (*RuleSet, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set data: %w", err)
	}

	return ParseRuleSet(data)
}

// LoadEvaluator compiles the rule set at path, or the default set when path is empty
func LoadEvaluator(path string) (*CompiledRuleSet, error) {
	if path == "" {
		return DefaultEvaluator(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule set %s: %w", path, err)
	}
	defer f.Close()

	set, err := ParseRuleSetFromReader(f)
	if err != nil {
		return nil, err
	}
	return Compile(set)
}
