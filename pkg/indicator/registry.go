package indicator

import (
	"fmt"
	"sync"
)

// Registry manages indicator calculators. Calculators run in registration order.
type Registry struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
	order       []string
}

// NewRegistry creates a new indicator registry
func NewRegistry() *Registry {
	return &Registry{
		calculators: make(map[string]Calculator),
	}
}

// DefaultRegistry returns a registry with the standard calculator set
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, calc := range []Calculator{
		ReturnsCalculator{VolatilityWindow: 20},
		ATRCalculator{Period: 14},
		RSICalculator{Period: 14},
		MACDCalculator{Fast: 12, Slow: 26, Signal: 9},
		BollingerCalculator{Period: 20, K: 2},
		MovingAverageCalculator{Periods: DefaultMAPeriods},
		StochasticCalculator{KPeriod: 14, DPeriod: 3},
		WilliamsRCalculator{Period: 14},
		LiquidityCalculator{Window: 20},
	} {
		// names are distinct, Register cannot fail here
		_ = r.Register(calc)
	}
	return r
}

// Register registers a calculator with the registry
func (r *Registry) Register(calc Calculator) error {
	if calc == nil {
		return fmt.Errorf("calculator cannot be nil")
	}

	name := calc.Name()
	if name == "" {
		return fmt.Errorf("calculator name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.calculators[name]; exists {
		return fmt.Errorf("calculator with name %q already registered", name)
	}

	r.calculators[name] = calc
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a calculator by name
func (r *Registry) Get(name string) (Calculator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	calc, exists := r.calculators[name]
	if !exists {
		return nil, fmt.Errorf("calculator %q not found", name)
	}

	return calc, nil
}

// List returns registered calculator names in registration order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of registered calculators
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// ComputeAll runs every calculator over in and merges their columns.
// Two calculators writing the same column is an error.
func (r *Registry) ComputeAll(in Input) (Columns, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(Columns)
	owner := make(map[string]string)
	for _, name := range r.order {
		cols, err := r.calculators[name].Compute(in)
		if err != nil {
			return nil, fmt.Errorf("calculator %s: %w", name, err)
		}
		for col, s := range cols {
			if prev, dup := owner[col]; dup {
				return nil, fmt.Errorf("column %q produced by both %s and %s", col, prev, name)
			}
			owner[col] = name
			out[col] = s
		}
	}
	return out, nil
}
