package metrics

import (
	"fmt"
	"sync"
)

// Registry manages metric computers
type Registry struct {
	mu        sync.RWMutex
	computers map[string]MetricComputer
	names     []string         // registration order
	ordered   []MetricComputer // ordered by dependencies
}

// NewRegistry creates a new metric registry and registers built-in metrics
func NewRegistry() *Registry {
	registry := NewEmptyRegistry()

	// Register built-in metric computers
	registry.registerBuiltInMetrics()

	return registry
}

// NewEmptyRegistry creates a registry without built-in computers
func NewEmptyRegistry() *Registry {
	return &Registry{
		computers: make(map[string]MetricComputer),
		ordered:   make([]MetricComputer, 0),
	}
}

// Register registers a metric computer. Dependencies must already be registered.
func (r *Registry) Register(computer MetricComputer) error {
	if computer == nil {
		return fmt.Errorf("computer cannot be nil")
	}

	name := computer.Name()
	if name == "" {
		return fmt.Errorf("computer name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.computers[name]; exists {
		return fmt.Errorf("computer with name %q already registered", name)
	}
	for _, dep := range computer.Dependencies() {
		if _, ok := r.computers[dep]; !ok {
			return fmt.Errorf("computer %q depends on unregistered %q", name, dep)
		}
	}

	r.computers[name] = computer
	r.names = append(r.names, name)
	r.rebuildOrdered()

	return nil
}

// ComputeAll computes all registered metrics from in
func (r *Registry) ComputeAll(in *Input) Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b := NewBuilder()
	if in == nil || in.Len() == 0 {
		return b.Snapshot()
	}
	for _, computer := range r.ordered {
		computer.Compute(in, b)
	}
	return b.Snapshot()
}

// Order returns computer names in evaluation order
func (r *Registry) Order() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.ordered))
	for i, c := range r.ordered {
		out[i] = c.Name()
	}
	return out
}

// rebuildOrdered sorts computers topologically by Dependencies, keeping
// registration order among independent computers
func (r *Registry) rebuildOrdered() {
	done := make(map[string]bool, len(r.names))
	r.ordered = r.ordered[:0]
	for len(r.ordered) < len(r.names) {
		for _, name := range r.names {
			if done[name] {
				continue
			}
			ready := true
			for _, dep := range r.computers[name].Dependencies() {
				if !done[dep] {
					ready = false
					break
				}
			}
			if ready {
				done[name] = true
				r.ordered = append(r.ordered, r.computers[name])
			}
		}
	}
}

// registerBuiltInMetrics registers all built-in metric computers
func (r *Registry) registerBuiltInMetrics() {
	for _, c := range []MetricComputer{
		&PriceComputer{},
		&VolatilityComputer{},
		&LiquidityComputer{},
		&SpreadComputer{},
		&RiskComputer{},
		&RelativeComputer{},
		&QualityComputer{},
	} {
		if err := r.Register(c); err != nil {
			panic(fmt.Sprintf("metrics: built-in registration: %v", err))
		}
	}
}
