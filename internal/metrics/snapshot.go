package metrics

import (
	"encoding/json"
	"math"
	"sort"
)

// Snapshot is an immutable name -> value mapping of the metrics computed as of
// the last bar. Undefined metrics are absent. Labels hold the few string-valued
// metrics (volatility_regime).
type Snapshot struct {
	values map[string]float64
	labels map[string]string
}

// Get returns the named metric and whether it is present
func (s Snapshot) Get(name string) (float64, bool) {
	v, ok := s.values[name]
	return v, ok
}

// GetOr returns the named metric, or fallback when absent
func (s Snapshot) GetOr(name string, fallback float64) float64 {
	if v, ok := s.values[name]; ok {
		return v
	}
	return fallback
}

// Has reports whether the named metric or label is present
func (s Snapshot) Has(name string) bool {
	if _, ok := s.values[name]; ok {
		return true
	}
	_, ok := s.labels[name]
	return ok
}

// Label returns a string-valued metric
func (s Snapshot) Label(name string) (string, bool) {
	v, ok := s.labels[name]
	return v, ok
}

// Names returns every present metric and label name, sorted
func (s Snapshot) Names() []string {
	out := make([]string, 0, len(s.values)+len(s.labels))
	for k := range s.values {
		out = append(out, k)
	}
	for k := range s.labels {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of present metrics and labels
func (s Snapshot) Len() int {
	return len(s.values) + len(s.labels)
}

// Values returns a copy of the numeric metrics
func (s Snapshot) Values() map[string]float64 {
	out := make(map[string]float64, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the snapshot as one flat object. +Inf is written as the
// string "Infinity" since JSON has no infinity literal.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, s.Len())
	for k, v := range s.values {
		switch {
		case math.IsInf(v, 1):
			flat[k] = "Infinity"
		case math.IsInf(v, -1):
			flat[k] = "-Infinity"
		default:
			flat[k] = v
		}
	}
	for k, v := range s.labels {
		flat[k] = v
	}
	return json.Marshal(flat)
}

// UnmarshalJSON decodes the flat object written by MarshalJSON
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var flat map[string]interface{}
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	b := NewBuilder()
	for k, v := range flat {
		switch x := v.(type) {
		case float64:
			b.Set(k, x)
		case string:
			switch x {
			case "Infinity":
				b.Set(k, math.Inf(1))
			case "-Infinity":
				b.Set(k, math.Inf(-1))
			default:
				b.SetLabel(k, x)
			}
		}
	}
	*s = b.Snapshot()
	return nil
}

// Builder accumulates metrics while computers run
type Builder struct {
	values map[string]float64
	labels map[string]string
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		values: make(map[string]float64),
		labels: make(map[string]string),
	}
}

// Set records a metric; NaN means undefined and is dropped
func (b *Builder) Set(name string, v float64) {
	if math.IsNaN(v) {
		return
	}
	b.values[name] = v
}

// SetLabel records a string-valued metric
func (b *Builder) SetLabel(name, v string) {
	b.labels[name] = v
}

// Get returns a metric recorded so far
func (b *Builder) Get(name string) (float64, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Snapshot freezes the recorded metrics
func (b *Builder) Snapshot() Snapshot {
	values := make(map[string]float64, len(b.values))
	for k, v := range b.values {
		values[k] = v
	}
	labels := make(map[string]string, len(b.labels))
	for k, v := range b.labels {
		labels[k] = v
	}
	return Snapshot{values: values, labels: labels}
}
