package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedComputer struct {
	name string
	deps []string
	fn   func(in *Input, b *Builder)
}

func (f *fixedComputer) Name() string           { return f.name }
func (f *fixedComputer) Dependencies() []string { return f.deps }
func (f *fixedComputer) Compute(in *Input, b *Builder) {
	if f.fn != nil {
		f.fn(in, b)
	}
}

func TestRegistry_BuiltInOrder(t *testing.T) {
	order := NewRegistry().Order()
	require.Len(t, order, 7)

	pos := make(map[string]int)
	for i, name := range order {
		pos[name] = i
	}
	assert.Less(t, pos["price"], pos["liquidity"])
	assert.Less(t, pos["volatility"], pos["quality"])
}

func TestRegistry_Register(t *testing.T) {
	r := NewEmptyRegistry()

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(&fixedComputer{}))
	assert.Error(t, r.Register(&fixedComputer{name: "b", deps: []string{"a"}}), "unknown dependency")

	require.NoError(t, r.Register(&fixedComputer{name: "a"}))
	require.NoError(t, r.Register(&fixedComputer{name: "b", deps: []string{"a"}}))
	assert.Error(t, r.Register(&fixedComputer{name: "a"}), "duplicate")
}

func TestRegistry_DependencyReadsEarlierMetric(t *testing.T) {
	r := NewEmptyRegistry()
	require.NoError(t, r.Register(&fixedComputer{name: "base", fn: func(in *Input, b *Builder) {
		b.Set("x", 2)
	}}))
	require.NoError(t, r.Register(&fixedComputer{name: "derived", deps: []string{"base"}, fn: func(in *Input, b *Builder) {
		if x, ok := b.Get("x"); ok {
			b.Set("y", x*10)
		}
	}}))

	bars := buildBars(t, []float64{10, 11}, constantVolumes(2, 100))
	snap := NewCalculatorWithRegistry(r).Calculate(NewInput(bars, nil, nil))

	y, ok := snap.Get("y")
	require.True(t, ok)
	assert.Equal(t, 20.0, y)
}

func TestRegistry_EmptyInput(t *testing.T) {
	snap := NewRegistry().ComputeAll(NewInput(nil, nil, nil))
	assert.Equal(t, 0, snap.Len())
}
