package metrics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_DropsUndefined(t *testing.T) {
	b := NewBuilder()
	b.Set("a", 1)
	b.Set("b", math.NaN())
	b.SetLabel(VolatilityRegime, "high")

	s := b.Snapshot()
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("b"))
	assert.True(t, s.Has(VolatilityRegime))
	assert.Equal(t, []string{"a", VolatilityRegime}, s.Names())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 9.0, s.GetOr("missing", 9))
}

func TestSnapshot_Immutable(t *testing.T) {
	b := NewBuilder()
	b.Set("a", 1)
	s := b.Snapshot()
	b.Set("a", 2)

	v, _ := s.Get("a")
	assert.Equal(t, 1.0, v)

	values := s.Values()
	values["a"] = 3
	v, _ = s.Get("a")
	assert.Equal(t, 1.0, v)
}

func TestSnapshot_JSON(t *testing.T) {
	b := NewBuilder()
	b.Set(SortinoRatio, math.Inf(1))
	b.Set(CurrentPrice, 101.5)
	b.SetLabel(VolatilityRegime, "low")

	data, err := json.Marshal(b.Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, `{"sortino_ratio":"Infinity","current_price":101.5,"volatility_regime":"low"}`, string(data))

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	sortino, ok := decoded.Get(SortinoRatio)
	require.True(t, ok)
	assert.True(t, math.IsInf(sortino, 1))
	regime, _ := decoded.Label(VolatilityRegime)
	assert.Equal(t, "low", regime)
}
