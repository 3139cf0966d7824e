package indicator

import (
	"testing"

	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassifyVolatilityRegime(t *testing.T) {
	vol := rising(25, 0.10, 0.01)
	regimes := ClassifyVolatilityRegime(vol, 20)

	for i := 0; i < 19; i++ {
		assert.Equal(t, models.RegimeUndefined, regimes[i], "row %d", i)
	}
	// strictly rising: the latest value is always above the trailing p67
	assert.Equal(t, models.RegimeHigh, regimes[24])

	falling := rising(25, 0.50, -0.01)
	assert.Equal(t, models.RegimeLow, ClassifyVolatilityRegime(falling, 20)[24])

	assert.Equal(t, models.RegimeLow, ClassifyVolatilityRegime(flat(25, 0.2), 20)[24],
		"a value equal to p33 is low")
}

func TestClassifyVolatilityRegime_Medium(t *testing.T) {
	vol := append(rising(19, 0.10, 0.01), 0.19)
	// window 0.10..0.28 plus 0.19: p33 ~ 0.1627, p67 ~ 0.2173
	assert.Equal(t, models.RegimeMedium, ClassifyVolatilityRegime(vol, 20)[19])
}

func TestDetectVolatilityClusters(t *testing.T) {
	vol := make([]float64, 30)
	for i := range vol {
		vol[i] = 0.2 + 0.01*float64(i%3)
	}
	vol = append(vol, 5.0)
	clusters := DetectVolatilityClusters(vol, 1.5)

	assert.False(t, clusters[0])
	assert.True(t, clusters[30])

	for _, c := range DetectVolatilityClusters(flat(30, 0.25), 1.5) {
		assert.False(t, c, "zero std leaves z undefined, never a cluster")
	}
}
