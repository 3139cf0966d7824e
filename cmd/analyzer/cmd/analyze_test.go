package cmd

import (
	"testing"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)

	start, end, err := dateRange("", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", end.Format(dateLayout))
	assert.Equal(t, "2023-06-15", start.Format(dateLayout))

	start, end, err = dateRange("2024-01-01", "2024-03-31", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", start.Format(dateLayout))
	assert.Equal(t, "2024-03-31", end.Format(dateLayout))

	_, _, err = dateRange("2024-04-01", "2024-03-31", now)
	assert.Error(t, err)

	_, _, err = dateRange("01/01/2024", "", now)
	assert.Error(t, err)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

func TestEngineConfig(t *testing.T) {
	c := &config.Config{Analysis: config.AnalysisConfig{
		RegimeLookback:   30,
		ClusterThreshold: 2,
		Lookforward:      5,
		RelativeWindow:   60,
		Workers:          8,
	}}

	ec := engineConfig(c)
	assert.Equal(t, 30, ec.RegimeLookback)
	assert.Equal(t, 2.0, ec.ClusterThreshold)
	assert.Equal(t, 5, ec.Lookforward)
	assert.Equal(t, 60, ec.RelativeWindow)
	assert.Equal(t, 8, ec.Workers)
	assert.Equal(t, 20, ec.SqueezeWindow)
}

func TestOpenSource_CSV(t *testing.T) {
	c := &config.Config{Analysis: config.AnalysisConfig{DataSource: "csv", DataDir: t.TempDir()}}
	src, err := openSource(c)
	require.NoError(t, err)
	assert.NoError(t, src.Close())

	c.Analysis.DataDir = "/does/not/exist"
	src, err = openSource(c)
	assert.Error(t, err)
	assert.Nil(t, src)
}
