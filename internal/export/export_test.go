package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/analysis"
	"github.com/mohamedkhairy/equity-signals/internal/metrics"
	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *analysis.Result {
	b := metrics.NewBuilder()
	b.Set(metrics.CurrentPrice, 85)
	b.Set(metrics.DailyChangePct, -15)
	b.Set(metrics.SortinoRatio, 0)

	beta := 1.2
	return &analysis.Result{
		RunID: "run-1",
		Metadata: analysis.Metadata{
			Ticker:       "SHOP.TO",
			TickerInfo:   analysis.LookupTicker("SHOP.TO"),
			Sector:       "Technology",
			AnalysisDate: time.Date(2024, 6, 3, 16, 0, 0, 0, time.UTC),
			DataPeriod:   analysis.DataPeriod{StartDate: "2024-01-02", EndDate: "2024-06-03", TotalDays: 105},
			Benchmark:    analysis.DefaultBenchmark,
		},
		Signals: analysis.SignalSection{
			LatestSignal:        models.Sell,
			DirectionalAccuracy: 55.5,
			TechnicalIndicators: analysis.TechnicalIndicators{RSI: 28.123, BBPosition: 0.05},
		},
		VolatilityRegime:    analysis.RegimeSection{CurrentRegime: models.RegimeHigh, Description: "high", VolatilityCluster: true},
		RelativePerformance: metrics.RelativePerformance{Beta: &beta},
		MarketMetrics:       b.Snapshot(),
		AttentionFlags: models.AttentionFlags{
			RequiresAttention: true,
			Reasons:           []string{"Large daily price movement"},
			RiskLevel:         models.RiskHigh,
		},
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleResult()))
	out := buf.String()

	for _, want := range []string{
		"EQUITY ANALYSIS SUMMARY - SHOP.TO",
		"Company: Shopify Inc",
		"Data Period: 2024-01-02 to 2024-06-03",
		"Latest Signal: SELL",
		"Directional Accuracy: 55.50%",
		"RSI: 28.12",
		"Current Regime: HIGH",
		"Volatility Cluster: Yes",
		"Beta: 1.20",
		"vs Benchmark (20d): n/a",
		"Daily Change: -15.00%",
		"Risk Level: HIGH",
		"  - Large daily price movement",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Volatility (20d)")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var decoded analysis.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "SHOP.TO", decoded.Metadata.Ticker)
	assert.Equal(t, models.Sell, decoded.Signals.LatestSignal)
	assert.Equal(t, -15.0, decoded.MarketMetrics.GetOr(metrics.DailyChangePct, 0))
	require.NotNil(t, decoded.RelativePerformance.Beta)
	assert.Nil(t, decoded.RelativePerformance.Correlation)
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewWriter(dir)
	w.now = func() time.Time { return time.Date(2024, 6, 3, 17, 4, 5, 0, time.UTC) }

	files, err := w.Write(sampleResult())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "SHOP_TO_analysis_20240603_170405.json"), files.JSON)
	assert.Equal(t, filepath.Join(dir, "SHOP_TO_summary_20240603_170405.txt"), files.Summary)

	for _, f := range []string{files.JSON, files.Summary} {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "RY_TO", BaseName("RY.TO"))
	assert.Equal(t, "^GSPTSE", BaseName("^GSPTSE"))
}
