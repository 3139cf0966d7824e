package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/analysis"
	"github.com/mohamedkhairy/equity-signals/internal/metrics"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
)

const timestampLayout = "20060102_150405"

// Files lists what Write produced
type Files struct {
	JSON    string
	Summary string
}

// Writer saves analysis results under a directory
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a writer rooted at dir; the directory is created on first write
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// BaseName is the file stem of a ticker: dots become underscores
func BaseName(ticker string) string {
	return strings.ReplaceAll(ticker, ".", "_")
}

// Write saves <ticker>_analysis_<ts>.json and <ticker>_summary_<ts>.txt
func (w *Writer) Write(result *analysis.Result) (Files, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return Files{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	stamp := w.now().Format(timestampLayout)
	base := BaseName(result.Metadata.Ticker)
	files := Files{
		JSON:    filepath.Join(w.dir, fmt.Sprintf("%s_analysis_%s.json", base, stamp)),
		Summary: filepath.Join(w.dir, fmt.Sprintf("%s_summary_%s.txt", base, stamp)),
	}

	if err := writeFile(files.JSON, func(f io.Writer) error { return WriteJSON(f, result) }); err != nil {
		return Files{}, err
	}
	logger.Info("Results saved", logger.String("file", files.JSON))

	if err := writeFile(files.Summary, func(f io.Writer) error { return WriteSummary(f, result) }); err != nil {
		return Files{}, err
	}
	logger.Info("Summary saved", logger.String("file", files.Summary))

	return files, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// WriteJSON writes the indented JSON document of result
func WriteJSON(w io.Writer, result *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// WriteSummary writes the human-readable report of result
func WriteSummary(w io.Writer, result *analysis.Result) error {
	p := &printer{w: w}
	md := result.Metadata

	p.linef("EQUITY ANALYSIS SUMMARY - %s", md.Ticker)
	p.linef("%s", strings.Repeat("=", 50))
	p.linef("")
	p.linef("Analysis Date: %s", md.AnalysisDate.Format(time.RFC3339))
	p.linef("Ticker: %s", md.Ticker)
	p.linef("Company: %s", md.TickerInfo.Name)
	p.linef("Sector: %s", md.Sector)
	p.linef("Data Period: %s to %s", md.DataPeriod.StartDate, md.DataPeriod.EndDate)
	p.linef("Total Days: %d", md.DataPeriod.TotalDays)
	p.linef("")

	p.section("SIGNALS", 20)
	p.linef("Latest Signal: %s", result.Signals.LatestSignal)
	p.linef("Directional Accuracy: %.2f%%", result.Signals.DirectionalAccuracy)
	b := result.Signals.Breakdown
	p.linef("Breakdown: RSI %s, MACD %s, Bollinger %s, MA %s, Volume %s", b.RSI, b.MACD, b.Bollinger, b.MA, b.Volume)
	p.linef("")

	p.section("TECHNICAL INDICATORS", 25)
	ti := result.Signals.TechnicalIndicators
	p.linef("RSI: %.2f", ti.RSI)
	p.linef("MACD: %.4f", ti.MACD)
	p.linef("Bollinger Position: %.2f", ti.BBPosition)
	p.linef("")

	p.section("VOLATILITY REGIME", 20)
	vr := result.VolatilityRegime
	p.linef("Current Regime: %s", strings.ToUpper(vr.Description))
	p.linef("Volatility Cluster: %s", yesNo(vr.VolatilityCluster))
	p.linef("Bollinger Squeeze: %s", yesNo(vr.BollingerSqueeze))
	p.linef("")

	if rp := result.RelativePerformance; rp.VsBenchmark20d != nil || rp.Beta != nil {
		p.section("RELATIVE PERFORMANCE", 25)
		if md.Benchmark != "" {
			p.linef("Benchmark: %s", md.Benchmark)
		}
		p.optional("vs Benchmark (20d)", rp.VsBenchmark20d, "%.2f%%")
		p.optional("vs Benchmark (60d)", rp.VsBenchmark60d, "%.2f%%")
		p.optional("Beta", rp.Beta, "%.2f")
		p.optional("Correlation", rp.Correlation, "%.2f")
		p.linef("")
	}

	p.section("KEY METRICS", 20)
	mm := result.MarketMetrics
	for _, m := range []struct {
		label, name, format string
	}{
		{"Current Price", metrics.CurrentPrice, "%.2f"},
		{"Daily Change", metrics.DailyChangePct, "%.2f%%"},
		{"Volatility (20d)", metrics.Volatility20d, "%.2f%%"},
		{"Volume Ratio", metrics.VolumeRatio, "%.2f"},
		{"Liquidity Score", metrics.LiquidityScore, "%.1f"},
		{"Max Drawdown", metrics.MaxDrawdown, "%.2f%%"},
		{"Sharpe Ratio", metrics.SharpeRatio, "%.2f"},
	} {
		if v, ok := mm.Get(m.name); ok {
			p.linef("%s: "+m.format, m.label, v)
		}
	}
	p.linef("")

	p.section("ATTENTION FLAGS", 20)
	flags := result.AttentionFlags
	p.linef("Requires Attention: %s", yesNo(flags.RequiresAttention))
	p.linef("Risk Level: %s", strings.ToUpper(string(flags.RiskLevel)))
	if len(flags.Reasons) > 0 {
		p.linef("Reasons:")
		for _, reason := range flags.Reasons {
			p.linef("  - %s", reason)
		}
	}

	return p.err
}

// printer keeps the first write error so the report reads top to bottom
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) linef(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) section(title string, rule int) {
	p.linef("%s", title)
	p.linef("%s", strings.Repeat("-", rule))
}

func (p *printer) optional(label string, v *float64, format string) {
	if v == nil {
		p.linef("%s: n/a", label)
		return
	}
	p.linef("%s: "+format, label, *v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
