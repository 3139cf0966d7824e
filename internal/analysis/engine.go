package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mohamedkhairy/equity-signals/internal/metrics"
	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/internal/rules"
	"github.com/mohamedkhairy/equity-signals/internal/signals"
	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysisTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_runs_total",
			Help: "Total number of instrument analyses",
		},
		[]string{"status"},
	)

	analysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Duration of a single instrument analysis in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	attentionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_attention_total",
			Help: "Analyses that raised attention flags, by risk level",
		},
		[]string{"risk_level"},
	)
)

// EngineConfig holds configuration for the analysis engine
type EngineConfig struct {
	RegimeLookback   int     // trailing window of the per-bar regime quantiles (default: 20)
	ClusterThreshold float64 // volatility z-score marking a cluster (default: 1.5)
	Lookforward      int     // bars ahead used by directional accuracy (default: 1)
	RelativeWindow   int     // rolling window of the relative frame (default: 20)
	SqueezeWindow    int     // trailing window of the Bollinger squeeze (default: 20)
	SqueezeQuantile  float64 // bandwidth quantile marking a squeeze (default: 0.10)
	Workers          int     // concurrent analyses in a batch (default: 4)
}

// DefaultEngineConfig returns default configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		RegimeLookback:   20,
		ClusterThreshold: 1.5,
		Lookforward:      1,
		RelativeWindow:   20,
		SqueezeWindow:    20,
		SqueezeQuantile:  0.10,
		Workers:          4,
	}
}

// Request is one instrument to analyse
type Request struct {
	Symbol          string
	Bars            []models.Bar
	BenchmarkSymbol string
	Benchmark       []models.Bar // optional
}

// Engine runs the full signal and metrics pipeline. It holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	config     EngineConfig
	indicators *indicator.Registry
	metrics    *metrics.Calculator
	rules      rules.Evaluator
	now        func() time.Time
}

// NewEngine creates an engine with the default indicator, metric and rule sets
func NewEngine(config EngineConfig) *Engine {
	return &Engine{
		config:     config,
		indicators: indicator.DefaultRegistry(),
		metrics:    metrics.NewCalculator(),
		rules:      rules.DefaultEvaluator(),
		now:        time.Now,
	}
}

// WithRules replaces the attention rule evaluator
func (e *Engine) WithRules(r rules.Evaluator) *Engine {
	e.rules = r
	return e
}

// WithIndicators replaces the indicator registry
func (e *Engine) WithIndicators(r *indicator.Registry) *Engine {
	e.indicators = r
	return e
}

// Annotate computes every indicator, signal and regime column for bars
func (e *Engine) Annotate(bars []models.Bar) (*AnnotatedSeries, error) {
	if err := models.ValidateBars(bars); err != nil {
		return nil, err
	}

	closes := models.Closes(bars)
	cols, err := e.indicators.ComputeAll(indicator.InputFromBars(bars))
	if err != nil {
		return nil, fmt.Errorf("failed to compute indicators: %w", err)
	}

	vol := cols[indicator.ColVolatility]
	if vol == nil {
		vol = indicator.NewSeries(len(bars))
	}
	bandwidth := cols[indicator.ColBBBandwidth]
	if bandwidth == nil {
		bandwidth = indicator.NewSeries(len(bars))
	}

	return &AnnotatedSeries{
		Bars:    bars,
		Columns: cols,
		Signals: signals.Compose(signals.InputFromColumns(closes, cols)),
		Regime:  indicator.ClassifyVolatilityRegime(vol, e.config.RegimeLookback),
		Cluster: indicator.DetectVolatilityClusters(vol, e.config.ClusterThreshold),
		Squeeze: indicator.BollingerSqueeze(bandwidth, e.config.SqueezeWindow, e.config.SqueezeQuantile),
	}, nil
}

// Analyze runs the whole pipeline over one instrument. The bars must end at the
// analysis date: every metric is computed as of the last bar.
func (e *Engine) Analyze(req Request) (*Result, error) {
	start := time.Now()
	result, err := e.analyze(req)
	analysisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		analysisTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	analysisTotal.WithLabelValues("ok").Inc()
	if result.AttentionFlags.RequiresAttention {
		attentionTotal.WithLabelValues(string(result.AttentionFlags.RiskLevel)).Inc()
	}

	logger.Debug("Analysis completed",
		logger.String("symbol", req.Symbol),
		logger.Int("bars", len(req.Bars)),
		logger.String("latest_signal", result.Signals.LatestSignal.String()),
		logger.String("risk_level", string(result.AttentionFlags.RiskLevel)),
		logger.JSON("attention_reasons", result.AttentionFlags.Reasons),
		logger.Float64("directional_accuracy", result.Signals.DirectionalAccuracy),
		logger.Time("as_of", req.Bars[len(req.Bars)-1].Date),
		logger.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (e *Engine) analyze(req Request) (*Result, error) {
	if req.Symbol == "" {
		return nil, models.ErrInvalidSymbol
	}

	series, err := e.Annotate(req.Bars)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Symbol, err)
	}
	if len(req.Benchmark) > 0 {
		if err := models.ValidateBars(req.Benchmark); err != nil {
			return nil, fmt.Errorf("benchmark %s: %w", req.BenchmarkSymbol, err)
		}
	}

	snapshot := e.metrics.Calculate(metrics.NewInput(req.Bars, series.Column(indicator.ColATR), req.Benchmark))
	flags := e.rules.Evaluate(snapshot)

	var relative metrics.RelativePerformance
	if len(req.Benchmark) > 0 {
		relative = metrics.BuildRelativeFrame(req.Bars, req.Benchmark, e.config.RelativeWindow).Performance()
	}

	sig := series.Signals
	regime := LatestRegime(series.Regime)
	info := LookupTicker(req.Symbol)

	return &Result{
		RunID: uuid.NewString(),
		Metadata: Metadata{
			Ticker:       req.Symbol,
			TickerInfo:   info,
			Sector:       info.Sector,
			AnalysisDate: e.now(),
			DataPeriod: DataPeriod{
				StartDate: req.Bars[0].Date.Format("2006-01-02"),
				EndDate:   req.Bars[len(req.Bars)-1].Date.Format("2006-01-02"),
				TotalDays: len(req.Bars),
			},
			Benchmark: req.BenchmarkSymbol,
		},
		Signals: SignalSection{
			LatestSignal: LatestSignal(sig.Composite),
			Breakdown: SignalBreakdown{
				RSI:       LatestSignal(sig.RSI),
				MACD:      LatestSignal(sig.MACD),
				Bollinger: LatestSignal(sig.Bollinger),
				MA:        LatestSignal(sig.MA),
				Volume:    LatestSignal(sig.Volume),
			},
			TechnicalIndicators: TechnicalIndicators{
				RSI:            LatestOr(series.Column(indicator.ColRSI), FallbackRSI),
				MACD:           LatestOr(series.Column(indicator.ColMACD), FallbackMACD),
				MACDSignalLine: LatestOr(series.Column(indicator.ColMACDSignal), FallbackMACDSignal),
				BBPosition:     LatestOr(series.Column(indicator.ColBBPosition), FallbackBBPosition),
				BBBandwidth:    LatestOr(series.Column(indicator.ColBBBandwidth), FallbackBBBandwidth),
			},
			DirectionalAccuracy: signals.DirectionalAccuracy(sig.Composite, series.Column(indicator.ColReturns), e.config.Lookforward),
		},
		VolatilityRegime: RegimeSection{
			CurrentRegime:     regime,
			Description:       regime.String(),
			VolatilityCluster: LatestFlag(series.Cluster),
			BollingerSqueeze:  LatestFlag(series.Squeeze),
		},
		RelativePerformance: relative,
		MarketMetrics:       snapshot,
		AttentionFlags:      flags,
		DataSummary:         summarize(series),
		Series:              series,
	}, nil
}

func summarize(series *AnnotatedSeries) DataSummary {
	summary := DataSummary{Summary: signals.Summarize(series.Signals.Composite)}
	vol := series.Column(indicator.ColVolatility).DefinedValues()
	if len(vol) == 0 {
		return summary
	}
	lo, hi := vol[0], vol[0]
	for _, v := range vol {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	avg := indicator.Mean(vol)
	summary.AvgVolatility = &avg
	summary.MaxVolatility = &hi
	summary.MinVolatility = &lo
	return summary
}

// AnalyzeContext is Analyze with a cancellation check before work starts
func (e *Engine) AnalyzeContext(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.Analyze(req)
}
