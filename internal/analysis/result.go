package analysis

import (
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/metrics"
	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/internal/signals"
)

// Result is the complete analysis of one instrument
type Result struct {
	RunID               string                      `json:"run_id"`
	Metadata            Metadata                    `json:"metadata"`
	Signals             SignalSection               `json:"signals"`
	VolatilityRegime    RegimeSection               `json:"volatility_regime"`
	RelativePerformance metrics.RelativePerformance `json:"relative_performance"`
	MarketMetrics       metrics.Snapshot            `json:"market_metrics"`
	AttentionFlags      models.AttentionFlags       `json:"attention_flags"`
	DataSummary         DataSummary                 `json:"data_summary"`

	Series *AnnotatedSeries `json:"-"`
}

// Metadata identifies the instrument and the analysed period
type Metadata struct {
	Ticker       string     `json:"ticker"`
	TickerInfo   TickerInfo `json:"ticker_info"`
	Sector       string     `json:"sector"`
	AnalysisDate time.Time  `json:"analysis_date"`
	DataPeriod   DataPeriod `json:"data_period"`
	Benchmark    string     `json:"benchmark,omitempty"`
}

// DataPeriod is the date span of the bars
type DataPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TotalDays int    `json:"total_days"`
}

// SignalSection holds the latest signals with fallbacks applied
type SignalSection struct {
	LatestSignal        models.Signal       `json:"latest_signal"`
	Breakdown           SignalBreakdown     `json:"signal_breakdown"`
	TechnicalIndicators TechnicalIndicators `json:"technical_indicators"`
	DirectionalAccuracy float64             `json:"directional_accuracy"`
}

// SignalBreakdown is the latest per-indicator signal
type SignalBreakdown struct {
	RSI       models.Signal `json:"rsi_signal"`
	MACD      models.Signal `json:"macd_signal"`
	Bollinger models.Signal `json:"bollinger_signal"`
	MA        models.Signal `json:"ma_signal"`
	Volume    models.Signal `json:"volume_signal"`
}

// TechnicalIndicators is the latest indicator readings
type TechnicalIndicators struct {
	RSI            float64 `json:"rsi"`
	MACD           float64 `json:"macd"`
	MACDSignalLine float64 `json:"macd_signal_line"`
	BBPosition     float64 `json:"bb_position"`
	BBBandwidth    float64 `json:"bb_bandwidth"`
}

// RegimeSection is the latest per-bar volatility regime
type RegimeSection struct {
	CurrentRegime     models.VolatilityRegime `json:"current_regime"`
	Description       string                  `json:"regime_description"`
	VolatilityCluster bool                    `json:"volatility_cluster"`
	BollingerSqueeze  bool                    `json:"bollinger_squeeze"`
}

// DataSummary counts composite signals and summarises the volatility column.
// Volatility figures are nil when the column has no defined rows.
type DataSummary struct {
	signals.Summary
	AvgVolatility *float64 `json:"avg_volatility"`
	MaxVolatility *float64 `json:"max_volatility"`
	MinVolatility *float64 `json:"min_volatility"`
}
