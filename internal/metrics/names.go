package metrics

// Metric names emitted into a Snapshot
const (
	CurrentPrice          = "current_price"
	DailyHigh             = "daily_high"
	DailyLow              = "daily_low"
	DailyOpen             = "daily_open"
	DailyChange           = "daily_change"
	DailyChangePct        = "daily_change_pct"
	DailyRange            = "daily_range"
	DailyRangePct         = "daily_range_pct"
	WeekChangePct         = "week_change_pct"
	MonthChangePct        = "month_change_pct"
	YearChangePct         = "year_change_pct"
	Volatility20d         = "volatility_20d"
	Volatility60d         = "volatility_60d"
	VolatilityPctl        = "volatility_percentile"
	VolatilityRegime      = "volatility_regime"
	ATRPercentage         = "atr_percentage"
	DailyVolume           = "daily_volume"
	AvgVolume20d          = "avg_volume_20d"
	VolumeRatio           = "volume_ratio"
	VolumeZScore          = "volume_zscore"
	DollarVolume          = "dollar_volume"
	VWAP20d               = "vwap_20d"
	PriceVsVWAP           = "price_vs_vwap"
	LiquidityScore        = "liquidity_score"
	DailySpreadPct        = "daily_spread_pct"
	AvgSpread20d          = "avg_spread_20d"
	SpreadVolatility      = "spread_volatility"
	SpreadPercentile      = "spread_percentile"
	EffectiveSpreadPct    = "effective_spread_pct"
	VaR5Pct               = "var_5pct"
	ExpectedShortfall5Pct = "expected_shortfall_5pct"
	MaxDrawdown           = "max_drawdown"
	SharpeRatio           = "sharpe_ratio"
	SortinoRatio          = "sortino_ratio"
	RelativeReturn20d     = "relative_return_20d"
	RelativeReturn60d     = "relative_return_60d"
	Beta                  = "beta"
	Correlation60d        = "correlation_60d"
	InformationRatio      = "information_ratio"
	Alpha                 = "alpha"
	PriceEfficiency       = "price_efficiency"
	MarketImpactProxy     = "market_impact_proxy"
	PriceStability        = "price_stability"
)

// Shared constants
const (
	// RiskFreeRate is the fixed annual risk-free rate
	RiskFreeRate = 0.02

	// MinReturns is the minimum number of returns for windowed statistics
	MinReturns = 20

	// MinImpactPoints is the minimum number of aligned points for the market impact proxy
	MinImpactPoints = 10
)
