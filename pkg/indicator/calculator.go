package indicator

import "fmt"

// Column names written to an annotated series
const (
	ColReturns        = "returns"
	ColLogReturns     = "log_returns"
	ColDailySpreadPct = "daily_spread_pct"
	ColVolatility     = "volatility"
	ColTrueRange      = "true_range"
	ColATR            = "atr"
	ColRSI            = "rsi"
	ColMACD           = "macd"
	ColMACDSignal     = "macd_signal"
	ColMACDHistogram  = "macd_histogram"
	ColBBUpper        = "bb_upper"
	ColBBMiddle       = "bb_middle"
	ColBBLower        = "bb_lower"
	ColBBBandwidth    = "bb_bandwidth"
	ColBBPosition     = "bb_position"
	ColStochK         = "stoch_k"
	ColStochD         = "stoch_d"
	ColWilliamsR      = "williams_r"
	ColVolumeZScore   = "volume_zscore"
	ColOBV            = "obv"
	ColVPT            = "vpt"
)

// Columns maps column names to computed series
type Columns map[string]Series

// Calculator computes one or more named columns from OHLCV input
type Calculator interface {
	// Name returns the calculator name (e.g., "rsi_14")
	Name() string

	// Compute returns the columns derived from in, each aligned with in
	Compute(in Input) (Columns, error)
}

func checkPeriod(name string, period, min int) error {
	if period < min {
		return fmt.Errorf("%s: period must be at least %d, got %d", name, min, period)
	}
	return nil
}

// ReturnsCalculator emits returns, log returns, daily spread and annualised rolling volatility
type ReturnsCalculator struct {
	VolatilityWindow int
}

func (c ReturnsCalculator) Name() string { return fmt.Sprintf("returns_vol_%d", c.VolatilityWindow) }

func (c ReturnsCalculator) Compute(in Input) (Columns, error) {
	if err := checkPeriod(c.Name(), c.VolatilityWindow, 2); err != nil {
		return nil, err
	}
	ret := Returns(in.Close)
	return Columns{
		ColReturns:        ret,
		ColLogReturns:     LogReturns(in.Close),
		ColDailySpreadPct: DailySpreadPct(in),
		ColVolatility:     RollingVolatility(ret, c.VolatilityWindow, true),
	}, nil
}

// ATRCalculator emits the true range and its rolling mean
type ATRCalculator struct {
	Period int
}

func (c ATRCalculator) Name() string { return fmt.Sprintf("atr_%d", c.Period) }

func (c ATRCalculator) Compute(in Input) (Columns, error) {
	if err := checkPeriod(c.Name(), c.Period, 1); err != nil {
		return nil, err
	}
	tr := TrueRange(in)
	return Columns{ColTrueRange: tr, ColATR: RollingMean(tr, c.Period)}, nil
}

// RSICalculator emits the RSI column
type RSICalculator struct {
	Period int
}

func (c RSICalculator) Name() string { return fmt.Sprintf("rsi_%d", c.Period) }

func (c RSICalculator) Compute(in Input) (Columns, error) {
	if err := checkPeriod(c.Name(), c.Period, 2); err != nil {
		return nil, err
	}
	return Columns{ColRSI: RSI(in.Close, c.Period)}, nil
}

// MACDCalculator emits the MACD line, signal line and histogram
type MACDCalculator struct {
	Fast, Slow, Signal int
}

func (c MACDCalculator) Name() string {
	return fmt.Sprintf("macd_%d_%d_%d", c.Fast, c.Slow, c.Signal)
}

func (c MACDCalculator) Compute(in Input) (Columns, error) {
	if c.Fast < 1 || c.Signal < 1 || c.Slow <= c.Fast {
		return nil, fmt.Errorf("%s: need 1 <= fast < slow and signal >= 1", c.Name())
	}
	m := MACD(in.Close, c.Fast, c.Slow, c.Signal)
	return Columns{ColMACD: m.MACD, ColMACDSignal: m.Signal, ColMACDHistogram: m.Histogram}, nil
}

// BollingerCalculator emits the band columns
type BollingerCalculator struct {
	Period int
	K      float64
}

func (c BollingerCalculator) Name() string { return fmt.Sprintf("bollinger_%d", c.Period) }

func (c BollingerCalculator) Compute(in Input) (Columns, error) {
	if err := checkPeriod(c.Name(), c.Period, 2); err != nil {
		return nil, err
	}
	b := Bollinger(in.Close, c.Period, c.K)
	return Columns{
		ColBBUpper:     b.Upper,
		ColBBMiddle:    b.Middle,
		ColBBLower:     b.Lower,
		ColBBBandwidth: b.Bandwidth,
		ColBBPosition:  b.Position,
	}, nil
}

// MovingAverageCalculator emits one SMA column per period
type MovingAverageCalculator struct {
	Periods []int
}

func (c MovingAverageCalculator) Name() string { return "moving_averages" }

func (c MovingAverageCalculator) Compute(in Input) (Columns, error) {
	for _, p := range c.Periods {
		if err := checkPeriod(c.Name(), p, 1); err != nil {
			return nil, err
		}
	}
	return Columns(MovingAverages(in.Close, c.Periods)), nil
}

// StochasticCalculator emits %K and %D
type StochasticCalculator struct {
	KPeriod, DPeriod int
}

func (c StochasticCalculator) Name() string {
	return fmt.Sprintf("stochastic_%d_%d", c.KPeriod, c.DPeriod)
}

func (c StochasticCalculator) Compute(in Input) (Columns, error) {
	if err := checkPeriod(c.Name(), c.KPeriod, 1); err != nil {
		return nil, err
	}
	if err := checkPeriod(c.Name(), c.DPeriod, 1); err != nil {
		return nil, err
	}
	s := Stochastic(in, c.KPeriod, c.DPeriod)
	return Columns{ColStochK: s.K, ColStochD: s.D}, nil
}

// WilliamsRCalculator emits Williams %R
type WilliamsRCalculator struct {
	Period int
}

func (c WilliamsRCalculator) Name() string { return fmt.Sprintf("williams_r_%d", c.Period) }

func (c WilliamsRCalculator) Compute(in Input) (Columns, error) {
	if err := checkPeriod(c.Name(), c.Period, 1); err != nil {
		return nil, err
	}
	return Columns{ColWilliamsR: WilliamsR(in, c.Period)}, nil
}

// LiquidityCalculator emits volume z-score, OBV and VPT
type LiquidityCalculator struct {
	Window int
}

func (c LiquidityCalculator) Name() string { return fmt.Sprintf("liquidity_%d", c.Window) }

func (c LiquidityCalculator) Compute(in Input) (Columns, error) {
	if err := checkPeriod(c.Name(), c.Window, 2); err != nil {
		return nil, err
	}
	return Columns{
		ColVolumeZScore: VolumeZScore(in.Volume, c.Window),
		ColOBV:          OnBalanceVolume(in.Volume, in.Close),
		ColVPT:          VolumePriceTrend(in.Volume, in.Close),
	}, nil
}
