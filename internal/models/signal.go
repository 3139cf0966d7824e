package models

// Signal is a discrete directional call for one bar
type Signal int

const (
	Sell Signal = -1
	Hold Signal = 0
	Buy  Signal = 1
)

// String returns the upper-case label used in summaries
func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// SignalFromSign maps the sign of x to Buy, Sell or Hold
func SignalFromSign(x float64) Signal {
	switch {
	case x > 0:
		return Buy
	case x < 0:
		return Sell
	default:
		return Hold
	}
}

// VolatilityRegime buckets a bar's volatility relative to a reference distribution
type VolatilityRegime int

const (
	RegimeUndefined VolatilityRegime = -1
	RegimeLow       VolatilityRegime = 0
	RegimeMedium    VolatilityRegime = 1
	RegimeHigh      VolatilityRegime = 2
)

// String returns the lower-case regime description
func (r VolatilityRegime) String() string {
	switch r {
	case RegimeLow:
		return "low"
	case RegimeMedium:
		return "medium"
	case RegimeHigh:
		return "high"
	default:
		return "undefined"
	}
}
