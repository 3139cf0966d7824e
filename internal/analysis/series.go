package analysis

import (
	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/internal/signals"
	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
)

// AnnotatedSeries is a bar sequence with every derived column aligned to it
type AnnotatedSeries struct {
	Bars    []models.Bar
	Columns indicator.Columns
	Signals signals.Result

	Regime  []models.VolatilityRegime
	Cluster []bool
	Squeeze []bool
}

// Len returns the number of bars
func (s *AnnotatedSeries) Len() int {
	return len(s.Bars)
}

// Column returns a numeric column; an unknown name yields an all-undefined series
func (s *AnnotatedSeries) Column(name string) indicator.Series {
	if col, ok := s.Columns[name]; ok {
		return col
	}
	return indicator.NewSeries(s.Len())
}

// ColumnNames lists the numeric columns in a stable order: calculator columns
// as registered, moving averages by period
func (s *AnnotatedSeries) ColumnNames() []string {
	names := []string{
		indicator.ColReturns, indicator.ColLogReturns, indicator.ColDailySpreadPct,
		indicator.ColTrueRange, indicator.ColATR, indicator.ColVolatility,
		indicator.ColRSI, indicator.ColMACD, indicator.ColMACDSignal, indicator.ColMACDHistogram,
		indicator.ColBBUpper, indicator.ColBBMiddle, indicator.ColBBLower,
		indicator.ColBBBandwidth, indicator.ColBBPosition,
	}
	for _, p := range indicator.DefaultMAPeriods {
		names = append(names, indicator.MAColumn(p))
	}
	names = append(names,
		indicator.ColStochK, indicator.ColStochD, indicator.ColWilliamsR,
		indicator.ColVolumeZScore, indicator.ColOBV, indicator.ColVPT,
	)

	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := s.Columns[n]; ok {
			out = append(out, n)
		}
	}
	return out
}
