package metrics

import (
	"math"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
)

// RelativeComputer records performance against the benchmark. It needs at
// least 20 return pairs after inner-joining both series on date.
type RelativeComputer struct{}

func (c *RelativeComputer) Name() string           { return "relative" }
func (c *RelativeComputer) Dependencies() []string { return []string{} }

func (c *RelativeComputer) Compute(in *Input, b *Builder) {
	if len(in.Benchmark) == 0 {
		return
	}
	eqCloses, bmCloses, _ := alignCloses(in.Bars, in.Benchmark)
	if len(eqCloses) < 2 {
		return
	}
	eq := indicator.Returns(eqCloses).DefinedValues()
	bm := indicator.Returns(bmCloses).DefinedValues()
	if len(eq) < MinReturns || len(eq) != len(bm) {
		return
	}

	rel := make([]float64, len(eq))
	for i := range eq {
		rel[i] = eq[i] - bm[i]
	}
	b.Set(RelativeReturn20d, sum(tail(rel, 20))*100)
	if len(rel) >= 60 {
		b.Set(RelativeReturn60d, sum(tail(rel, 60))*100)
	}

	eq60, bm60 := tail(eq, 60), tail(bm, 60)
	beta := indicator.Beta(eq60, bm60)
	b.Set(Beta, beta)
	b.Set(Correlation60d, indicator.Correlation(eq60, bm60))

	annualize := math.Sqrt(indicator.TradingDaysPerYear)
	if te := indicator.StdDev(rel) * annualize; te > 0 {
		b.Set(InformationRatio, indicator.Mean(rel)*indicator.TradingDaysPerYear/te)
	}

	if !indicator.Undefined(beta) {
		marketReturn := indicator.Mean(bm) * indicator.TradingDaysPerYear
		expected := RiskFreeRate + beta*(marketReturn-RiskFreeRate)
		actual := indicator.Mean(eq) * indicator.TradingDaysPerYear
		b.Set(Alpha, (actual-expected)*100)
	}
}

// alignCloses inner-joins two bar sequences on calendar date and returns the
// closes and dates of the common rows in order
func alignCloses(bars, benchmark []models.Bar) (eq, bm []float64, dates []time.Time) {
	byDate := make(map[string]float64, len(benchmark))
	for _, bar := range benchmark {
		byDate[models.DateKey(bar.Date)] = bar.Close
	}
	for _, bar := range bars {
		c, ok := byDate[models.DateKey(bar.Date)]
		if !ok {
			continue
		}
		eq = append(eq, bar.Close)
		bm = append(bm, c)
		dates = append(dates, bar.Date)
	}
	return eq, bm, dates
}

// RelativeFrame is the per-date comparison of an instrument with its benchmark.
// Returns are taken from each full series before the join.
type RelativeFrame struct {
	Dates              []time.Time
	TickerReturns      indicator.Series
	BenchmarkReturns   indicator.Series
	RelativeReturns    indicator.Series
	CumulativeRelative indicator.Series
	RollingCorrelation indicator.Series
	RollingBeta        indicator.Series
}

// RelativePerformance holds the latest relative figures; nil means undefined
type RelativePerformance struct {
	VsBenchmark20d *float64 `json:"vs_benchmark_20d"`
	VsBenchmark60d *float64 `json:"vs_benchmark_60d"`
	Beta           *float64 `json:"beta"`
	Correlation    *float64 `json:"correlation"`
}

// BuildRelativeFrame joins bars and benchmark on date and computes relative
// returns, their compounded total and window-bar rolling correlation and beta
func BuildRelativeFrame(bars, benchmark []models.Bar, window int) RelativeFrame {
	eqRet := indicator.Returns(models.Closes(bars))
	bmRet := indicator.Returns(models.Closes(benchmark))

	bmByDate := make(map[string]float64, len(benchmark))
	for i, bar := range benchmark {
		bmByDate[models.DateKey(bar.Date)] = bmRet[i]
	}

	var f RelativeFrame
	for i, bar := range bars {
		r, ok := bmByDate[models.DateKey(bar.Date)]
		if !ok {
			continue
		}
		f.Dates = append(f.Dates, bar.Date)
		f.TickerReturns = append(f.TickerReturns, eqRet[i])
		f.BenchmarkReturns = append(f.BenchmarkReturns, r)
	}

	n := len(f.Dates)
	f.RelativeReturns = make(indicator.Series, n)
	f.CumulativeRelative = indicator.NewSeries(n)
	cum := 1.0
	for i := 0; i < n; i++ {
		f.RelativeReturns[i] = f.TickerReturns[i] - f.BenchmarkReturns[i]
		if indicator.Undefined(f.RelativeReturns[i]) {
			continue
		}
		cum *= 1 + f.RelativeReturns[i]
		f.CumulativeRelative[i] = cum - 1
	}

	f.RollingCorrelation = rollingPair(f.TickerReturns, f.BenchmarkReturns, window, indicator.Correlation)
	f.RollingBeta = rollingPair(f.TickerReturns, f.BenchmarkReturns, window, indicator.Beta)
	return f
}

// Len returns the number of joined dates
func (f RelativeFrame) Len() int {
	return len(f.Dates)
}

// Performance summarises the frame as of its last date
func (f RelativeFrame) Performance() RelativePerformance {
	var p RelativePerformance
	if f.Len() >= 20 {
		p.VsBenchmark20d = optional(sum(indicator.Series(tail(f.RelativeReturns, 20)).DefinedValues()) * 100)
	}
	if f.Len() >= 60 {
		p.VsBenchmark60d = optional(sum(indicator.Series(tail(f.RelativeReturns, 60)).DefinedValues()) * 100)
	}
	if v, ok := f.RollingBeta.Last(); ok {
		p.Beta = optional(v)
	}
	if v, ok := f.RollingCorrelation.Last(); ok {
		p.Correlation = optional(v)
	}
	return p
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// rollingPair applies fn to each full trailing window of aligned x and y rows;
// a window holding an undefined row is undefined
func rollingPair(x, y indicator.Series, window int, fn func(a, b []float64) float64) indicator.Series {
	out := indicator.NewSeries(len(x))
	for i := window - 1; i < len(x) && window > 0; i++ {
		a, b := x[i-window+1:i+1], y[i-window+1:i+1]
		if len(indicator.Series(a).DefinedValues()) != window || len(indicator.Series(b).DefinedValues()) != window {
			continue
		}
		out[i] = fn(a, b)
	}
	return out
}
