package metrics

// PriceComputer records the latest bar's levels, its intraday change and range,
// and trailing 5/20/252-bar changes
type PriceComputer struct{}

func (c *PriceComputer) Name() string           { return "price" }
func (c *PriceComputer) Dependencies() []string { return []string{} }

func (c *PriceComputer) Compute(in *Input, b *Builder) {
	n := in.Len()
	last := in.Bars[n-1]

	b.Set(CurrentPrice, last.Close)
	b.Set(DailyHigh, last.High)
	b.Set(DailyLow, last.Low)
	b.Set(DailyOpen, last.Open)

	b.Set(DailyChange, last.Close-last.Open)
	b.Set(DailyChangePct, pct(last.Close-last.Open, last.Open))

	b.Set(DailyRange, last.High-last.Low)
	b.Set(DailyRangePct, pct(last.High-last.Low, last.Close))

	for _, p := range []struct {
		name string
		bars int
	}{
		{WeekChangePct, 5},
		{MonthChangePct, 20},
		{YearChangePct, 252},
	} {
		if n < p.bars {
			continue
		}
		base := in.closes[n-p.bars]
		b.Set(p.name, pct(last.Close-base, base))
	}
}
