package metrics

import (
	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/pkg/indicator"
)

// Input is what metric computers read: the instrument's bars, its ATR column
// and an optional benchmark bar sequence
type Input struct {
	Bars      []models.Bar
	ATR       indicator.Series
	Benchmark []models.Bar

	opens   []float64
	highs   []float64
	lows    []float64
	closes  []float64
	volumes []float64
	returns []float64 // defined returns only
}

// NewInput prepares the derived columns shared by every computer
func NewInput(bars []models.Bar, atr indicator.Series, benchmark []models.Bar) *Input {
	closes := models.Closes(bars)
	return &Input{
		Bars:      bars,
		ATR:       atr,
		Benchmark: benchmark,
		opens:     models.Opens(bars),
		highs:     models.Highs(bars),
		lows:      models.Lows(bars),
		closes:    closes,
		volumes:   models.Volumes(bars),
		returns:   indicator.Returns(closes).DefinedValues(),
	}
}

// Len returns the number of bars
func (in *Input) Len() int {
	return len(in.closes)
}

func (in *Input) lastClose() float64 {
	return in.closes[len(in.closes)-1]
}

// MetricComputer computes one group of related metrics
type MetricComputer interface {
	// Name returns the group name (e.g., "volatility")
	Name() string

	// Compute records the group's metrics into b. Metrics that cannot be
	// computed are left out.
	Compute(in *Input, b *Builder)

	// Dependencies returns computer names whose metrics this computer reads
	// (for ordering). Empty slice means no dependencies
	Dependencies() []string
}

// Calculator produces a metrics snapshot through a registry of computers
type Calculator struct {
	registry *Registry
}

// NewCalculator creates a calculator over the built-in metric groups
func NewCalculator() *Calculator {
	return &Calculator{registry: NewRegistry()}
}

// NewCalculatorWithRegistry creates a calculator over a custom registry
func NewCalculatorWithRegistry(r *Registry) *Calculator {
	return &Calculator{registry: r}
}

// Calculate computes every metric as of the last bar of in
func (c *Calculator) Calculate(in *Input) Snapshot {
	return c.registry.ComputeAll(in)
}
