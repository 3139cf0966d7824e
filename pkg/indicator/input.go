package indicator

import "github.com/mohamedkhairy/equity-signals/internal/models"

// Input holds the OHLCV columns of a validated bar sequence
type Input struct {
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64
}

// InputFromBars extracts the OHLCV columns from bars
func InputFromBars(bars []models.Bar) Input {
	return Input{
		Open:   models.Opens(bars),
		High:   models.Highs(bars),
		Low:    models.Lows(bars),
		Close:  models.Closes(bars),
		Volume: models.Volumes(bars),
	}
}

// Len returns the number of bars
func (in Input) Len() int {
	return len(in.Close)
}
