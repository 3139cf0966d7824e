package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// BarSource loads daily bars for a symbol, inclusive of start and end.
// A zero start or end leaves that side unbounded.
type BarSource interface {
	GetBars(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error)
}

// BatchRequest describes a batch analysis run
type BatchRequest struct {
	Symbols   []string
	Benchmark string // empty disables relative metrics
	Start     time.Time
	End       time.Time
}

// BatchItem is the outcome for one symbol. Exactly one of Result and Err is set.
type BatchItem struct {
	Symbol string
	Result *Result
	Err    error
}

// AnalyzeBatch analyses every symbol with at most config.Workers in flight.
// One symbol failing does not stop the others; items are returned in the
// order of req.Symbols. Cancelling ctx stops symbols that have not started.
func (e *Engine) AnalyzeBatch(ctx context.Context, source BarSource, req BatchRequest) ([]BatchItem, error) {
	if source == nil {
		return nil, fmt.Errorf("bar source is required")
	}

	var benchmark []models.Bar
	if req.Benchmark != "" {
		bm, err := source.GetBars(ctx, req.Benchmark, req.Start, req.End)
		if err != nil {
			// Relative metrics are optional; carry on without them
			logger.Warn("Failed to load benchmark, relative metrics disabled",
				logger.String("benchmark", req.Benchmark),
				logger.ErrorField(err),
			)
		} else {
			benchmark = bm
		}
	}

	workers := e.config.Workers
	if workers <= 0 {
		workers = 1
	}

	items := make([]BatchItem, len(req.Symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	failed := 0

	for i, symbol := range req.Symbols {
		i, symbol := i, symbol
		items[i].Symbol = symbol
		g.Go(func() error {
			result, err := e.analyzeSymbol(gctx, source, symbol, req, benchmark)
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				items[i].Err = err
				logger.Warn("Analysis failed",
					logger.String("symbol", symbol),
					logger.ErrorField(err),
				)
				return nil
			}
			items[i].Result = result
			return nil
		})
	}

	// Per-symbol failures never reach the group, so Wait only reports nil
	_ = g.Wait()

	logger.Info("Batch analysis completed",
		logger.Int("symbols", len(req.Symbols)),
		logger.Int("failed", failed),
		logger.Int("workers", workers),
	)

	if err := ctx.Err(); err != nil {
		return items, err
	}
	return items, nil
}

func (e *Engine) analyzeSymbol(ctx context.Context, source BarSource, symbol string, req BatchRequest, benchmark []models.Bar) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bars, err := source.GetBars(ctx, symbol, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load bars for %s: %w", symbol, err)
	}
	r := Request{Symbol: symbol, Bars: bars}
	if len(benchmark) > 0 {
		r.Benchmark = benchmark
		r.BenchmarkSymbol = req.Benchmark
	}
	return e.AnalyzeContext(ctx, r)
}
