package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/storage"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
	"github.com/spf13/cobra"
)

var importFlags struct {
	dir       string
	tickers   []string
	batchSize int
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load CSV bar files into PostgreSQL",
	Long: `Reads <SYMBOL>.csv files and upserts their bars into the daily_bars table,
so the postgres data source can serve them.

Examples:
  analyzer import --dir data
  analyzer import --dir data -t SHOP.TO -t RY.TO`,
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importFlags.dir, "dir", "", "directory of CSV files (default ANALYSIS_DATA_DIR)")
	f.StringSliceVarP(&importFlags.tickers, "ticker", "t", nil, "ticker to import (repeatable; default every file)")
	f.IntVar(&importFlags.batchSize, "batch-size", 0, "rows per insert transaction")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := storage.NewCSVBarSource(firstNonEmpty(importFlags.dir, cfg.Analysis.DataDir))
	if err != nil {
		return err
	}

	symbols := importFlags.tickers
	if len(symbols) == 0 {
		if symbols, err = src.ListSymbols(ctx); err != nil {
			return err
		}
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no CSV files to import")
	}

	wc := storage.DefaultWriteConfig()
	if importFlags.batchSize > 0 {
		wc.BatchSize = importFlags.batchSize
	}
	store, err := storage.NewPostgresBarStore(cfg.Database, wc)
	if err != nil {
		logger.CountError("import", "database", err)
		return err
	}
	defer store.Close()

	failed := 0
	for _, symbol := range symbols {
		started := time.Now()
		bars, err := src.GetBars(ctx, symbol, time.Time{}, time.Time{})
		if err == nil {
			err = store.WriteBars(ctx, bars)
		}
		if err != nil {
			failed++
			logger.CountError("import", "write", fmt.Errorf("%s: %w", symbol, err))
			continue
		}
		logger.Info("Imported bars",
			logger.String("symbol", symbol),
			logger.Int("bars", len(bars)),
			logger.Duration("duration", time.Since(started)),
		)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(symbols))
	}
	return nil
}
