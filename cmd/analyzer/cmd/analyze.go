package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mohamedkhairy/equity-signals/internal/analysis"
	"github.com/mohamedkhairy/equity-signals/internal/export"
	"github.com/mohamedkhairy/equity-signals/internal/pubsub"
	"github.com/mohamedkhairy/equity-signals/internal/rules"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var analyzeFlags struct {
	tickers     []string
	start       string
	end         string
	outputDir   string
	benchmark   string
	noBenchmark bool
	workers     int
	publish     bool
	rulesFile   string
	noExport    bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one or more tickers",
	Long: `Runs the signal and metrics pipeline for each ticker and writes
<ticker>_analysis_<timestamp>.json and <ticker>_summary_<timestamp>.txt.

Examples:
  analyzer analyze --ticker SHOP.TO
  analyzer analyze -t RY.TO -t TD.TO --start 2024-01-01 --end 2024-12-31
  analyzer analyze --publish            # tickers from ANALYSIS_SYMBOLS`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringSliceVarP(&analyzeFlags.tickers, "ticker", "t", nil, "ticker to analyze (repeatable; default ANALYSIS_SYMBOLS)")
	f.StringVar(&analyzeFlags.start, "start", "", "first date, YYYY-MM-DD (default one year before end)")
	f.StringVar(&analyzeFlags.end, "end", "", "last date, YYYY-MM-DD (default today)")
	f.StringVarP(&analyzeFlags.outputDir, "output-dir", "o", "", "export directory (default ANALYSIS_OUTPUT_DIR)")
	f.StringVar(&analyzeFlags.benchmark, "benchmark", "", "benchmark ticker (default ANALYSIS_BENCHMARK)")
	f.BoolVar(&analyzeFlags.noBenchmark, "no-benchmark", false, "skip relative metrics")
	f.IntVarP(&analyzeFlags.workers, "workers", "w", 0, "concurrent analyses (default ANALYSIS_WORKERS)")
	f.BoolVar(&analyzeFlags.publish, "publish", false, "publish results to Redis (also enabled by PUBLISH_ENABLED)")
	f.StringVar(&analyzeFlags.rulesFile, "rules", "", "attention rule set JSON (default ANALYSIS_RULES_FILE or built-in)")
	f.BoolVar(&analyzeFlags.noExport, "no-export", false, "do not write result files")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	symbols := analyzeFlags.tickers
	if len(symbols) == 0 {
		symbols = cfg.Analysis.Symbols
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no tickers given: pass --ticker or set ANALYSIS_SYMBOLS")
	}
	for i := range symbols {
		symbols[i] = strings.ToUpper(strings.TrimSpace(symbols[i]))
	}

	start, end, err := dateRange(analyzeFlags.start, analyzeFlags.end, time.Now())
	if err != nil {
		return err
	}

	benchmark := firstNonEmpty(analyzeFlags.benchmark, cfg.Analysis.Benchmark)
	if analyzeFlags.noBenchmark {
		benchmark = ""
	}
	if analyzeFlags.workers > 0 {
		cfg.Analysis.Workers = analyzeFlags.workers
	}

	evaluator, err := rules.LoadEvaluator(firstNonEmpty(analyzeFlags.rulesFile, cfg.Analysis.RulesFile))
	if err != nil {
		return fmt.Errorf("failed to load attention rules: %w", err)
	}

	source, err := openSource(cfg)
	if err != nil {
		logger.CountError("analyzer", "source", err)
		return err
	}
	defer source.Close()

	var publisher *pubsub.ResultPublisher
	if analyzeFlags.publish || cfg.Publish.Enabled {
		redisClient, err := pubsub.NewRedisClient(cfg.Redis, cfg.Publish.MaxLen)
		if err != nil {
			logger.CountError("analyzer", "redis", err)
			return err
		}
		defer redisClient.Close()

		pc := pubsub.DefaultResultPublisherConfig(cfg.Publish.Stream)
		pc.LatestTTL = cfg.Publish.LatestTTL
		publisher = pubsub.NewResultPublisher(redisClient, pc)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Analysis.Timeout)
	defer cancel()
	ctx = logger.WithRunID(ctx, uuid.New().String())

	logger.WithContext(ctx).Info("Starting analysis",
		logger.Int("tickers", len(symbols)),
		logger.String("start", start.Format(dateLayout)),
		logger.String("end", end.Format(dateLayout)),
		logger.String("benchmark", benchmark),
		logger.Int("workers", cfg.Analysis.Workers),
		logger.Bool("publish", publisher != nil),
	)

	engine := analysis.NewEngine(engineConfig(cfg)).WithRules(evaluator)
	items, err := engine.AnalyzeBatch(ctx, source, analysis.BatchRequest{
		Symbols:   symbols,
		Benchmark: benchmark,
		Start:     start,
		End:       end,
	})
	if err != nil {
		return err
	}

	writer := export.NewWriter(firstNonEmpty(analyzeFlags.outputDir, cfg.Analysis.OutputDir))
	out := cmd.OutOrStdout()
	failed := 0

	for _, item := range items {
		if item.Err != nil {
			failed++
			logger.CountError("analyzer", "analysis", fmt.Errorf("%s: %w", item.Symbol, item.Err))
			fmt.Fprintf(out, "%-10s FAILED  %v\n", item.Symbol, item.Err)
			continue
		}
		result := item.Result

		if !analyzeFlags.noExport {
			files, err := writer.Write(result)
			if err != nil {
				failed++
				logger.CountError("analyzer", "export", fmt.Errorf("%s: %w", item.Symbol, err))
				continue
			}
			logger.Debug("Results exported",
				logger.String("symbol", item.Symbol),
				logger.String("json", files.JSON),
				logger.String("summary", files.Summary),
			)
		}

		if publisher != nil {
			if err := publisher.Publish(ctx, result); err != nil {
				// Files are already written; publishing is best effort
				logger.CountError("analyzer", "publish", fmt.Errorf("%s: %w", item.Symbol, err))
			}
		}

		fmt.Fprintf(out, "%-10s %-5s risk=%-6s attention=%t signals=%d\n",
			result.Metadata.Ticker,
			result.Signals.LatestSignal.String(),
			result.AttentionFlags.RiskLevel,
			result.AttentionFlags.RequiresAttention,
			result.DataSummary.Total,
		)
	}

	logger.WithContext(ctx).Info("Analysis complete",
		logger.Int("succeeded", len(items)-failed),
		logger.Int("failed", failed),
	)

	if failed == len(items) {
		return fmt.Errorf("all %d analyses failed", failed)
	}
	return nil
}

// dateRange parses the optional bounds; end defaults to today and start to a
// year before end
func dateRange(startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if endStr != "" {
		t, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end %q, expected YYYY-MM-DD", endStr)
		}
		end = t
	}

	start := end.AddDate(-1, 0, 0)
	if startStr != "" {
		t, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start %q, expected YYYY-MM-DD", startStr)
		}
		start = t
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start %s is after end %s", start.Format(dateLayout), end.Format(dateLayout))
	}
	return start, end, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
