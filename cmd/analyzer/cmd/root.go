// Package cmd holds the analyzer CLI commands
package cmd

import (
	"fmt"
	"os"

	"github.com/mohamedkhairy/equity-signals/internal/analysis"
	"github.com/mohamedkhairy/equity-signals/internal/config"
	"github.com/mohamedkhairy/equity-signals/internal/storage"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Equity signal generation and market metrics engine",
	Long: `Equity signal generation and market metrics engine.

Commands:
    analyze     run the analysis for one or more tickers and export the results
    serve       start the HTTP API
    import      load CSV bar files into PostgreSQL
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
}

// initConfig loads configuration from the environment and .env, then starts the logger
func initConfig() error {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return err
	}
	if verbose {
		loaded.LogLevel = "debug"
	}

	if err := logger.Init(loaded.LogLevel, loaded.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return err
	}

	cfg = loaded
	return nil
}

// engineConfig maps configuration onto the engine defaults
func engineConfig(c *config.Config) analysis.EngineConfig {
	ec := analysis.DefaultEngineConfig()
	ec.RegimeLookback = c.Analysis.RegimeLookback
	ec.ClusterThreshold = c.Analysis.ClusterThreshold
	ec.Lookforward = c.Analysis.Lookforward
	ec.RelativeWindow = c.Analysis.RelativeWindow
	ec.Workers = c.Analysis.Workers
	return ec
}

// openSource opens the configured bar source
func openSource(c *config.Config) (storage.BarSource, error) {
	if c.Analysis.DataSource == "postgres" {
		store, err := storage.NewPostgresBarStore(c.Database, storage.DefaultWriteConfig())
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	src, err := storage.NewCSVBarSource(c.Analysis.DataDir)
	if err != nil {
		return nil, err
	}
	return src, nil
}
