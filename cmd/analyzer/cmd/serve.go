package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mohamedkhairy/equity-signals/internal/analysis"
	"github.com/mohamedkhairy/equity-signals/internal/api"
	"github.com/mohamedkhairy/equity-signals/internal/pubsub"
	"github.com/mohamedkhairy/equity-signals/internal/rules"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves analyses over HTTP from the configured bar source. When publishing
is enabled the latest result of each symbol is also served from Redis.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default API_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort > 0 {
		cfg.API.Port = servePort
	}

	logger.Info("Starting analysis API service",
		logger.Int("port", cfg.API.Port),
		logger.String("data_source", cfg.Analysis.DataSource),
		logger.Int("rate_limit_rps", cfg.API.RateLimitRPS),
	)

	source, err := openSource(cfg)
	if err != nil {
		logger.CountError("api", "source", err)
		return err
	}
	defer source.Close()

	evaluator, err := rules.LoadEvaluator(cfg.Analysis.RulesFile)
	if err != nil {
		return fmt.Errorf("failed to load attention rules: %w", err)
	}
	engine := analysis.NewEngine(engineConfig(cfg)).WithRules(evaluator)

	// A nil sink disables the latest endpoint
	var sink api.ResultSink
	if cfg.Publish.Enabled {
		redisClient, err := pubsub.NewRedisClient(cfg.Redis, cfg.Publish.MaxLen)
		if err != nil {
			logger.CountError("api", "redis", err)
			return err
		}
		defer redisClient.Close()

		pc := pubsub.DefaultResultPublisherConfig(cfg.Publish.Stream)
		pc.LatestTTL = cfg.Publish.LatestTTL
		sink = pubsub.NewResultPublisher(redisClient, pc)
	}

	routerConfig := api.RouterConfig{
		AllowedOrigins: cfg.API.AllowedOrigins,
		RateLimitRPS:   cfg.API.RateLimitRPS,
	}
	if pinger, ok := source.(interface{ Ping(context.Context) error }); ok {
		routerConfig.Ready = pinger.Ping
	}

	handler := api.NewRouter(api.NewAnalysisHandler(engine, source, cfg.Analysis.Benchmark, sink), routerConfig)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      handler,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server",
			logger.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
	case err, ok := <-errCh:
		if ok {
			logger.CountError("api", "listen", err)
			return err
		}
	}
	logger.Info("Shutting down analysis API service")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Error shutting down HTTP server",
			logger.ErrorField(err),
		)
		return err
	}

	logger.Info("Analysis API service stopped")
	return nil
}
