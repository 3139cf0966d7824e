package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/analysis"
	"github.com/mohamedkhairy/equity-signals/internal/storage"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	publishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_publish_total",
			Help: "Total number of analysis results published",
		},
		[]string{"stream"},
	)

	publishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_publish_errors_total",
			Help: "Total number of analysis result publish errors",
		},
		[]string{"stream", "stage"},
	)

	publishLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "result_publish_latency_seconds",
			Help:    "Publish latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"stream"},
	)
)

// LatestKeyPrefix prefixes the per-symbol latest result key
const LatestKeyPrefix = "analysis:latest:"

// LatestKey returns the key holding the latest result of symbol
func LatestKey(symbol string) string {
	return LatestKeyPrefix + symbol
}

// ResultPublisherConfig holds configuration for the result publisher
type ResultPublisherConfig struct {
	StreamName    string
	LatestTTL     time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultResultPublisherConfig returns default configuration
func DefaultResultPublisherConfig(streamName string) ResultPublisherConfig {
	return ResultPublisherConfig{
		StreamName:    streamName,
		LatestTTL:     24 * time.Hour,
		RetryAttempts: 3,
		RetryDelay:    100 * time.Millisecond,
	}
}

// ResultPublisher appends analysis results to a Redis stream and keeps the
// latest result of each symbol under its own key
type ResultPublisher struct {
	config ResultPublisherConfig
	redis  storage.RedisClient
}

// NewResultPublisher creates a new result publisher
func NewResultPublisher(redis storage.RedisClient, config ResultPublisherConfig) *ResultPublisher {
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 1
	}
	return &ResultPublisher{config: config, redis: redis}
}

// Publish publishes a single result
func (p *ResultPublisher) Publish(ctx context.Context, result *analysis.Result) error {
	return p.PublishBatch(ctx, []*analysis.Result{result})
}

// PublishBatch appends every result to the stream in one pipeline and then
// refreshes the latest key of each symbol
func (p *ResultPublisher) PublishBatch(ctx context.Context, results []*analysis.Result) error {
	startTime := time.Now()

	messages := make([]map[string]interface{}, 0, len(results))
	published := make([]*analysis.Result, 0, len(results))
	for _, result := range results {
		if result == nil {
			continue
		}
		msg, err := streamMessage(result)
		if err != nil {
			publishErrors.WithLabelValues(p.config.StreamName, "marshal").Inc()
			logger.Error("Failed to marshal result",
				logger.ErrorField(err),
				logger.String("symbol", result.Metadata.Ticker),
			)
			continue
		}
		messages = append(messages, msg)
		published = append(published, result)
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.publishWithRetry(ctx, messages); err != nil {
		publishErrors.WithLabelValues(p.config.StreamName, "stream").Add(float64(len(messages)))
		logger.Error("Failed to publish results after retries",
			logger.ErrorField(err),
			logger.String("stream", p.config.StreamName),
			logger.Int("count", len(messages)),
		)
		return err
	}

	var lastErr error
	for _, result := range published {
		if err := p.redis.Set(ctx, LatestKey(result.Metadata.Ticker), result, p.config.LatestTTL); err != nil {
			publishErrors.WithLabelValues(p.config.StreamName, "latest").Inc()
			logger.Warn("Failed to store latest result",
				logger.ErrorField(err),
				logger.String("symbol", result.Metadata.Ticker),
			)
			lastErr = fmt.Errorf("failed to store latest result for %s: %w", result.Metadata.Ticker, err)
		}
	}

	publishTotal.WithLabelValues(p.config.StreamName).Add(float64(len(messages)))
	publishLatency.WithLabelValues(p.config.StreamName).Observe(time.Since(startTime).Seconds())

	logger.Debug("Published results to stream",
		logger.String("stream", p.config.StreamName),
		logger.Int("count", len(messages)),
		logger.Duration("latency", time.Since(startTime)),
	)

	return lastErr
}

func (p *ResultPublisher) publishWithRetry(ctx context.Context, messages []map[string]interface{}) error {
	var err error
	for attempt := 0; attempt < p.config.RetryAttempts; attempt++ {
		err = p.redis.PublishBatchToStream(ctx, p.config.StreamName, messages)
		if err == nil {
			return nil
		}

		if attempt < p.config.RetryAttempts-1 {
			logger.Warn("Failed to publish results, retrying",
				logger.ErrorField(err),
				logger.String("stream", p.config.StreamName),
				logger.Int("attempt", attempt+1),
				logger.Int("count", len(messages)),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.config.RetryDelay * time.Duration(attempt+1)):
			}
		}
	}
	return err
}

// Latest returns the most recently published result of symbol, nil when none is stored
func (p *ResultPublisher) Latest(ctx context.Context, symbol string) (*analysis.Result, error) {
	exists, err := p.redis.Exists(ctx, LatestKey(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to check latest result: %w", err)
	}
	if !exists {
		return nil, nil
	}
	var result analysis.Result
	if err := p.redis.GetJSON(ctx, LatestKey(symbol), &result); err != nil {
		return nil, fmt.Errorf("failed to read latest result: %w", err)
	}
	return &result, nil
}

// streamMessage flattens the headline fields next to the full JSON payload so
// stream consumers can filter without decoding it
func streamMessage(result *analysis.Result) (map[string]interface{}, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"run_id":             result.RunID,
		"symbol":             result.Metadata.Ticker,
		"analysis_date":      result.Metadata.AnalysisDate.Format(time.RFC3339),
		"latest_signal":      result.Signals.LatestSignal.String(),
		"risk_level":         string(result.AttentionFlags.RiskLevel),
		"requires_attention": fmt.Sprintf("%t", result.AttentionFlags.RequiresAttention),
		"result":             string(payload),
	}, nil
}
