package storage

import (
	"context"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/models"
)

// BarSource loads daily bars for a symbol
type BarSource interface {
	// GetBars returns bars with start <= date <= end in ascending date order.
	// A zero start or end leaves that side unbounded.
	GetBars(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error)

	// Close releases the underlying resources
	Close() error
}

// BarStore is a BarSource that can also persist bars
type BarStore interface {
	BarSource

	// WriteBars upserts bars keyed by (symbol, date)
	WriteBars(ctx context.Context, bars []models.Bar) error

	// ListSymbols returns every symbol with stored bars
	ListSymbols(ctx context.Context) ([]string, error)
}

// RedisClient defines the interface for Redis operations
type RedisClient interface {
	// Stream operations
	PublishBatchToStream(ctx context.Context, stream string, messages []map[string]interface{}) error

	// Key-value operations
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error
	Exists(ctx context.Context, key string) (bool, error)

	// Close closes the Redis connection
	Close() error
}

// StreamMessage represents a message written to a Redis stream
type StreamMessage struct {
	ID     string
	Stream string
	Values map[string]interface{}
}

// inRange reports whether t lies in [start, end]; zero bounds are open
func inRange(t, start, end time.Time) bool {
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && t.After(end) {
		return false
	}
	return true
}
