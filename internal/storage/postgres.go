package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/mohamedkhairy/equity-signals/internal/config"
	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	barQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bar_store_queries_total",
			Help: "Total number of bar store operations",
		},
		[]string{"operation", "status"},
	)

	barQueryLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bar_store_latency_seconds",
			Help:    "Bar store operation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)
)

// Schema creates the daily_bars table
const Schema = `
CREATE TABLE IF NOT EXISTS daily_bars (
	symbol     TEXT             NOT NULL,
	date       DATE             NOT NULL,
	open       DOUBLE PRECISION NOT NULL,
	high       DOUBLE PRECISION NOT NULL,
	low        DOUBLE PRECISION NOT NULL,
	close      DOUBLE PRECISION NOT NULL,
	volume     BIGINT           NOT NULL,
	PRIMARY KEY (symbol, date)
)`

// WriteConfig holds configuration for write operations
type WriteConfig struct {
	BatchSize  int
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultWriteConfig returns default configuration
func DefaultWriteConfig() WriteConfig {
	return WriteConfig{
		BatchSize:  500,
		MaxRetries: 3,
		RetryDelay: 100 * time.Millisecond,
	}
}

// PostgresBarStore implements BarStore over the daily_bars table
type PostgresBarStore struct {
	db          *sql.DB
	writeConfig WriteConfig
}

// ConnString builds a lib/pq connection string
func ConnString(dbConfig config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Database,
		dbConfig.SSLMode,
	)
}

// NewPostgresBarStore opens a connection pool and ensures the schema exists
func NewPostgresBarStore(dbConfig config.DatabaseConfig, writeConfig WriteConfig) (*PostgresBarStore, error) {
	db, err := sql.Open("postgres", ConnString(dbConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(dbConfig.MaxConnections)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info("Connected to PostgreSQL",
		logger.String("host", dbConfig.Host),
		logger.Int("port", dbConfig.Port),
		logger.String("database", dbConfig.Database),
	)

	return NewPostgresBarStoreFromDB(db, writeConfig), nil
}

// NewPostgresBarStoreFromDB wraps an existing pool
func NewPostgresBarStoreFromDB(db *sql.DB, writeConfig WriteConfig) *PostgresBarStore {
	if writeConfig.BatchSize <= 0 {
		writeConfig.BatchSize = DefaultWriteConfig().BatchSize
	}
	if writeConfig.MaxRetries <= 0 {
		writeConfig.MaxRetries = 1
	}
	return &PostgresBarStore{db: db, writeConfig: writeConfig}
}

// Ping checks database connectivity
func (s *PostgresBarStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetBars retrieves bars for a symbol within a date range
func (s *PostgresBarStore) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error) {
	startTime := time.Now()
	defer func() {
		barQueryLatency.WithLabelValues("get").Observe(time.Since(startTime).Seconds())
	}()

	query, args := barsQuery(symbol, start, end)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		barQueryTotal.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("failed to query bars: %w", err)
	}
	defer rows.Close()

	var bars []models.Bar
	for rows.Next() {
		var bar models.Bar
		if err := rows.Scan(
			&bar.Symbol,
			&bar.Date,
			&bar.Open,
			&bar.High,
			&bar.Low,
			&bar.Close,
			&bar.Volume,
		); err != nil {
			barQueryTotal.WithLabelValues("get", "error").Inc()
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		barQueryTotal.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	barQueryTotal.WithLabelValues("get", "success").Inc()
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrEmptySeries)
	}
	return bars, nil
}

// barsQuery builds the range query; zero bounds are left out
func barsQuery(symbol string, start, end time.Time) (string, []interface{}) {
	var b strings.Builder
	b.WriteString("SELECT symbol, date, open, high, low, close, volume FROM daily_bars WHERE symbol = $1")
	args := []interface{}{symbol}
	if !start.IsZero() {
		args = append(args, start)
		fmt.Fprintf(&b, " AND date >= $%d", len(args))
	}
	if !end.IsZero() {
		args = append(args, end)
		fmt.Fprintf(&b, " AND date <= $%d", len(args))
	}
	b.WriteString(" ORDER BY date ASC")
	return b.String(), args
}

// ListSymbols returns every symbol with stored bars
func (s *PostgresBarStore) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT symbol FROM daily_bars ORDER BY symbol")
	if err != nil {
		barQueryTotal.WithLabelValues("list", "error").Inc()
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	barQueryTotal.WithLabelValues("list", "success").Inc()
	return symbols, nil
}

// WriteBars upserts bars in batches, retrying each batch with exponential backoff
func (s *PostgresBarStore) WriteBars(ctx context.Context, bars []models.Bar) error {
	valid := make([]models.Bar, 0, len(bars))
	for i := range bars {
		if bars[i].Symbol == "" {
			logger.Warn("Bar without symbol, skipping", logger.Int("index", i))
			continue
		}
		if err := bars[i].Validate(); err != nil {
			logger.Warn("Invalid bar, skipping",
				logger.ErrorField(err),
				logger.String("symbol", bars[i].Symbol),
			)
			continue
		}
		valid = append(valid, bars[i])
	}

	for start := 0; start < len(valid); start += s.writeConfig.BatchSize {
		end := start + s.writeConfig.BatchSize
		if end > len(valid) {
			end = len(valid)
		}
		if err := s.writeBatchWithRetry(ctx, valid[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresBarStore) writeBatchWithRetry(ctx context.Context, batch []models.Bar) error {
	startTime := time.Now()
	defer func() {
		barQueryLatency.WithLabelValues("write").Observe(time.Since(startTime).Seconds())
	}()

	var err error
	for attempt := 0; attempt < s.writeConfig.MaxRetries; attempt++ {
		err = s.insertBars(ctx, batch)
		if err == nil {
			barQueryTotal.WithLabelValues("write", "success").Inc()
			return nil
		}

		if attempt < s.writeConfig.MaxRetries-1 {
			delay := s.writeConfig.RetryDelay * time.Duration(1<<uint(attempt)) // Exponential backoff
			logger.Warn("Failed to write bars, retrying",
				logger.ErrorField(err),
				logger.Int("attempt", attempt+1),
				logger.Int("bars_count", len(batch)),
				logger.Duration("delay", delay),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	barQueryTotal.WithLabelValues("write", "error").Inc()
	return fmt.Errorf("failed to write %d bars after %d attempts: %w", len(batch), s.writeConfig.MaxRetries, err)
}

// insertBars upserts one batch inside a transaction
func (s *PostgresBarStore) insertBars(ctx context.Context, batch []models.Bar) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_bars (symbol, date, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, date) DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, bar := range batch {
		if _, err := stmt.ExecContext(ctx,
			bar.Symbol,
			bar.Date,
			bar.Open,
			bar.High,
			bar.Low,
			bar.Close,
			bar.Volume,
		); err != nil {
			return fmt.Errorf("failed to insert bar %s %s: %w", bar.Symbol, bar.Date.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *PostgresBarStore) Close() error {
	return s.db.Close()
}
