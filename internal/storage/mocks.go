package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/models"
)

// MockBarSource is an in-memory BarStore for testing
type MockBarSource struct {
	mu       sync.RWMutex
	Bars     map[string][]models.Bar
	GetErr   error
	WriteErr error
}

// NewMockBarSource creates an empty mock source
func NewMockBarSource() *MockBarSource {
	return &MockBarSource{Bars: make(map[string][]models.Bar)}
}

func (m *MockBarSource) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.Bars[symbol]
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}
	var result []models.Bar
	for _, bar := range stored {
		if inRange(bar.Date, start, end) {
			result = append(result, bar)
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrEmptySeries)
	}
	return result, nil
}

func (m *MockBarSource) WriteBars(ctx context.Context, bars []models.Bar) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, bar := range bars {
		m.Bars[bar.Symbol] = append(m.Bars[bar.Symbol], bar)
	}
	for symbol := range m.Bars {
		series := m.Bars[symbol]
		sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	}
	return nil
}

func (m *MockBarSource) ListSymbols(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	symbols := make([]string, 0, len(m.Bars))
	for s := range m.Bars {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (m *MockBarSource) Close() error {
	return nil
}

// MockRedisClient is a mock implementation of RedisClient for testing
type MockRedisClient struct {
	mu         sync.Mutex
	Data       map[string]string
	TTLs       map[string]time.Duration
	StreamData []StreamMessage
	PublishErr error
	GetErr     error
	SetErr     error

	// PublishFailures fails that many stream publishes before succeeding
	PublishFailures int
	PublishCalls    int
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		Data: make(map[string]string),
		TTLs: make(map[string]time.Duration),
	}
}

func (m *MockRedisClient) publishErr() error {
	m.PublishCalls++
	if m.PublishErr != nil {
		return m.PublishErr
	}
	if m.PublishFailures > 0 {
		m.PublishFailures--
		return fmt.Errorf("mock publish failure")
	}
	return nil
}

func (m *MockRedisClient) PublishBatchToStream(ctx context.Context, stream string, messages []map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.publishErr(); err != nil {
		return err
	}
	for _, msg := range messages {
		m.StreamData = append(m.StreamData, StreamMessage{
			ID:     fmt.Sprintf("%d-0", len(m.StreamData)+1),
			Stream: stream,
			Values: msg,
		})
	}
	return nil
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	// Marshal to JSON like the real implementation
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.Data[key] = string(jsonData)
	m.TTLs[key] = ttl
	return nil
}

func (m *MockRedisClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return m.GetErr
	}
	value, exists := m.Data[key]
	if !exists {
		return nil // Return nil if key doesn't exist (like real implementation)
	}
	return json.Unmarshal([]byte(value), dest)
}

func (m *MockRedisClient) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.Data[key]
	return exists, nil
}

func (m *MockRedisClient) Close() error {
	return nil
}
