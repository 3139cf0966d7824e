package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
)

// ErrSymbolNotFound is returned when a source has no data for a symbol
var ErrSymbolNotFound = errors.New("symbol not found")

var csvColumns = []string{"date", "open", "high", "low", "close", "volume"}

// CSVBarSource reads one <SYMBOL>.csv file per ticker from a directory.
// Files carry a header with at least Date,Open,High,Low,Close,Volume; extra
// columns such as Adj Close are ignored.
type CSVBarSource struct {
	dir string
}

// NewCSVBarSource creates a CSV source rooted at dir
func NewCSVBarSource(dir string) (*CSVBarSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}
	return &CSVBarSource{dir: dir}, nil
}

// Path returns the file backing symbol
func (s *CSVBarSource) Path(symbol string) string {
	return filepath.Join(s.dir, symbol+".csv")
}

// GetBars reads, filters and sorts the bars of symbol
func (s *CSVBarSource) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.Path(symbol))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.Path(symbol), err)
	}
	defer file.Close()

	bars, err := ReadBarsCSV(file, symbol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path(symbol), err)
	}

	filtered := bars[:0]
	for _, bar := range bars {
		if inRange(bar.Date, start, end) {
			filtered = append(filtered, bar)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, models.ErrEmptySeries)
	}
	return filtered, nil
}

// ListSymbols returns the symbols with a CSV file in the directory
func (s *CSVBarSource) ListSymbols(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}
	var symbols []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		symbols = append(symbols, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(symbols)
	return symbols, nil
}

// Close is a no-op
func (s *CSVBarSource) Close() error {
	return nil
}

// ReadBarsCSV parses daily bars from r. Rows with missing or non-numeric prices
// are skipped; the result is sorted by date.
func ReadBarsCSV(r io.Reader, symbol string) ([]models.Bar, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var bars []models.Bar
	skipped := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bar, ok := parseRecord(record, idx, symbol)
		if !ok {
			skipped++
			continue
		}
		bars = append(bars, bar)
	}

	if skipped > 0 {
		logger.Debug("Skipped unparseable CSV rows",
			logger.String("symbol", symbol),
			logger.Int("skipped", skipped),
		)
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range csvColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return idx, nil
}

func parseRecord(record []string, idx map[string]int, symbol string) (models.Bar, bool) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, ok := parseDate(field("date"))
	if !ok {
		return models.Bar{}, false
	}

	var prices [4]float64
	for i, col := range []string{"open", "high", "low", "close"} {
		v, err := strconv.ParseFloat(field(col), 64)
		if err != nil {
			return models.Bar{}, false
		}
		prices[i] = v
	}

	volume, err := strconv.ParseInt(field("volume"), 10, 64)
	if err != nil {
		// Some exports write volume as a float
		f, ferr := strconv.ParseFloat(field("volume"), 64)
		if ferr != nil {
			return models.Bar{}, false
		}
		volume = int64(f)
	}

	return models.Bar{
		Symbol: symbol,
		Date:   date,
		Open:   prices[0],
		High:   prices[1],
		Low:    prices[2],
		Close:  prices[3],
		Volume: volume,
	}, true
}

// parseDate accepts a plain date or a timestamp whose first ten characters are
// the date; the time of day is dropped.
func parseDate(s string) (time.Time, bool) {
	if len(s) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
