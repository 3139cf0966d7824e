package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mohamedkhairy/equity-signals/internal/config"
	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date,Open,High,Low,Close,Adj Close,Volume
2024-01-04,101,103,100,102,101.5,1200
2024-01-02,100,101,99,100.5,100,1000
2024-01-03 00:00:00-05:00,100.5,102,100,101,100.6,1100
2024-01-05,null,null,null,null,null,0
2024-01-08,102,104,101,103,102.6,1.3e3
`

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestReadBarsCSV(t *testing.T) {
	bars, err := ReadBarsCSV(strings.NewReader(sampleCSV), "RY.TO")
	require.NoError(t, err)
	require.Len(t, bars, 4)

	assert.Equal(t, day(2), bars[0].Date)
	assert.Equal(t, day(3), bars[1].Date)
	assert.Equal(t, day(4), bars[2].Date)
	assert.Equal(t, int64(1300), bars[3].Volume)
	assert.Equal(t, "RY.TO", bars[0].Symbol)
	assert.Equal(t, 102.0, bars[2].Close)
	assert.NoError(t, models.ValidateBars(bars))
}

func TestReadBarsCSV_MissingColumn(t *testing.T) {
	_, err := ReadBarsCSV(strings.NewReader("Date,Open,High,Low,Close\n2024-01-02,1,1,1,1\n"), "X")
	assert.ErrorContains(t, err, "volume")
}

func TestCSVBarSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "RY.TO.csv"), []byte(sampleCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	src, err := NewCSVBarSource(dir)
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()

	bars, err := src.GetBars(ctx, "RY.TO", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, bars, 4)

	bars, err = src.GetBars(ctx, "RY.TO", day(3), day(4))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, day(3), bars[0].Date)

	_, err = src.GetBars(ctx, "RY.TO", day(20), day(25))
	assert.ErrorIs(t, err, models.ErrEmptySeries)

	_, err = src.GetBars(ctx, "TD.TO", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, ErrSymbolNotFound)

	symbols, err := src.ListSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"RY.TO"}, symbols)
}

func TestNewCSVBarSource_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.csv")
	require.NoError(t, os.WriteFile(file, []byte(sampleCSV), 0o644))

	_, err := NewCSVBarSource(file)
	assert.Error(t, err)

	_, err = NewCSVBarSource(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestBarsQuery(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		wantWhere string
		wantArgs  int
	}{
		{"unbounded", time.Time{}, time.Time{}, "WHERE symbol = $1 ORDER BY", 1},
		{"start only", day(2), time.Time{}, "AND date >= $2 ORDER BY", 2},
		{"end only", time.Time{}, day(5), "AND date <= $2 ORDER BY", 2},
		{"both", day(2), day(5), "AND date >= $2 AND date <= $3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := barsQuery("RY.TO", tt.start, tt.end)
			assert.Contains(t, query, tt.wantWhere)
			assert.Len(t, args, tt.wantArgs)
			assert.Equal(t, "RY.TO", args[0])
		})
	}
}

func TestConnString(t *testing.T) {
	s := ConnString(config.DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Database: "equity", SSLMode: "disable",
	})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=equity sslmode=disable", s)
}

func TestNewPostgresBarStoreFromDB_Defaults(t *testing.T) {
	store := NewPostgresBarStoreFromDB(nil, WriteConfig{})
	assert.Equal(t, DefaultWriteConfig().BatchSize, store.writeConfig.BatchSize)
	assert.Equal(t, 1, store.writeConfig.MaxRetries)
}

func TestMockBarSource(t *testing.T) {
	src := NewMockBarSource()
	ctx := context.Background()

	require.NoError(t, src.WriteBars(ctx, []models.Bar{
		{Symbol: "TD.TO", Date: day(3), Open: 1, High: 1, Low: 1, Close: 1},
		{Symbol: "TD.TO", Date: day(2), Open: 1, High: 1, Low: 1, Close: 1},
	}))

	bars, err := src.GetBars(ctx, "TD.TO", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, day(2), bars[0].Date)

	_, err = src.GetBars(ctx, "RY.TO", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, ErrSymbolNotFound)

	src.GetErr = errors.New("down")
	_, err = src.GetBars(ctx, "TD.TO", time.Time{}, time.Time{})
	assert.EqualError(t, err, "down")
}
