package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mohamedkhairy/equity-signals/internal/analysis"
	"github.com/mohamedkhairy/equity-signals/internal/models"
	"github.com/mohamedkhairy/equity-signals/internal/storage"
	"github.com/mohamedkhairy/equity-signals/pkg/logger"
)

const dateLayout = "2006-01-02"

// maxBodyBytes bounds POSTed bar payloads
const maxBodyBytes = 8 << 20

// Analyzer runs one analysis
type Analyzer interface {
	Analyze(req analysis.Request) (*analysis.Result, error)
	Annotate(bars []models.Bar) (*analysis.AnnotatedSeries, error)
}

// ResultSink publishes results and serves the latest one per symbol
type ResultSink interface {
	Publish(ctx context.Context, result *analysis.Result) error
	Latest(ctx context.Context, symbol string) (*analysis.Result, error)
}

// AnalysisHandler handles analysis endpoints
type AnalysisHandler struct {
	engine    Analyzer
	source    analysis.BarSource
	benchmark string
	sink      ResultSink
}

// NewAnalysisHandler creates a new analysis handler. source and sink may be
// nil: stored-data endpoints then answer 503.
func NewAnalysisHandler(engine Analyzer, source analysis.BarSource, benchmark string, sink ResultSink) *AnalysisHandler {
	return &AnalysisHandler{
		engine:    engine,
		source:    source,
		benchmark: benchmark,
		sink:      sink,
	}
}

// AnalyzeRequest is the body of POST /api/v1/analysis
type AnalyzeRequest struct {
	Symbol          string       `json:"symbol"`
	Bars            []models.Bar `json:"bars"`
	BenchmarkSymbol string       `json:"benchmark_symbol,omitempty"`
	Benchmark       []models.Bar `json:"benchmark,omitempty"`
}

// ListTickers handles GET /api/v1/tickers
func (h *AnalysisHandler) ListTickers(w http.ResponseWriter, r *http.Request) {
	tickers := analysis.SupportedTickers()
	infos := make([]analysis.TickerInfo, 0, len(tickers))
	for _, t := range tickers {
		infos = append(infos, analysis.LookupTicker(t))
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tickers":   infos,
		"count":     len(infos),
		"benchmark": h.benchmark,
	})
}

// GetTicker handles GET /api/v1/tickers/{symbol}
func (h *AnalysisHandler) GetTicker(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, analysis.LookupTicker(mux.Vars(r)["symbol"]))
}

// GetAnalysis handles GET /api/v1/analysis/{symbol}?start=&end=&benchmark=&publish=
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		respondWithError(w, http.StatusServiceUnavailable, "No bar source configured")
		return
	}
	symbol := mux.Vars(r)["symbol"]
	start, end, err := parseRange(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	bars, err := h.source.GetBars(r.Context(), symbol, start, end)
	if err != nil {
		h.fail(w, r, symbol, err)
		return
	}

	req := analysis.Request{Symbol: symbol, Bars: bars}
	benchmark := h.benchmark
	if q := r.URL.Query().Get("benchmark"); q != "" {
		benchmark = q
	}
	if benchmark != "" && benchmark != symbol {
		bm, err := h.source.GetBars(r.Context(), benchmark, start, end)
		if err != nil {
			logger.WithContext(r.Context()).Warn("Benchmark unavailable, relative metrics disabled",
				logger.String("benchmark", benchmark),
				logger.ErrorField(err),
			)
		} else {
			req.Benchmark = bm
			req.BenchmarkSymbol = benchmark
		}
	}

	result, err := h.engine.Analyze(req)
	if err != nil {
		h.fail(w, r, symbol, err)
		return
	}

	if publish, _ := strconv.ParseBool(r.URL.Query().Get("publish")); publish {
		h.publish(r.Context(), result)
	}

	respondWithJSON(w, http.StatusOK, result)
}

// PostAnalysis handles POST /api/v1/analysis with bars in the body
func (h *AnalysisHandler) PostAnalysis(w http.ResponseWriter, r *http.Request) {
	var body AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	for i := range body.Bars {
		if body.Bars[i].Symbol == "" {
			body.Bars[i].Symbol = body.Symbol
		}
	}

	result, err := h.engine.Analyze(analysis.Request{
		Symbol:          body.Symbol,
		Bars:            body.Bars,
		BenchmarkSymbol: body.BenchmarkSymbol,
		Benchmark:       body.Benchmark,
	})
	if err != nil {
		h.fail(w, r, body.Symbol, err)
		return
	}

	if publish, _ := strconv.ParseBool(r.URL.Query().Get("publish")); publish {
		h.publish(r.Context(), result)
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetLatest handles GET /api/v1/analysis/{symbol}/latest
func (h *AnalysisHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	if h.sink == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Result publishing is disabled")
		return
	}
	symbol := mux.Vars(r)["symbol"]
	result, err := h.sink.Latest(r.Context(), symbol)
	if err != nil {
		h.fail(w, r, symbol, err)
		return
	}
	if result == nil {
		respondWithError(w, http.StatusNotFound, "No published analysis for "+symbol)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// SeriesResponse is the per-bar view used by charting clients. Undefined
// values are null.
type SeriesResponse struct {
	Symbol  string                `json:"symbol"`
	Dates   []string              `json:"dates"`
	Close   []float64             `json:"close"`
	Volume  []int64               `json:"volume"`
	Columns map[string][]*float64 `json:"columns"`
	Signals map[string][]int      `json:"signals"`
	Regime  []int                 `json:"volatility_regime"`
	Cluster []bool                `json:"volatility_cluster"`
	Squeeze []bool                `json:"bollinger_squeeze"`
}

// GetSeries handles GET /api/v1/analysis/{symbol}/series?start=&end=
func (h *AnalysisHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		respondWithError(w, http.StatusServiceUnavailable, "No bar source configured")
		return
	}
	symbol := mux.Vars(r)["symbol"]
	start, end, err := parseRange(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	bars, err := h.source.GetBars(r.Context(), symbol, start, end)
	if err != nil {
		h.fail(w, r, symbol, err)
		return
	}
	series, err := h.engine.Annotate(bars)
	if err != nil {
		h.fail(w, r, symbol, err)
		return
	}

	respondWithJSON(w, http.StatusOK, seriesResponse(symbol, series))
}

func seriesResponse(symbol string, s *analysis.AnnotatedSeries) SeriesResponse {
	n := s.Len()
	resp := SeriesResponse{
		Symbol:  symbol,
		Dates:   make([]string, n),
		Close:   models.Closes(s.Bars),
		Volume:  make([]int64, n),
		Columns: make(map[string][]*float64),
		Signals: make(map[string][]int),
		Regime:  make([]int, n),
		Cluster: s.Cluster,
		Squeeze: s.Squeeze,
	}
	for i, bar := range s.Bars {
		resp.Dates[i] = bar.Date.Format(dateLayout)
		resp.Volume[i] = bar.Volume
	}
	for _, name := range s.ColumnNames() {
		col := s.Column(name)
		out := make([]*float64, len(col))
		for i := range col {
			if !math.IsNaN(col[i]) && !math.IsInf(col[i], 0) {
				v := col[i]
				out[i] = &v
			}
		}
		resp.Columns[name] = out
	}
	for name, sig := range map[string][]models.Signal{
		"rsi":       s.Signals.RSI,
		"macd":      s.Signals.MACD,
		"bollinger": s.Signals.Bollinger,
		"ma":        s.Signals.MA,
		"volume":    s.Signals.Volume,
		"composite": s.Signals.Composite,
	} {
		out := make([]int, len(sig))
		for i, v := range sig {
			out[i] = int(v)
		}
		resp.Signals[name] = out
	}
	for i, reg := range s.Regime {
		resp.Regime[i] = int(reg)
	}
	return resp
}

func (h *AnalysisHandler) publish(ctx context.Context, result *analysis.Result) {
	if h.sink == nil {
		return
	}
	if err := h.sink.Publish(ctx, result); err != nil {
		// The response still carries the result
		logger.WithContext(ctx).Warn("Failed to publish result",
			logger.String("symbol", result.Metadata.Ticker),
			logger.ErrorField(err),
		)
	}
}

func (h *AnalysisHandler) fail(w http.ResponseWriter, r *http.Request, symbol string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.ErrorsTotal.WithLabelValues("api", "analysis").Inc()
		logger.WithContext(r.Context()).Error("Analysis request failed",
			logger.String("symbol", symbol),
			logger.ErrorField(err),
		)
		respondWithError(w, code, "Analysis failed")
		return
	}
	respondWithError(w, code, err.Error())
}

// statusFor maps sentinel errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrSymbolNotFound), errors.Is(err, models.ErrEmptySeries):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidSymbol),
		errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, models.ErrInvalidTimestamp),
		errors.Is(err, models.ErrInvalidBar),
		errors.Is(err, models.ErrInvalidVolume),
		errors.Is(err, models.ErrNonMonotonicDates):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// parseRange reads the optional start and end query dates
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	var start, end time.Time
	q := r.URL.Query()
	if s := q.Get("start"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", s)
		}
		start = t
	}
	if s := q.Get("end"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", s)
		}
		end = t
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return start, end, fmt.Errorf("start date %s is after end date %s", start.Format(dateLayout), end.Format(dateLayout))
	}
	return start, end, nil
}
