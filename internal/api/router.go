package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the HTTP surface settings
type RouterConfig struct {
	AllowedOrigins []string
	RateLimitRPS   int
	// Ready reports whether dependencies are reachable; nil means always ready
	Ready func(ctx context.Context) error
}

// NewRouter registers every route and wraps the router in the middleware chain
func NewRouter(h *AnalysisHandler, cfg RouterConfig) http.Handler {
	router := mux.NewRouter()

	// Runs after route matching so metrics can label by route template
	router.Use(mux.MiddlewareFunc(LoggingMiddleware()))

	v1 := router.PathPrefix("/api/v1").Subrouter()

	// Catalog endpoints
	v1.HandleFunc("/tickers", h.ListTickers).Methods("GET")
	v1.HandleFunc("/tickers/{symbol}", h.GetTicker).Methods("GET")

	// Analysis endpoints
	v1.HandleFunc("/analysis", h.PostAnalysis).Methods("POST")
	v1.HandleFunc("/analysis/{symbol}", h.GetAnalysis).Methods("GET")
	v1.HandleFunc("/analysis/{symbol}/latest", h.GetLatest).Methods("GET")
	v1.HandleFunc("/analysis/{symbol}/series", h.GetSeries).Methods("GET")

	// Health check endpoints
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods("GET")

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.Ready(ctx); err != nil {
				respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}).Methods("GET")

	// Metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	middlewares := ChainMiddleware(
		CORSMiddleware(cfg.AllowedOrigins),
		RequestIDMiddleware(),
		ErrorHandlingMiddleware(),
		RateLimitMiddleware(cfg.RateLimitRPS),
	)

	return middlewares(router)
}
