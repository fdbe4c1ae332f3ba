package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hamed0406/sitecheck/internal/httpapi/middleware"
	"github.com/hamed0406/sitecheck/internal/metrics"
	"github.com/hamed0406/sitecheck/internal/stats"
)

// Server is the optional read-only status API: running statistics,
// the latest result per target, and Prometheus metrics.
type Server struct {
	Logger  *zap.Logger
	Stats   *stats.Aggregator
	Metrics *metrics.Metrics

	RatePerMin int
	RateBurst  int
}

func NewServer(l *zap.Logger, agg *stats.Aggregator, m *metrics.Metrics) *Server {
	return &Server{
		Logger:     l,
		Stats:      agg,
		Metrics:    m,
		RatePerMin: 120,
		RateBurst:  60,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RateLimit(s.RatePerMin, s.RateBurst))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/stats", s.handleStats)
	r.Get("/api/results/latest", s.handleLatest)

	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(s.Metrics.Registry(), promhttp.HandlerOpts{}))
	}

	return r
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.Stats.Snapshot())
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.Stats.Latest())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("api_encode_error", zap.Error(err))
	}
}
