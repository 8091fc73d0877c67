package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillcoder/clusterwatch/internal/infra/shutdown"
)

// MetricsServer exposes /metrics on its own port.
type MetricsServer struct {
	endpoint
	gatherer prometheus.Gatherer
}

var _ shutdown.Shutdowner = (*MetricsServer)(nil)

func NewMetricsServer(logger *slog.Logger, port string) *MetricsServer {
	if port == "" {
		port = defaultMetricsPort
	}

	return &MetricsServer{
		endpoint: newEndpoint(logger, "metrics-server", port),
		gatherer: prometheus.DefaultGatherer,
	}
}

// PingerReadyCritical keeps a missing metrics endpoint out of readiness.
func (s *MetricsServer) PingerReadyCritical() bool {
	return false
}

func (s *MetricsServer) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{
		ErrorLog: slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}))

	return router
}

func (s *MetricsServer) Start(ctx context.Context) error {
	return s.serve(ctx, s.Handler())
}
