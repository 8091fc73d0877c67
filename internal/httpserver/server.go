package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skillcoder/clusterwatch/internal/infra/shutdown"
)

// Server serves the health, status and watch inspection endpoints.
type Server struct {
	endpoint
	appState appstater
	watches  watchLister
	agent    agentStatuser
}

var _ shutdown.Shutdowner = (*Server)(nil)

func New(
	logger *slog.Logger,
	appState appstater,
	watches watchLister,
	agent agentStatuser,
	port string,
) *Server {
	if port == "" {
		port = defaultPort
	}

	return &Server{
		endpoint: newEndpoint(logger, "http-server", port),
		appState: appState,
		watches:  watches,
		agent:    agent,
	}
}

// Handler returns the routed endpoints.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Route("/-", func(r chi.Router) {
		r.Get("/healthz", s.handleHealthz)
		r.Get("/readyz", s.handleReadyz)
		r.Get("/status", s.handleStatus)
		r.Get("/watches", s.handleWatches)
	})

	return router
}

func (s *Server) Start(ctx context.Context) error {
	return s.serve(ctx, s.Handler())
}
