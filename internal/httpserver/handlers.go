package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/skillcoder/clusterwatch/internal/infra/pinger"
	"github.com/skillcoder/clusterwatch/internal/logic/agent"
	"github.com/skillcoder/clusterwatch/internal/logic/lifecycle"
)

type statusResponse struct {
	State     string                   `json:"state"`
	Uptime    string                   `json:"uptime"`
	StartTime time.Time                `json:"startTime"`
	UptimeSec float64                  `json:"uptimeSeconds"`
	Pingers   map[string]pinger.Status `json:"pingers"`
	Agent     agent.Status             `json:"agent"`
}

type watchesResponse struct {
	Watches []lifecycle.WatchInfo `json:"watches"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	if !s.appState.IsHealthy() {
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if !s.appState.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	uptime := s.appState.GetUptime()

	s.writeJSON(w, r, statusResponse{
		State:     string(s.appState.GetState()),
		Uptime:    uptime.String(),
		StartTime: s.appState.GetStartTime(),
		UptimeSec: uptime.Seconds(),
		Pingers:   s.appState.PingerStatuses(),
		Agent:     s.agent.Status(),
	})
}

func (s *Server) handleWatches(w http.ResponseWriter, r *http.Request) {
	watches := s.watches.Watches()
	if watches == nil {
		watches = []lifecycle.WatchInfo{}
	}

	s.writeJSON(w, r, watchesResponse{Watches: watches})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to encode response",
			"path", r.URL.Path,
			"reason", err,
		)
	}
}
