package control

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"viralfeed/domain"
)

var ErrAlreadyRunning = errors.New("already running")

// TryListen tries to bind the control address. If it's already in use, we
// assume another instance is running.
func TryListen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return ln, nil
}

type Server struct {
	runner domain.Runner
}

func NewServer(runner domain.Runner) *Server { return &Server{runner: runner} }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/set-aggregate-interval":
		s.handleSetInterval(w, r, s.runner.SetAggregateInterval, func() time.Duration {
			return s.runner.Status().AggregateInterval
		})
	case r.Method == http.MethodPost && r.URL.Path == "/set-process-interval":
		s.handleSetInterval(w, r, s.runner.SetProcessInterval, func() time.Duration {
			return s.runner.Status().ProcessInterval
		})
	case r.Method == http.MethodGet && r.URL.Path == "/status":
		s.handleStatus(w)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleSetInterval(w http.ResponseWriter, r *http.Request, set func(time.Duration), current func() time.Duration) {
	var req struct {
		Duration string `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	d, err := time.ParseDuration(req.Duration)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid duration: %v", err), http.StatusBadRequest)
		return
	}
	old := current()
	set(d)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "old": old.String(), "new": d.String()})
}

func (s *Server) handleStatus(w http.ResponseWriter) {
	st := s.runner.Status()
	_ = json.NewEncoder(w).Encode(StatusResponse{
		AggregateInterval: st.AggregateInterval.String(),
		ProcessInterval:   st.ProcessInterval.String(),
		LastAggregate:     formatRunTime(st.LastAggregate),
		LastProcess:       formatRunTime(st.LastProcess),
	})
}

type StatusResponse struct {
	AggregateInterval string `json:"aggregate_interval"`
	ProcessInterval   string `json:"process_interval"`
	LastAggregate     string `json:"last_aggregate"`
	LastProcess       string `json:"last_process"`
}

func formatRunTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(time.RFC3339)
}
