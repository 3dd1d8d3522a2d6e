package probe

import (
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"deal_analyzer/pkg/httpx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Readiness is what /ready reports next to the application info.
type Readiness struct {
	Ready   bool           `json:"ready"`
	Details map[string]any `json:"details,omitempty"`
}

type ReadinessFunc func() Readiness

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type readyResponse struct {
	Options
	Readiness
}

type Server struct {
	listenAddress string
	options       Options
	ready         ReadinessFunc
}

// NewServer serves /healthz and /ready. A nil ready func always reports ready.
func NewServer(
	listenAddress string,
	options Options,
	ready ReadinessFunc,
) Server {
	if ready == nil {
		ready = func() Readiness { return Readiness{Ready: true} }
	}

	return Server{
		listenAddress: listenAddress,
		options:       options,
		ready:         ready,
	}
}

func (s Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	return mux
}

func (s Server) Run(ctx context.Context) error {
	if err := httpx.Serve(ctx, "probe", s.listenAddress, s.Handler()); err != nil {
		return fmt.Errorf("httpx.Serve: %w", err)
	}

	return nil
}

func (s Server) handlerHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.options)
}

func (s Server) handlerReady(w http.ResponseWriter, _ *http.Request) {
	readiness := s.ready()

	status := http.StatusOK
	if !readiness.Ready {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, readyResponse{
		Options:   s.options,
		Readiness: readiness,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck
}
