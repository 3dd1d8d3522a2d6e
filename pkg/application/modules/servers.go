package modules

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"deal_analyzer/pkg/metrics"
	"deal_analyzer/pkg/probe"
)

type server interface {
	Run(ctx context.Context) error
}

// MetricServer exposes Prometheus metrics. A nil Gatherer serves the default
// registry.
type MetricServer struct {
	ListenAddress string
	Gatherer      prometheus.Gatherer
}

func (m MetricServer) Run(ctx context.Context, g *errgroup.Group) {
	if m.ListenAddress == "" {
		return
	}

	goServe(ctx, g, "prometheusServer", metrics.NewPrometheusServer(m.ListenAddress, m.Gatherer))
}

// ProbeServer exposes liveness and readiness for orchestrators.
type ProbeServer struct {
	Name          string
	Version       string
	ListenAddress string
	Ready         probe.ReadinessFunc
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) {
	if p.ListenAddress == "" {
		return
	}

	goServe(ctx, g, "probeServer", probe.NewServer(
		p.ListenAddress,
		probe.Options{
			Name:    p.Name,
			Version: p.Version,
		},
		p.Ready,
	))
}

// goServe runs s in g until ctx is done.
func goServe(ctx context.Context, g *errgroup.Group, name string, s server) {
	g.Go(func() error {
		if err := s.Run(ctx); err != nil {
			return fmt.Errorf("%s.Run: %w", name, err)
		}

		return nil
	})
}
