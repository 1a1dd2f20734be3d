// Package observability bundles Prometheus metrics for the routing solver.
package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SolverCollector bundles Prometheus metrics for a routing solver instance.
// A nil collector is valid and records nothing, so instrumentation stays
// optional.
type SolverCollector struct {
	gatherer prometheus.Gatherer

	Iterations   prometheus.Counter
	Rips         prometheus.Counter
	RoutesSolved prometheus.Counter
	Reopened     prometheus.Counter
	QueueDepth   prometheus.Gauge
}

// NewSolverCollector registers solver Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when
// nil.
func NewSolverCollector(reg prometheus.Registerer) (*SolverCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	iterations, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hypergraph_solver_iterations_total",
		Help: "Total search expansions performed by the solver.",
	}), "hypergraph_solver_iterations_total")
	if err != nil {
		return nil, err
	}
	rips, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hypergraph_solver_rips_total",
		Help: "Total committed assignments removed by rip-up.",
	}), "hypergraph_solver_rips_total")
	if err != nil {
		return nil, err
	}
	solvedRoutes, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hypergraph_solver_routes_solved_total",
		Help: "Total connections committed with a solved route.",
	}), "hypergraph_solver_routes_solved_total")
	if err != nil {
		return nil, err
	}
	reopened, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hypergraph_solver_connections_reopened_total",
		Help: "Total connections pushed back to the queue after a rip.",
	}), "hypergraph_solver_connections_reopened_total")
	if err != nil {
		return nil, err
	}
	queueDepth, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hypergraph_solver_queue_depth",
		Help: "Current number of candidates in the priority queue.",
	}), "hypergraph_solver_queue_depth")
	if err != nil {
		return nil, err
	}

	return &SolverCollector{
		gatherer:     gatherer,
		Iterations:   iterations,
		Rips:         rips,
		RoutesSolved: solvedRoutes,
		Reopened:     reopened,
		QueueDepth:   queueDepth,
	}, nil
}

// RecordIteration counts one search expansion and samples the queue depth.
func (c *SolverCollector) RecordIteration(queueDepth int) {
	if c == nil {
		return
	}
	if c.Iterations != nil {
		c.Iterations.Inc()
	}
	if c.QueueDepth != nil {
		c.QueueDepth.Set(float64(queueDepth))
	}
}

// RecordCommit counts a solved route and the assignments ripped while
// committing it.
func (c *SolverCollector) RecordCommit(ripped, reopened int) {
	if c == nil {
		return
	}
	if c.RoutesSolved != nil {
		c.RoutesSolved.Inc()
	}
	if c.Rips != nil {
		c.Rips.Add(float64(ripped))
	}
	if c.Reopened != nil {
		c.Reopened.Add(float64(reopened))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SolverCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
