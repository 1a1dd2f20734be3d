package solver

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ShiboSoftwareDev/hypergraph/internal/mesh"
	"github.com/ShiboSoftwareDev/hypergraph/internal/observability"
	"github.com/ShiboSoftwareDev/hypergraph/pkg/geometry"
)

// Options tune a solver instance. The iteration budget for a solve is
// BaseMaxIterations plus the per-connection and per-input-crossing
// allowances.
type Options struct {
	Variant Variant

	BaseMaxIterations                    int
	AdditionalMaxIterationsPerConnection int
	AdditionalMaxIterationsPerCrossing   int

	RippingEnabled bool

	// Collector receives solver metrics; nil disables instrumentation.
	Collector *observability.SolverCollector
}

// DefaultOptions returns the jumper-variant defaults with ripping enabled.
func DefaultOptions() Options {
	return Options{
		Variant:                              NewJumperVariant(DefaultJumperKnobs()),
		BaseMaxIterations:                    5000,
		AdditionalMaxIterationsPerConnection: 1000,
		AdditionalMaxIterationsPerCrossing:   500,
		RippingEnabled:                       true,
	}
}

func (o Options) validate() error {
	if o.BaseMaxIterations < 0 ||
		o.AdditionalMaxIterationsPerConnection < 0 ||
		o.AdditionalMaxIterationsPerCrossing < 0 {
		return fmt.Errorf("%w: iteration budgets must be non-negative", ErrInvalidOptions)
	}
	return nil
}

// Solver routes a set of connections across a hypergraph of regions. It is
// single-threaded and cooperative: Step performs one expansion and
// returns, Solve loops Step until a terminal state.
type Solver struct {
	graph       *mesh.Graph
	connections []*mesh.Connection
	variant     Variant
	opts        Options

	queue      *candidateQueue
	pending    []*mesh.Connection
	pendingSet map[string]bool

	current   *mesh.Connection
	endRegion *mesh.Region

	routes      []*SolvedRoute
	routeByConn map[string]*SolvedRoute

	dist *distanceMaps

	iterations    int
	maxIterations int
	solved        bool
	failed        bool
	err           error
}

// New builds a solver over an already-hydrated graph. Connections must
// reference regions belonging to the graph.
func New(g *mesh.Graph, connections []*mesh.Connection, opts Options) (*Solver, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	variant := opts.Variant
	if variant == nil {
		variant = NewJumperVariant(DefaultJumperKnobs())
	}

	for _, c := range connections {
		if c.Start == nil || c.End == nil {
			return nil, fmt.Errorf("%w: connection %q has a nil endpoint", mesh.ErrInvalidConnection, c.ID)
		}
		for _, r := range []*mesh.Region{c.Start, c.End} {
			have, ok := g.RegionByID(r.ID)
			if !ok || have != r {
				return nil, fmt.Errorf("%w: connection %q references region %q outside the graph", mesh.ErrMissingRegion, c.ID, r.ID)
			}
		}
	}

	s := &Solver{
		graph:       g,
		connections: connections,
		variant:     variant,
		opts:        opts,
		queue:       newCandidateQueue(),
		pending:     append([]*mesh.Connection(nil), connections...),
		pendingSet:  make(map[string]bool, len(connections)),
		routeByConn: make(map[string]*SolvedRoute, len(connections)),
		dist:        newDistanceMaps(g),
	}
	for _, c := range connections {
		s.pendingSet[c.ID] = true
	}

	crossings := inputCrossings(connections)
	s.maxIterations = opts.BaseMaxIterations +
		opts.AdditionalMaxIterationsPerConnection*len(connections) +
		opts.AdditionalMaxIterationsPerCrossing*crossings

	log.WithFields(log.Fields{
		"variant":         variant.Name(),
		"connections":     len(connections),
		"input_crossings": crossings,
		"max_iterations":  s.maxIterations,
	}).Debug("solver constructed")

	return s, nil
}

// NewFromSerialized hydrates a serialized graph and connection list, then
// builds a solver over them.
func NewFromSerialized(sg mesh.SerializedGraph, scs []mesh.SerializedConnection, opts Options) (*Solver, error) {
	g, err := mesh.Hydrate(sg)
	if err != nil {
		return nil, err
	}
	conns, err := mesh.HydrateConnections(g, scs)
	if err != nil {
		return nil, err
	}
	return New(g, conns, opts)
}

// Step advances the solver by one unit of work: either preparing the next
// pending connection or performing a single search expansion. It is a
// no-op in a terminal state.
func (s *Solver) Step() {
	if s.solved || s.failed {
		return
	}
	if s.current == nil {
		s.beginNextConnection()
		return
	}
	s.expandOnce()
}

// Solve runs Step until the solver is solved or failed, and returns the
// failure cause if any. The iteration budget bounds the loop.
func (s *Solver) Solve() error {
	for !s.solved && !s.failed {
		s.Step()
	}
	return s.err
}

// Solved reports whether every input connection has a committed route.
func (s *Solver) Solved() bool { return s.solved }

// Failed reports whether the solver gave up.
func (s *Solver) Failed() bool { return s.failed }

// Err returns the failure cause, or nil.
func (s *Solver) Err() error { return s.err }

// Iterations returns the number of search expansions performed so far.
func (s *Solver) Iterations() int { return s.iterations }

// MaxIterations returns the solver-wide iteration budget.
func (s *Solver) MaxIterations() int { return s.maxIterations }

// Graph returns the solver's hypergraph.
func (s *Solver) Graph() *mesh.Graph { return s.graph }

// CurrentConnection returns the connection being routed, or nil between
// connections.
func (s *Solver) CurrentConnection() *mesh.Connection { return s.current }

// CurrentEndRegion returns the goal region of the current connection.
func (s *Solver) CurrentEndRegion() *mesh.Region { return s.endRegion }

// Routes returns the committed routes in solve order.
func (s *Solver) Routes() []*SolvedRoute {
	return append([]*SolvedRoute(nil), s.routes...)
}

// RouteFor returns the committed route for a connection id, if any.
func (s *Solver) RouteFor(connectionID string) (*SolvedRoute, bool) {
	r, ok := s.routeByConn[connectionID]
	return r, ok
}

// PeekCandidates returns the best k queued candidates without removing
// them.
func (s *Solver) PeekCandidates(k int) []*Candidate {
	return s.queue.PeekMany(k)
}

// currentNet returns the net id of the connection being routed.
func (s *Solver) currentNet() string {
	if s.current == nil {
		return ""
	}
	return s.current.Net()
}

func (s *Solver) fail(err error) {
	s.failed = true
	s.err = err
	log.WithFields(log.Fields{
		"iterations": s.iterations,
		"routed":     len(s.routeByConn),
		"total":      len(s.connections),
	}).Warnf("solver failed: %v", err)
}

// inputCrossings counts the pairs of different-net connections whose
// straight start-to-end segments intersect. The count scales the
// iteration budget with problem density.
func inputCrossings(connections []*mesh.Connection) int {
	count := 0
	for i := 0; i < len(connections); i++ {
		for j := i + 1; j < len(connections); j++ {
			a, b := connections[i], connections[j]
			if a.Net() == b.Net() {
				continue
			}
			if geometry.SegmentsIntersect(
				a.Start.Center, a.End.Center,
				b.Start.Center, b.End.Center,
			) {
				count++
			}
		}
	}
	return count
}
