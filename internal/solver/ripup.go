package solver

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ShiboSoftwareDev/hypergraph/internal/mesh"
)

// commit turns a goal candidate into a SolvedRoute: rip conflicting prior
// assignments, append the new per-region assignments along the path, and
// push ripped connections back to the pending queue.
//
// Rip actions are gathered first and applied exactly once; the cascade
// never re-enters during the commit.
func (s *Solver) commit(goal *Candidate) {
	path := goal.pathFromRoot()
	route := &SolvedRoute{Connection: s.current, Path: path}

	// Chain continuity check before mutating anything.
	for k := 0; k+1 < len(path); k++ {
		a, b := path[k], path[k+1]
		if b.LastPort != a.Port || b.LastRegion != a.NextRegion {
			s.fail(fmt.Errorf("%w: discontinuous candidate chain at hop %d of connection %q",
				ErrInternalInvariant, k+1, s.current.ID))
			return
		}
	}

	// Gather the rip set recorded on the path.
	ripSet := make(map[*mesh.Assignment]bool)
	for _, c := range path {
		if !c.RipRequired {
			continue
		}
		route.RequiredRip = true
		for _, a := range c.Rips {
			ripSet[a] = true
		}
	}

	// An assignment is one link in its connection's chain; removing one
	// unroutes the whole connection, so the cascade rips every assignment
	// of every affected connection.
	reopened := make(map[*mesh.Connection]bool)
	var toRip []*mesh.Assignment
	if len(ripSet) > 0 {
		for a := range ripSet {
			reopened[a.Connection] = true
		}
		for _, r := range s.graph.Regions {
			for _, a := range r.Assignments {
				if reopened[a.Connection] {
					toRip = append(toRip, a)
				}
			}
		}
	}

	for _, a := range toRip {
		if !a.Region.RemoveAssignment(a) {
			s.fail(fmt.Errorf("%w: ripped assignment missing from region %q",
				ErrInternalInvariant, a.Region.ID))
			return
		}
		a.Port1.RipCount++
		a.Port2.RipCount++
	}

	// Reopened connections go to the tail of the queue, deduplicated, in
	// input order.
	reopenedCount := 0
	for _, c := range s.connections {
		if !reopened[c] {
			continue
		}
		s.dropRoute(c)
		if c != s.current && !s.pendingSet[c.ID] {
			s.pending = append(s.pending, c)
			s.pendingSet[c.ID] = true
			reopenedCount++
		}
	}

	// Append the new assignments root-to-goal. The first pair exits the
	// start region and the goal candidate only enters the end region, so
	// endpoint regions record no assignment.
	for k := 1; k+1 < len(path); k++ {
		a, b := path[k], path[k+1]
		asg := &mesh.Assignment{
			Region:     b.LastRegion,
			Port1:      a.Port,
			Port2:      b.Port,
			Connection: s.current,
		}
		b.LastRegion.AddAssignment(asg)
	}

	s.routes = append(s.routes, route)
	s.routeByConn[s.current.ID] = route
	s.opts.Collector.RecordCommit(len(toRip), reopenedCount)

	log.WithFields(log.Fields{
		"connection": s.current.ID,
		"hops":       route.Hops(),
		"cost":       route.Cost(),
		"ripped":     len(toRip),
		"reopened":   reopenedCount,
	}).Debug("connection routed")

	s.current = nil
	s.endRegion = nil
}

// dropRoute forgets a previously committed route for a connection.
func (s *Solver) dropRoute(c *mesh.Connection) {
	if _, ok := s.routeByConn[c.ID]; !ok {
		return
	}
	delete(s.routeByConn, c.ID)
	for i, r := range s.routes {
		if r.Connection == c {
			s.routes = append(s.routes[:i], s.routes[i+1:]...)
			break
		}
	}
}
