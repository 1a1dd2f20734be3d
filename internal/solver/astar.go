package solver

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/ShiboSoftwareDev/hypergraph/internal/mesh"
)

// beginNextConnection pops the next pending connection, resets the queue,
// and seeds the root candidate at the start region. With nothing pending,
// the solver is done.
func (s *Solver) beginNextConnection() {
	if len(s.pending) == 0 {
		if len(s.routeByConn) != len(s.connections) {
			s.fail(fmt.Errorf("%w: no pending connections but %d of %d routed",
				ErrInternalInvariant, len(s.routeByConn), len(s.connections)))
			return
		}
		s.solved = true
		log.WithFields(log.Fields{
			"connections": len(s.connections),
			"iterations":  s.iterations,
		}).Info("all connections routed")
		return
	}

	c := s.pending[0]
	s.pending = s.pending[1:]
	delete(s.pendingSet, c.ID)

	s.current = c
	s.endRegion = c.End
	s.queue.Clear()

	// Root candidate: sitting at the start region's connection port.
	root := &Candidate{
		NextRegion: c.Start,
	}
	if len(c.Start.Ports) > 0 {
		root.Port = c.Start.Ports[0]
		root.H = s.variant.EstimateCostToEnd(s, root.Port)
	}
	root.F = root.G + s.variant.Knobs().GreedyMultiplier*root.H
	root.recordStamps()
	s.queue.Enqueue(root)

	log.WithFields(log.Fields{
		"connection": c.ID,
		"net":        c.Net(),
		"start":      c.Start.ID,
		"end":        c.End.ID,
	}).Debug("routing connection")
}

// expandOnce performs one best-first iteration: pop the cheapest
// candidate, discard it if stale, commit it if it reached the goal, and
// otherwise expand its region's ports.
func (s *Solver) expandOnce() {
	if s.iterations >= s.maxIterations {
		s.fail(fmt.Errorf("%w: %d iterations", ErrBudgetExhausted, s.iterations))
		return
	}

	c := s.queue.Dequeue()
	if c == nil {
		s.fail(fmt.Errorf("%w: connection %q", ErrUnreachableGoal, s.current.ID))
		return
	}

	s.iterations++
	s.opts.Collector.RecordIteration(s.queue.Len())

	if c.stale() {
		return
	}
	if c.NextRegion == s.endRegion {
		s.commit(c)
		return
	}
	s.expand(c)
}

// expand enqueues a child candidate for every usable exit port of the
// candidate's region.
func (s *Solver) expand(c *Candidate) {
	knobs := s.variant.Knobs()

	for _, pOut := range c.NextRegion.Ports {
		// Never exit back through the entry port. The root candidate has
		// no entry; its recorded port is the connection port itself and
		// remains a legal exit.
		if c.Parent != nil && pOut == c.Port {
			continue
		}
		next := pOut.Other(c.NextRegion)
		if next == nil {
			s.fail(fmt.Errorf("%w: port %q not incident to region %q",
				ErrInternalInvariant, pOut.ID, c.NextRegion.ID))
			return
		}

		ripRequired, err := s.variant.RipRequiredForPortUsage(s, c.NextRegion, c.Port, pOut)
		if err != nil {
			s.fail(fmt.Errorf("%w: %v", ErrInternalInvariant, err))
			return
		}
		var rips []*mesh.Assignment
		if ripRequired {
			if !s.opts.RippingEnabled {
				continue
			}
			rips, err = s.variant.RipsRequiredForPortUsage(s, c.NextRegion, c.Port, pOut)
			if err != nil {
				s.fail(fmt.Errorf("%w: %v", ErrInternalInvariant, err))
				return
			}
			if len(rips) == 0 {
				ripRequired = false
			}
		}

		regionCost, err := s.variant.RegionCostIfPortsUsed(s, c.NextRegion, c.Port, pOut)
		if err != nil {
			s.fail(fmt.Errorf("%w: %v", ErrInternalInvariant, err))
			return
		}

		stepCost := regionCost
		if s.variant.UnitOfCost() == UnitDistance {
			if c.Port != nil {
				stepCost += c.Port.Position.Distance(pOut.Position)
			} else {
				stepCost += c.NextRegion.Center.Distance(pOut.Position)
			}
		} else {
			stepCost++
		}
		if ripRequired {
			stepCost += knobs.RipCost
		}

		child := &Candidate{
			Port:        pOut,
			NextRegion:  next,
			LastPort:    c.Port,
			LastRegion:  c.NextRegion,
			G:           c.G + stepCost,
			H:           s.variant.EstimateCostToEnd(s, pOut),
			Hops:        c.Hops + 1,
			Parent:      c,
			RipRequired: ripRequired,
			Rips:        rips,
		}
		if math.IsInf(child.H, 1) {
			continue
		}
		child.F = child.G + knobs.GreedyMultiplier*child.H
		child.recordStamps()
		s.queue.Enqueue(child)
	}
}
