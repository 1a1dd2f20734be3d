// Package solver implements the hypergraph routing engine: a best-first
// search that expands port candidates across regions, prices chord
// crossings, and rips up conflicting prior assignments when a cheaper
// route requires it.
package solver

import (
	"github.com/ShiboSoftwareDev/hypergraph/internal/mesh"
)

// Candidate is a search node: a port just crossed and the region it leads
// into. Candidates form a tree through Parent back-references, rooted at
// each connection's start region.
type Candidate struct {
	// Port is the port crossed to arrive at NextRegion. The root
	// candidate carries the start region's connection port.
	Port *mesh.Port

	// NextRegion is the region to traverse next.
	NextRegion *mesh.Region

	// LastPort and LastRegion describe where the candidate came from.
	// Both are nil on the root.
	LastPort   *mesh.Port
	LastRegion *mesh.Region

	G    float64
	H    float64
	F    float64
	Hops int

	Parent *Candidate

	// RipRequired marks a candidate whose expansion needs prior
	// assignments removed; Rips is the set recorded at expansion time.
	RipRequired bool
	Rips        []*mesh.Assignment

	// Rip counters observed at enqueue time, used to detect staleness on
	// dequeue: portStamp for Port itself, ripStamps pairwise for each
	// assignment in Rips (port1 then port2).
	portStamp int
	ripStamps []int

	seq uint64
}

// recordStamps snapshots the rip counters the candidate depends on.
func (c *Candidate) recordStamps() {
	if c.Port != nil {
		c.portStamp = c.Port.RipCount
	}
	if len(c.Rips) > 0 {
		c.ripStamps = make([]int, 0, 2*len(c.Rips))
		for _, a := range c.Rips {
			c.ripStamps = append(c.ripStamps, a.Port1.RipCount, a.Port2.RipCount)
		}
	}
}

// stale reports whether any rip counter has advanced past the value
// observed at enqueue time. A stale candidate's cost basis no longer
// matches the committed state and it must be discarded, not expanded.
func (c *Candidate) stale() bool {
	if c.Port != nil && c.Port.RipCount > c.portStamp {
		return true
	}
	for i, a := range c.Rips {
		if a.Port1.RipCount > c.ripStamps[2*i] || a.Port2.RipCount > c.ripStamps[2*i+1] {
			return true
		}
	}
	return false
}

// pathFromRoot walks the parent chain and returns the candidates in visit
// order from the root to this candidate.
func (c *Candidate) pathFromRoot() []*Candidate {
	var path []*Candidate
	for cur := c; cur != nil; cur = cur.Parent {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// SolvedRoute is a committed route for one connection: the candidate path
// in visit order from start to end.
type SolvedRoute struct {
	Connection  *mesh.Connection
	Path        []*Candidate
	RequiredRip bool
}

// Hops returns the number of port crossings on the route.
func (r *SolvedRoute) Hops() int {
	if len(r.Path) == 0 {
		return 0
	}
	return r.Path[len(r.Path)-1].Hops
}

// Cost returns the accumulated g-cost of the route.
func (r *SolvedRoute) Cost() float64 {
	if len(r.Path) == 0 {
		return 0
	}
	return r.Path[len(r.Path)-1].G
}

// RegionIDs returns the regions visited by the route, in order.
func (r *SolvedRoute) RegionIDs() []string {
	ids := make([]string, 0, len(r.Path))
	for _, c := range r.Path {
		ids = append(ids, c.NextRegion.ID)
	}
	return ids
}
