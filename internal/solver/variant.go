package solver

import (
	"github.com/ShiboSoftwareDev/hypergraph/internal/mesh"
)

// UnitOfCost selects how a single hop is priced.
type UnitOfCost int

const (
	// UnitHops prices every port crossing at 1.
	UnitHops UnitOfCost = iota
	// UnitDistance prices a crossing by the Euclidean distance between
	// the entry and exit ports.
	UnitDistance
)

func (u UnitOfCost) String() string {
	switch u {
	case UnitHops:
		return "hops"
	case UnitDistance:
		return "distance"
	default:
		return "unknown"
	}
}

// Knobs are the numeric tuning parameters of a variant. GreedyMultiplier
// scales the heuristic in f = g + greedyMultiplier*h; values above 1.0
// trade optimality for speed and admissibility is not enforced.
type Knobs struct {
	GreedyMultiplier   float64 `json:"greedy_multiplier,omitempty"`
	RipCost            float64 `json:"rip_cost,omitempty"`
	CrossingPenalty    float64 `json:"crossing_penalty,omitempty"`
	CrossingPenaltySq  float64 `json:"crossing_penalty_sq,omitempty"`
	PortUsagePenalty   float64 `json:"port_usage_penalty,omitempty"`
	PortUsagePenaltySq float64 `json:"port_usage_penalty_sq,omitempty"`
}

// Variant injects the policy differences between the jumper and via
// hypergraphs: heuristic, penalties, and exclusivity rules. The search
// engine itself is shared.
type Variant interface {
	Name() string
	UnitOfCost() UnitOfCost
	Knobs() Knobs

	// EstimateCostToEnd returns the heuristic h for a port, relative to
	// the solver's current end region.
	EstimateCostToEnd(s *Solver, p *mesh.Port) float64

	// PortUsagePenalty prices reuse of an already-occupied port.
	PortUsagePenalty(p *mesh.Port) float64

	// RegionCostIfPortsUsed prices traversing r from pIn to pOut against
	// the region's committed assignments.
	RegionCostIfPortsUsed(s *Solver, r *mesh.Region, pIn, pOut *mesh.Port) (float64, error)

	// RipRequiredForPortUsage reports whether traversing r from pIn to
	// pOut conflicts with committed assignments that must be ripped.
	RipRequiredForPortUsage(s *Solver, r *mesh.Region, pIn, pOut *mesh.Port) (bool, error)

	// RipsRequiredForPortUsage lists the assignments that must be ripped
	// before r can be traversed from pIn to pOut.
	RipsRequiredForPortUsage(s *Solver, r *mesh.Region, pIn, pOut *mesh.Port) ([]*mesh.Assignment, error)
}

// usagePenalty is the shared port-occupancy pricing used by both variants.
func usagePenalty(k Knobs, p *mesh.Port) float64 {
	u := float64(p.UseCount)
	return k.PortUsagePenalty*u + k.PortUsagePenaltySq*u*u
}

// crossingCost is the shared chord-crossing pricing used by both variants.
func crossingCost(k Knobs, crossings int) float64 {
	c := float64(crossings)
	return k.CrossingPenalty*c + k.CrossingPenaltySq*c*c
}
