package solver

import (
	"math"

	"github.com/ShiboSoftwareDev/hypergraph/internal/mesh"
)

// ViaVariant routes the via hypergraph: hops as the unit of cost, a BFS
// distance-to-end heuristic, priced chord crossings in ordinary regions,
// and exclusive via regions. A via region occupied by another net blocks
// entry outright unless every foreign assignment there is ripped.
type ViaVariant struct {
	knobs Knobs
}

// DefaultViaKnobs returns the via tuning: non-zero crossing penalties and
// an admissible hop heuristic.
func DefaultViaKnobs() Knobs {
	return Knobs{
		GreedyMultiplier:  1.0,
		RipCost:           20,
		CrossingPenalty:   4,
		CrossingPenaltySq: 2,
		PortUsagePenalty:  1,
	}
}

// NewViaVariant builds a via variant with the given knobs. A zero
// GreedyMultiplier falls back to 1.0.
func NewViaVariant(knobs Knobs) *ViaVariant {
	if knobs.GreedyMultiplier == 0 {
		knobs.GreedyMultiplier = 1.0
	}
	return &ViaVariant{knobs: knobs}
}

func (v *ViaVariant) Name() string           { return "via" }
func (v *ViaVariant) UnitOfCost() UnitOfCost { return UnitHops }
func (v *ViaVariant) Knobs() Knobs           { return v.knobs }

// EstimateCostToEnd is the BFS hop distance from the port to the end
// region; unreachable ports estimate +Inf and are never expanded.
func (v *ViaVariant) EstimateCostToEnd(s *Solver, p *mesh.Port) float64 {
	end := s.CurrentEndRegion()
	if end == nil {
		return 0
	}
	dist, ok := s.dist.portDistance(end, p)
	if !ok {
		return math.Inf(1)
	}
	return float64(dist)
}

func (v *ViaVariant) PortUsagePenalty(p *mesh.Port) float64 {
	return usagePenalty(v.knobs, p)
}

func (v *ViaVariant) RegionCostIfPortsUsed(s *Solver, r *mesh.Region, pIn, pOut *mesh.Port) (float64, error) {
	crossings, err := mesh.CountCrossingsWithOtherNets(r, pIn, pOut, s.currentNet())
	if err != nil {
		return 0, err
	}
	return crossingCost(v.knobs, crossings) + v.PortUsagePenalty(pOut), nil
}

// RipRequiredForPortUsage: only via regions force rips; in ordinary
// regions crossings are priced, not ripped.
func (v *ViaVariant) RipRequiredForPortUsage(s *Solver, r *mesh.Region, pIn, pOut *mesh.Port) (bool, error) {
	if !r.IsViaRegion {
		return false, nil
	}
	return len(mesh.DifferentNetAssignments(r, s.currentNet())) > 0, nil
}

// RipsRequiredForPortUsage: a via region is exclusive to one net, so the
// rip set is every assignment owned by any other net, crossing or not.
func (v *ViaVariant) RipsRequiredForPortUsage(s *Solver, r *mesh.Region, pIn, pOut *mesh.Port) ([]*mesh.Assignment, error) {
	if !r.IsViaRegion {
		return nil, nil
	}
	return mesh.DifferentNetAssignments(r, s.currentNet()), nil
}
