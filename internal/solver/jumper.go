package solver

import (
	"github.com/ShiboSoftwareDev/hypergraph/internal/mesh"
)

// JumperVariant routes the jumper hypergraph: distances as the unit of
// cost, a straight-line heuristic, and chord crossings as the conflict
// metric. Interior regions may host several nets as long as their chords
// never interleave, so any other-net crossing forces a rip.
type JumperVariant struct {
	knobs Knobs
}

// DefaultJumperKnobs returns the jumper tuning: zero penalties, rip-up
// carrying a flat cost, and a mildly greedy heuristic.
func DefaultJumperKnobs() Knobs {
	return Knobs{
		GreedyMultiplier: 1.1,
		RipCost:          10,
	}
}

// NewJumperVariant builds a jumper variant with the given knobs. A zero
// GreedyMultiplier falls back to 1.0.
func NewJumperVariant(knobs Knobs) *JumperVariant {
	if knobs.GreedyMultiplier == 0 {
		knobs.GreedyMultiplier = 1.0
	}
	return &JumperVariant{knobs: knobs}
}

func (v *JumperVariant) Name() string           { return "jumper" }
func (v *JumperVariant) UnitOfCost() UnitOfCost { return UnitDistance }
func (v *JumperVariant) Knobs() Knobs           { return v.knobs }

// EstimateCostToEnd is the Euclidean distance from the port to the end
// region's center.
func (v *JumperVariant) EstimateCostToEnd(s *Solver, p *mesh.Port) float64 {
	end := s.CurrentEndRegion()
	if end == nil {
		return 0
	}
	return p.Position.Distance(end.Center)
}

func (v *JumperVariant) PortUsagePenalty(p *mesh.Port) float64 {
	return usagePenalty(v.knobs, p)
}

func (v *JumperVariant) RegionCostIfPortsUsed(s *Solver, r *mesh.Region, pIn, pOut *mesh.Port) (float64, error) {
	crossings, err := mesh.CountCrossingsWithOtherNets(r, pIn, pOut, s.currentNet())
	if err != nil {
		return 0, err
	}
	return crossingCost(v.knobs, crossings) + v.PortUsagePenalty(pOut), nil
}

// RipRequiredForPortUsage: a jumper region cannot host interleaved chords
// of different nets, so any other-net crossing demands a rip.
func (v *JumperVariant) RipRequiredForPortUsage(s *Solver, r *mesh.Region, pIn, pOut *mesh.Port) (bool, error) {
	crossings, err := mesh.CountCrossingsWithOtherNets(r, pIn, pOut, s.currentNet())
	if err != nil {
		return false, err
	}
	return crossings > 0, nil
}

// RipsRequiredForPortUsage lists the other-net assignments whose chords
// cross the prospective chord.
func (v *JumperVariant) RipsRequiredForPortUsage(s *Solver, r *mesh.Region, pIn, pOut *mesh.Port) ([]*mesh.Assignment, error) {
	crossing, err := mesh.ListCrossingAssignments(r, pIn, pOut)
	if err != nil {
		return nil, err
	}
	net := s.currentNet()
	var rips []*mesh.Assignment
	for _, a := range crossing {
		if a.Net() != net {
			rips = append(rips, a)
		}
	}
	return rips, nil
}
