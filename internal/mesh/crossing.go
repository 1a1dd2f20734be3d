package mesh

import (
	"github.com/ShiboSoftwareDev/hypergraph/pkg/geometry"
)

// ChordsCross reports whether the chord (p1,p2) geometrically crosses the
// chord (q1,q2) inside region r. The perimeter interleaving test is the
// primary check; a Cartesian segment-intersection test catches chords whose
// endpoints sit on a single boundary edge, where the interleaving test can
// false-negative.
func ChordsCross(r *Region, p1, p2, q1, q2 *Port) (bool, error) {
	o, err := r.Outline()
	if err != nil {
		return false, err
	}

	t1, err := p1.PerimeterT(r)
	if err != nil {
		return false, err
	}
	t2, err := p2.PerimeterT(r)
	if err != nil {
		return false, err
	}
	t3, err := q1.PerimeterT(r)
	if err != nil {
		return false, err
	}
	t4, err := q2.PerimeterT(r)
	if err != nil {
		return false, err
	}

	if geometry.ChordsCrossOnPerimeter(t1, t2, t3, t4, o.Perimeter()) {
		return true, nil
	}
	return geometry.SegmentsIntersect(p1.Position, p2.Position, q1.Position, q2.Position), nil
}

// CountCrossingsWithOtherNets counts the committed assignments in r whose
// owning connection belongs to a different net than netID and whose chord
// crosses the prospective chord (p1,p2).
//
// Via regions are exclusive rather than chord-ordered: every assignment from
// any other net counts as a crossing regardless of geometry.
func CountCrossingsWithOtherNets(r *Region, p1, p2 *Port, netID string) (int, error) {
	if p1 == nil || p2 == nil || p1 == p2 {
		return 0, nil
	}

	if r.IsViaRegion {
		return len(DifferentNetAssignments(r, netID)), nil
	}

	count := 0
	for _, a := range r.Assignments {
		if a.Net() == netID {
			continue
		}
		cross, err := ChordsCross(r, p1, p2, a.Port1, a.Port2)
		if err != nil {
			return 0, err
		}
		if cross {
			count++
		}
	}
	return count, nil
}

// ListCrossingAssignments returns the assignments in r whose chord crosses
// (p1,p2), in insertion order. Net membership is not considered; callers
// filter as needed.
func ListCrossingAssignments(r *Region, p1, p2 *Port) ([]*Assignment, error) {
	if p1 == nil || p2 == nil || p1 == p2 {
		return nil, nil
	}

	var out []*Assignment
	for _, a := range r.Assignments {
		cross, err := ChordsCross(r, p1, p2, a.Port1, a.Port2)
		if err != nil {
			return nil, err
		}
		if cross {
			out = append(out, a)
		}
	}
	return out, nil
}

// DifferentNetAssignments returns every assignment in r owned by a net
// other than netID, in insertion order. For via regions this is the rip set
// required before the region can host netID.
func DifferentNetAssignments(r *Region, netID string) []*Assignment {
	var out []*Assignment
	for _, a := range r.Assignments {
		if a.Net() != netID {
			out = append(out, a)
		}
	}
	return out
}
