package geometry

import "math"

// ChordsCrossOnPerimeter reports whether the chord (a,b) crosses the chord
// (c,d), all four values being arc-length coordinates on a boundary of
// length perimeter. Two chords cross iff exactly one of c, d lies in the
// open arc (a,b) taken modulo the perimeter.
//
// Endpoints coincident within tolerance never cross: two chords that share
// a port at a corner are not interleaved.
func ChordsCrossOnPerimeter(a, b, c, d, perimeter float64) bool {
	if perimeter <= 0 {
		return false
	}

	if arcCoincident(a, c, perimeter) || arcCoincident(a, d, perimeter) ||
		arcCoincident(b, c, perimeter) || arcCoincident(b, d, perimeter) {
		return false
	}

	cInside := inOpenArc(a, b, c, perimeter)
	dInside := inOpenArc(a, b, d, perimeter)
	return cInside != dInside
}

// arcCoincident reports whether two arc coordinates identify the same
// boundary point, accounting for wrap-around at the origin.
func arcCoincident(s, t, perimeter float64) bool {
	diff := math.Abs(math.Mod(s-t, perimeter))
	if diff > perimeter/2 {
		diff = perimeter - diff
	}
	return diff < coincidentEps
}

// inOpenArc reports whether x lies strictly inside the arc from a to b,
// walking in the direction of increasing t (modulo the perimeter).
func inOpenArc(a, b, x, perimeter float64) bool {
	span := wrap(b-a, perimeter)
	off := wrap(x-a, perimeter)
	return off > coincidentEps && off < span-coincidentEps
}

// wrap normalizes v into [0, perimeter).
func wrap(v, perimeter float64) float64 {
	v = math.Mod(v, perimeter)
	if v < 0 {
		v += perimeter
	}
	return v
}
