package geometry

import "math"

const (
	// segmentEps is the tolerance for the cross-product straddle test.
	segmentEps = 1e-9
	// coincidentEps is the tolerance under which two points count as the
	// same point (shared port at a corner).
	coincidentEps = 1e-6
)

// Coincident returns true if two points are within the shared-endpoint
// tolerance of each other.
func Coincident(a, b Point2D) bool {
	return a.Distance(b) < coincidentEps
}

// SegmentsIntersect returns true if segment a1-a2 properly intersects
// segment b1-b2. Segments that merely share an endpoint (within tolerance)
// do not count as intersecting.
func SegmentsIntersect(a1, a2, b1, b2 Point2D) bool {
	if Coincident(a1, b1) || Coincident(a1, b2) ||
		Coincident(a2, b1) || Coincident(a2, b2) {
		return false
	}

	d1 := crossSign(b1, b2, a1)
	d2 := crossSign(b1, b2, a2)
	d3 := crossSign(a1, a2, b1)
	d4 := crossSign(a1, a2, b2)

	if d1 != 0 && d2 != 0 && d3 != 0 && d4 != 0 {
		return d1 != d2 && d3 != d4
	}

	// Collinear cases: intersect if an endpoint lies on the other segment.
	if d1 == 0 && onSegment(b1, b2, a1) {
		return true
	}
	if d2 == 0 && onSegment(b1, b2, a2) {
		return true
	}
	if d3 == 0 && onSegment(a1, a2, b1) {
		return true
	}
	if d4 == 0 && onSegment(a1, a2, b2) {
		return true
	}
	return false
}

// crossSign returns the sign of the cross product of vectors OA and OB,
// treating magnitudes below the epsilon as zero.
func crossSign(o, a, b Point2D) int {
	cross := (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	if math.Abs(cross) < segmentEps {
		return 0
	}
	if cross > 0 {
		return 1
	}
	return -1
}

// onSegment reports whether p lies within the bounding box of segment a-b.
// Only meaningful when p is known to be collinear with a-b.
func onSegment(a, b, p Point2D) bool {
	return math.Min(a.X, b.X)-segmentEps <= p.X && p.X <= math.Max(a.X, b.X)+segmentEps &&
		math.Min(a.Y, b.Y)-segmentEps <= p.Y && p.Y <= math.Max(a.Y, b.Y)+segmentEps
}
