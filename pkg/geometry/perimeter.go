package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
)

// degenerateEdgeEps is the length below which a boundary edge is collapsed
// during outline construction.
const degenerateEdgeEps = 1e-12

// Outline is the parameterized boundary of a region. Every boundary point
// maps to a scalar t in [0, P) where P is the perimeter length, measured by
// walking the boundary in a fixed orientation from a fixed origin.
//
// The edge lengths and their prefix sums are computed once at construction;
// an Outline is immutable afterwards.
type Outline struct {
	vertices []Point2D
	lengths  []float64 // per-edge lengths, edge i runs vertices[i] -> vertices[(i+1)%n]
	prefix   []float64 // cumulative length up to the start of edge i
	total    float64
}

// NewRectOutline builds the outline of an axis-aligned rectangle. The origin
// is the top-left corner and the walk is clockwise.
func NewRectOutline(r Rect) (*Outline, error) {
	return NewPolygonOutline([]Point2D{
		r.TopLeft(),
		{X: r.X + r.Width, Y: r.Y},
		r.BottomRight(),
		{X: r.X, Y: r.Y + r.Height},
	})
}

// NewPolygonOutline builds the outline of a simple polygon, walking the
// vertex sequence as given. Edges shorter than the degeneracy tolerance are
// dropped. At least three effective vertices are required.
func NewPolygonOutline(vertices []Point2D) (*Outline, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("outline needs at least 3 vertices, got %d", len(vertices))
	}

	o := &Outline{
		vertices: make([]Point2D, 0, len(vertices)),
	}
	for i, v := range vertices {
		if i > 0 && v.Distance(o.vertices[len(o.vertices)-1]) < degenerateEdgeEps {
			continue
		}
		o.vertices = append(o.vertices, v)
	}
	// Drop a trailing vertex that duplicates the first.
	if n := len(o.vertices); n > 1 && o.vertices[n-1].Distance(o.vertices[0]) < degenerateEdgeEps {
		o.vertices = o.vertices[:n-1]
	}
	if len(o.vertices) < 3 {
		return nil, fmt.Errorf("outline degenerate: %d effective vertices", len(o.vertices))
	}

	n := len(o.vertices)
	o.lengths = make([]float64, n)
	o.prefix = make([]float64, n)
	for i := 0; i < n; i++ {
		o.prefix[i] = o.total
		o.lengths[i] = o.vertices[i].Distance(o.vertices[(i+1)%n])
		o.total += o.lengths[i]
	}
	if o.total < degenerateEdgeEps {
		return nil, fmt.Errorf("outline degenerate: zero perimeter")
	}
	return o, nil
}

// Perimeter returns the total boundary length P.
func (o *Outline) Perimeter() float64 {
	return o.total
}

// Vertices returns the effective vertex loop of the outline.
func (o *Outline) Vertices() []Point2D {
	return o.vertices
}

// ParamOf maps a boundary point to its arc-length coordinate t in [0, P).
// The query point is projected onto every edge and the minimum-distance
// projection wins; ties go to the lowest edge index.
func (o *Outline) ParamOf(p Point2D) float64 {
	const projectionEps = 1e-6

	bestDist := 0.0
	bestT := 0.0
	first := true

	n := len(o.vertices)
	for i := 0; i < n; i++ {
		if o.lengths[i] < degenerateEdgeEps {
			continue
		}
		a := o.vertices[i]
		b := o.vertices[(i+1)%n]

		// Projection of p onto edge a-b, clamped to the segment.
		ab := b.Sub(a)
		ap := p.Sub(a)
		frac := (ap.X*ab.X + ap.Y*ab.Y) / (o.lengths[i] * o.lengths[i])
		if frac < 0 {
			frac = 0
		} else if frac > 1 {
			frac = 1
		}
		proj := a.Add(ab.Scale(frac))
		dist := p.Distance(proj)

		// Ties within tolerance keep the earlier edge index.
		if first || (dist < bestDist && !scalar.EqualWithinAbs(dist, bestDist, projectionEps)) {
			bestDist = dist
			bestT = o.prefix[i] + frac*o.lengths[i]
			first = false
		}
	}

	// Wrap a full-perimeter value back to the origin.
	if bestT >= o.total {
		bestT -= o.total
	}
	return bestT
}
