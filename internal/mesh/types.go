// Package mesh holds the planar hypergraph the router traverses: polygonal
// regions joined by shared-boundary ports, the connections to route between
// them, and the chord assignments committed into regions by the solver.
package mesh

import (
	"fmt"

	"github.com/ShiboSoftwareDev/hypergraph/pkg/geometry"
)

// Region is a planar area bounded by a polygon or an axis-aligned rectangle.
// It is the atomic unit of routing traversal.
type Region struct {
	ID string `json:"region_id"`

	// Boundary: a simple polygon (>= 3 points) or axis-aligned bounds.
	// Polygon wins when both are present.
	Polygon []geometry.Point2D `json:"polygon,omitempty"`
	Bounds  *geometry.Rect     `json:"bounds,omitempty"`

	Center geometry.Point2D `json:"center"`

	IsPad              bool `json:"is_pad,omitempty"`
	IsThroughJumper    bool `json:"is_through_jumper,omitempty"`
	IsViaRegion        bool `json:"is_via_region,omitempty"`
	IsConnectionRegion bool `json:"is_connection_region,omitempty"`

	// Ports incident to this region. Every port here has Region1 or
	// Region2 equal to this region.
	Ports []*Port `json:"-"`

	// Assignments committed into this region, in insertion order.
	Assignments []*Assignment `json:"-"`

	outline     *geometry.Outline
	outlineErr  error
	outlineDone bool
}

// Outline returns the lazily built perimeter parameterization of the region
// boundary. The result is cached; a region's boundary never changes while
// the solver runs.
func (r *Region) Outline() (*geometry.Outline, error) {
	if !r.outlineDone {
		r.outlineDone = true
		switch {
		case len(r.Polygon) >= 3:
			r.outline, r.outlineErr = geometry.NewPolygonOutline(r.Polygon)
		case r.Bounds != nil:
			r.outline, r.outlineErr = geometry.NewRectOutline(*r.Bounds)
		default:
			r.outlineErr = fmt.Errorf("%w: region %q has neither polygon nor bounds", ErrMalformedGraph, r.ID)
		}
	}
	return r.outline, r.outlineErr
}

// HasPort reports whether p is in the region's incidence list.
func (r *Region) HasPort(p *Port) bool {
	for _, q := range r.Ports {
		if q == p {
			return true
		}
	}
	return false
}

// AddAssignment appends an assignment to the region, preserving insertion
// order, and bumps the usage counters of its ports.
func (r *Region) AddAssignment(a *Assignment) {
	r.Assignments = append(r.Assignments, a)
	a.Port1.UseCount++
	a.Port2.UseCount++
}

// RemoveAssignment removes an assignment from the region, keeping the
// remaining assignments in insertion order. Returns false if the assignment
// was not present.
func (r *Region) RemoveAssignment(a *Assignment) bool {
	for i, have := range r.Assignments {
		if have == a {
			r.Assignments = append(r.Assignments[:i], r.Assignments[i+1:]...)
			a.Port1.UseCount--
			a.Port2.UseCount--
			return true
		}
	}
	return false
}

// Port is a point on the shared boundary of exactly two regions. Routes hop
// from region to region by crossing ports.
type Port struct {
	ID       string           `json:"port_id"`
	Region1  *Region          `json:"-"`
	Region2  *Region          `json:"-"`
	Position geometry.Point2D `json:"position"`

	// RipCount increases monotonically every time an assignment using this
	// port is ripped. Candidates record it to detect staleness.
	RipCount int `json:"-"`

	// UseCount is the number of committed assignments touching this port.
	UseCount int `json:"-"`

	t1, t2     float64
	t1ok, t2ok bool
}

// Touches reports whether the port is incident to r.
func (p *Port) Touches(r *Region) bool {
	return p.Region1 == r || p.Region2 == r
}

// Other returns the region on the opposite side of the port from r, or nil
// if the port is not incident to r.
func (p *Port) Other(r *Region) *Region {
	switch r {
	case p.Region1:
		return p.Region2
	case p.Region2:
		return p.Region1
	}
	return nil
}

// PerimeterT returns the arc-length coordinate of the port on the boundary
// of r. The value is computed once per side and cached.
func (p *Port) PerimeterT(r *Region) (float64, error) {
	switch r {
	case p.Region1:
		if !p.t1ok {
			o, err := r.Outline()
			if err != nil {
				return 0, err
			}
			p.t1 = o.ParamOf(p.Position)
			p.t1ok = true
		}
		return p.t1, nil
	case p.Region2:
		if !p.t2ok {
			o, err := r.Outline()
			if err != nil {
				return 0, err
			}
			p.t2 = o.ParamOf(p.Position)
			p.t2ok = true
		}
		return p.t2, nil
	}
	return 0, fmt.Errorf("%w: port %q not incident to region %q", ErrMalformedGraph, p.ID, r.ID)
}

// Connection is a request to route between two regions of the graph.
type Connection struct {
	ID    string `json:"connection_id"`
	NetID string `json:"mutually_connected_network_id,omitempty"`

	Start *Region `json:"-"`
	End   *Region `json:"-"`
}

// Net returns the net equivalence class of the connection. Connections
// without an explicit net id form a singleton net named by the connection.
func (c *Connection) Net() string {
	if c.NetID != "" {
		return c.NetID
	}
	return c.ID
}

// Assignment is a committed chord in a region, owned by one connection.
type Assignment struct {
	Region     *Region
	Port1      *Port
	Port2      *Port
	Connection *Connection
}

// Net returns the net id of the owning connection.
func (a *Assignment) Net() string {
	return a.Connection.Net()
}

// Graph is the hydrated hypergraph: pointer-linked regions and ports with
// back-references in both directions.
type Graph struct {
	Regions []*Region
	Ports   []*Port

	regionByID map[string]*Region
	portByID   map[string]*Port
}

// RegionByID looks up a region by id.
func (g *Graph) RegionByID(id string) (*Region, bool) {
	r, ok := g.regionByID[id]
	return r, ok
}

// PortByID looks up a port by id.
func (g *Graph) PortByID(id string) (*Port, bool) {
	p, ok := g.portByID[id]
	return p, ok
}

// AllAssignments returns every committed assignment in the graph, grouped
// by region in region order.
func (g *Graph) AllAssignments() []*Assignment {
	var out []*Assignment
	for _, r := range g.Regions {
		out = append(out, r.Assignments...)
	}
	return out
}
