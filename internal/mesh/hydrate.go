package mesh

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ShiboSoftwareDev/hypergraph/pkg/geometry"
)

// SerializedRegion is the ID-based wire form of a region.
type SerializedRegion struct {
	RegionID           string             `json:"region_id"`
	Polygon            []geometry.Point2D `json:"polygon,omitempty"`
	Bounds             *geometry.Rect     `json:"bounds,omitempty"`
	Center             *geometry.Point2D  `json:"center,omitempty"`
	IsPad              bool               `json:"is_pad,omitempty"`
	IsThroughJumper    bool               `json:"is_through_jumper,omitempty"`
	IsViaRegion        bool               `json:"is_via_region,omitempty"`
	IsConnectionRegion bool               `json:"is_connection_region,omitempty"`
}

// SerializedPort is the ID-based wire form of a port.
type SerializedPort struct {
	PortID    string           `json:"port_id"`
	Region1ID string           `json:"region1_id"`
	Region2ID string           `json:"region2_id"`
	Position  geometry.Point2D `json:"position"`
}

// SerializedGraph bundles the wire forms of a whole hypergraph.
type SerializedGraph struct {
	Regions []SerializedRegion `json:"regions"`
	Ports   []SerializedPort   `json:"ports"`
}

// SerializedConnection is the ID-based wire form of a connection.
type SerializedConnection struct {
	ConnectionID string `json:"connection_id"`
	NetID        string `json:"mutually_connected_network_id,omitempty"`
	StartRegion  string `json:"start_region_id"`
	EndRegion    string `json:"end_region_id"`
}

// Hydrate resolves a serialized graph into pointer-linked structures.
// Pass one creates every region with an empty incidence list; pass two
// creates every port with direct references to its two regions and appends
// itself to each region's incidence list.
func Hydrate(sg SerializedGraph) (*Graph, error) {
	g := &Graph{
		Regions:    make([]*Region, 0, len(sg.Regions)),
		Ports:      make([]*Port, 0, len(sg.Ports)),
		regionByID: make(map[string]*Region, len(sg.Regions)),
		portByID:   make(map[string]*Port, len(sg.Ports)),
	}

	for _, sr := range sg.Regions {
		id := sr.RegionID
		if id == "" {
			id = "region-" + uuid.NewString()
		}
		if _, dup := g.regionByID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate region id %q", ErrMalformedGraph, id)
		}
		r := &Region{
			ID:                 id,
			Polygon:            sr.Polygon,
			Bounds:             sr.Bounds,
			IsPad:              sr.IsPad,
			IsThroughJumper:    sr.IsThroughJumper,
			IsViaRegion:        sr.IsViaRegion,
			IsConnectionRegion: sr.IsConnectionRegion,
		}
		r.Center = regionCenter(sr)
		g.Regions = append(g.Regions, r)
		g.regionByID[id] = r
	}

	for _, sp := range sg.Ports {
		id := sp.PortID
		if id == "" {
			id = "port-" + uuid.NewString()
		}
		if _, dup := g.portByID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate port id %q", ErrMalformedGraph, id)
		}
		r1, ok := g.regionByID[sp.Region1ID]
		if !ok {
			return nil, fmt.Errorf("%w: port %q references unknown region %q", ErrMalformedGraph, id, sp.Region1ID)
		}
		r2, ok := g.regionByID[sp.Region2ID]
		if !ok {
			return nil, fmt.Errorf("%w: port %q references unknown region %q", ErrMalformedGraph, id, sp.Region2ID)
		}
		if r1 == r2 {
			return nil, fmt.Errorf("%w: port %q bridges region %q to itself", ErrMalformedGraph, id, r1.ID)
		}
		p := &Port{
			ID:       id,
			Region1:  r1,
			Region2:  r2,
			Position: sp.Position,
		}
		r1.Ports = append(r1.Ports, p)
		r2.Ports = append(r2.Ports, p)
		g.Ports = append(g.Ports, p)
		g.portByID[id] = p
	}

	return g, nil
}

// NewGraph assembles a graph from already-hydrated regions and ports. Each
// region's incidence list is rebuilt from the ports, so hydrating a hydrated
// graph yields an equivalent graph.
func NewGraph(regions []*Region, ports []*Port) (*Graph, error) {
	g := &Graph{
		Regions:    regions,
		Ports:      ports,
		regionByID: make(map[string]*Region, len(regions)),
		portByID:   make(map[string]*Port, len(ports)),
	}

	for _, r := range regions {
		if r.ID == "" {
			r.ID = "region-" + uuid.NewString()
		}
		if _, dup := g.regionByID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate region id %q", ErrMalformedGraph, r.ID)
		}
		g.regionByID[r.ID] = r
		r.Ports = r.Ports[:0]
	}

	for _, p := range ports {
		if p.ID == "" {
			p.ID = "port-" + uuid.NewString()
		}
		if _, dup := g.portByID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate port id %q", ErrMalformedGraph, p.ID)
		}
		if p.Region1 == nil || p.Region2 == nil {
			return nil, fmt.Errorf("%w: port %q has a nil region reference", ErrMalformedGraph, p.ID)
		}
		if p.Region1 == p.Region2 {
			return nil, fmt.Errorf("%w: port %q bridges region %q to itself", ErrMalformedGraph, p.ID, p.Region1.ID)
		}
		for _, r := range []*Region{p.Region1, p.Region2} {
			if _, ok := g.regionByID[r.ID]; !ok {
				return nil, fmt.Errorf("%w: port %q references region %q outside the graph", ErrMalformedGraph, p.ID, r.ID)
			}
		}
		p.Region1.Ports = append(p.Region1.Ports, p)
		p.Region2.Ports = append(p.Region2.Ports, p)
		g.portByID[p.ID] = p
	}

	return g, nil
}

// HydrateConnections resolves serialized connections against a hydrated
// graph.
func HydrateConnections(g *Graph, scs []SerializedConnection) ([]*Connection, error) {
	conns := make([]*Connection, 0, len(scs))
	for _, sc := range scs {
		id := sc.ConnectionID
		if id == "" {
			id = "connection-" + uuid.NewString()
		}
		start, ok := g.regionByID[sc.StartRegion]
		if !ok {
			return nil, fmt.Errorf("%w: connection %q start region %q", ErrMissingRegion, id, sc.StartRegion)
		}
		end, ok := g.regionByID[sc.EndRegion]
		if !ok {
			return nil, fmt.Errorf("%w: connection %q end region %q", ErrMissingRegion, id, sc.EndRegion)
		}
		conns = append(conns, &Connection{
			ID:    id,
			NetID: sc.NetID,
			Start: start,
			End:   end,
		})
	}
	return conns, nil
}

// regionCenter picks the region center: the explicit value when given,
// otherwise the polygon centroid or the bounds center.
func regionCenter(sr SerializedRegion) geometry.Point2D {
	if sr.Center != nil {
		return *sr.Center
	}
	if len(sr.Polygon) > 0 {
		return geometry.Centroid(sr.Polygon)
	}
	if sr.Bounds != nil {
		return sr.Bounds.Center()
	}
	return geometry.Point2D{}
}
