package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShiboSoftwareDev/hypergraph/pkg/geometry"
)

func twoRegionGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := Hydrate(SerializedGraph{
		Regions: []SerializedRegion{
			{RegionID: "A", Bounds: &geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10}},
			{RegionID: "B", Bounds: &geometry.Rect{X: 10, Y: 0, Width: 10, Height: 10}},
		},
		Ports: []SerializedPort{
			{PortID: "p", Region1ID: "A", Region2ID: "B", Position: geometry.Point2D{X: 10, Y: 5}},
		},
	})
	require.NoError(t, err)
	return g
}

func TestHydrateBuildsBackReferences(t *testing.T) {
	g := twoRegionGraph(t)

	a, ok := g.RegionByID("A")
	require.True(t, ok)
	b, ok := g.RegionByID("B")
	require.True(t, ok)
	p, ok := g.PortByID("p")
	require.True(t, ok)

	assert.Equal(t, []*Port{p}, a.Ports)
	assert.Equal(t, []*Port{p}, b.Ports)
	assert.Same(t, a, p.Region1)
	assert.Same(t, b, p.Region2)
	assert.Same(t, b, p.Other(a))
	assert.Same(t, a, p.Other(b))
	assert.Nil(t, p.Other(&Region{ID: "elsewhere"}))
}

func TestHydrateUnknownRegion(t *testing.T) {
	_, err := Hydrate(SerializedGraph{
		Regions: []SerializedRegion{{RegionID: "A"}},
		Ports: []SerializedPort{
			{PortID: "p", Region1ID: "A", Region2ID: "nope"},
		},
	})
	assert.ErrorIs(t, err, ErrMalformedGraph)
}

func TestHydrateSelfBridgingPort(t *testing.T) {
	_, err := Hydrate(SerializedGraph{
		Regions: []SerializedRegion{{RegionID: "A"}},
		Ports: []SerializedPort{
			{PortID: "p", Region1ID: "A", Region2ID: "A"},
		},
	})
	assert.ErrorIs(t, err, ErrMalformedGraph)
}

func TestHydrateGeneratesMissingIDs(t *testing.T) {
	g, err := Hydrate(SerializedGraph{
		Regions: []SerializedRegion{
			{Bounds: &geometry.Rect{Width: 1, Height: 1}},
			{Bounds: &geometry.Rect{X: 1, Width: 1, Height: 1}},
		},
	})
	require.NoError(t, err)
	require.Len(t, g.Regions, 2)
	assert.NotEmpty(t, g.Regions[0].ID)
	assert.NotEmpty(t, g.Regions[1].ID)
	assert.NotEqual(t, g.Regions[0].ID, g.Regions[1].ID)
}

func TestHydrateIdempotent(t *testing.T) {
	g := twoRegionGraph(t)

	// Re-hydrating the already-hydrated structures yields an equivalent
	// graph: same regions, ports, and incidences.
	g2, err := NewGraph(g.Regions, g.Ports)
	require.NoError(t, err)

	assert.Equal(t, len(g.Regions), len(g2.Regions))
	assert.Equal(t, len(g.Ports), len(g2.Ports))
	a, _ := g2.RegionByID("A")
	b, _ := g2.RegionByID("B")
	p, _ := g2.PortByID("p")
	assert.Equal(t, []*Port{p}, a.Ports)
	assert.Equal(t, []*Port{p}, b.Ports)
}

func TestHydrateConnections(t *testing.T) {
	g := twoRegionGraph(t)

	conns, err := HydrateConnections(g, []SerializedConnection{
		{ConnectionID: "c1", NetID: "net1", StartRegion: "A", EndRegion: "B"},
	})
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, "net1", conns[0].Net())
	assert.Same(t, g.Regions[0], conns[0].Start)
	assert.Same(t, g.Regions[1], conns[0].End)

	_, err = HydrateConnections(g, []SerializedConnection{
		{ConnectionID: "c2", StartRegion: "A", EndRegion: "missing"},
	})
	assert.ErrorIs(t, err, ErrMissingRegion)
}

func TestConnectionNetDefaultsToID(t *testing.T) {
	c := &Connection{ID: "c9"}
	assert.Equal(t, "c9", c.Net())
}

func TestRegionCenterDerivation(t *testing.T) {
	g, err := Hydrate(SerializedGraph{
		Regions: []SerializedRegion{
			{RegionID: "poly", Polygon: []geometry.Point2D{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}},
			{RegionID: "rect", Bounds: &geometry.Rect{X: 2, Y: 2, Width: 6, Height: 2}},
			{RegionID: "explicit", Bounds: &geometry.Rect{Width: 1, Height: 1},
				Center: &geometry.Point2D{X: 9, Y: 9}},
		},
	})
	require.NoError(t, err)

	poly, _ := g.RegionByID("poly")
	rect, _ := g.RegionByID("rect")
	explicit, _ := g.RegionByID("explicit")
	assert.Equal(t, geometry.Point2D{X: 2, Y: 2}, poly.Center)
	assert.Equal(t, geometry.Point2D{X: 5, Y: 3}, rect.Center)
	assert.Equal(t, geometry.Point2D{X: 9, Y: 9}, explicit.Center)
}

func TestRegionOutlineMalformed(t *testing.T) {
	r := &Region{ID: "bare"}
	_, err := r.Outline()
	assert.ErrorIs(t, err, ErrMalformedGraph)

	p := &Port{ID: "p", Region1: r, Region2: &Region{ID: "other"}}
	_, err = p.PerimeterT(&Region{ID: "stranger"})
	assert.ErrorIs(t, err, ErrMalformedGraph)
}

func TestPortPerimeterTCached(t *testing.T) {
	g := twoRegionGraph(t)
	a, _ := g.RegionByID("A")
	p, _ := g.PortByID("p")

	first, err := p.PerimeterT(a)
	require.NoError(t, err)
	second, err := p.PerimeterT(a)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Port sits mid-way down the right edge of A's 10x10 bounds.
	assert.InDelta(t, 15.0, first, 1e-9)
}
