package solver

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/ShiboSoftwareDev/hypergraph/internal/mesh"
)

// distanceMaps holds the unweighted region-hop distances used as the A*
// heuristic floor. The region adjacency graph (nodes are regions, edges are
// ports) is built once; per-end-region BFS results are computed lazily and
// never invalidated.
type distanceMaps struct {
	ug        *simple.UndirectedGraph
	idFor     map[*mesh.Region]int64
	regionFor map[int64]*mesh.Region
	byEnd     map[string]map[string]int
}

func newDistanceMaps(g *mesh.Graph) *distanceMaps {
	d := &distanceMaps{
		ug:        simple.NewUndirectedGraph(),
		idFor:     make(map[*mesh.Region]int64, len(g.Regions)),
		regionFor: make(map[int64]*mesh.Region, len(g.Regions)),
		byEnd:     make(map[string]map[string]int),
	}

	for i, r := range g.Regions {
		id := int64(i)
		d.idFor[r] = id
		d.regionFor[id] = r
		d.ug.AddNode(simple.Node(id))
	}
	for _, p := range g.Ports {
		f := d.idFor[p.Region1]
		t := d.idFor[p.Region2]
		if f != t && !d.ug.HasEdgeBetween(f, t) {
			d.ug.SetEdge(d.ug.NewEdge(simple.Node(f), simple.Node(t)))
		}
	}
	return d
}

// distances returns the hop distance of every reachable region to end,
// keyed by region id. The result is cached per end region.
func (d *distanceMaps) distances(end *mesh.Region) map[string]int {
	if m, ok := d.byEnd[end.ID]; ok {
		return m
	}

	m := make(map[string]int)
	if id, ok := d.idFor[end]; ok {
		bfs := traverse.BreadthFirst{}
		bfs.Walk(d.ug, simple.Node(id), func(n graph.Node, depth int) bool {
			m[d.regionFor[n.ID()].ID] = depth
			return false
		})
	}
	d.byEnd[end.ID] = m
	return m
}

// portDistance returns the minimum of the two incident regions' hop
// distances to end, and whether the port can reach end at all.
func (d *distanceMaps) portDistance(end *mesh.Region, p *mesh.Port) (int, bool) {
	m := d.distances(end)
	d1, ok1 := m[p.Region1.ID]
	d2, ok2 := m[p.Region2.ID]
	switch {
	case ok1 && ok2:
		if d2 < d1 {
			return d2, true
		}
		return d1, true
	case ok1:
		return d1, true
	case ok2:
		return d2, true
	}
	return 0, false
}
