package gridmodel

import (
	"math"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/topo"
)

// NetworkStats summarizes the grid topology. Computed on the
// deduplicated analysis graph; EdgeCount still counts declared rows.
type NetworkStats struct {
	NodeCount  int
	EdgeCount  int
	Density    float64
	Connected  bool
	Components int

	// Diameter is the longest shortest path in hops, -1 when the grid
	// is disconnected or trivial.
	Diameter int

	DegreeCentrality map[string]float64
	Betweenness      map[string]float64
}

// Stats computes the topology summary for the grid.
func (g *Grid) Stats() NetworkStats {
	n := len(g.Nodes)
	s := NetworkStats{
		NodeCount:        n,
		EdgeCount:        len(g.Edges),
		Diameter:         -1,
		DegreeCentrality: make(map[string]float64, n),
		Betweenness:      make(map[string]float64, n),
	}
	if n == 0 {
		return s
	}

	unique := g.graph.Edges().Len()
	if n > 1 {
		s.Density = 2 * float64(unique) / float64(n*(n-1))
	}

	comps := topo.ConnectedComponents(g.graph)
	s.Components = len(comps)
	s.Connected = len(comps) == 1

	for i, node := range g.Nodes {
		if n > 1 {
			s.DegreeCentrality[node.Name] = float64(g.graph.From(int64(i)).Len()) / float64(n-1)
		} else {
			s.DegreeCentrality[node.Name] = 0
		}
	}

	for id, v := range network.Betweenness(g.graph) {
		s.Betweenness[g.Nodes[id].Name] = v
	}
	// Betweenness omits nodes that lie on no shortest path.
	for _, node := range g.Nodes {
		if _, ok := s.Betweenness[node.Name]; !ok {
			s.Betweenness[node.Name] = 0
		}
	}

	if s.Connected && n > 1 {
		all := path.DijkstraAllPaths(g.graph)
		diameter := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				w := all.Weight(int64(i), int64(j))
				if math.IsInf(w, 1) {
					continue
				}
				if w > diameter {
					diameter = w
				}
			}
		}
		s.Diameter = int(diameter)
	}
	return s
}
