// Package gridmodel builds the in-memory model of Japan's regional
// power grid: one node per power company, one undirected edge per
// declared interconnection. Data comes from two CSV tables with
// built-in fallbacks matching the nine historical regional companies.
package gridmodel

import (
	"log/slog"

	"gonum.org/v1/gonum/graph/simple"
)

// Position locates a company on the map. Label is the romanized name
// used for on-map annotation with the ASCII fallback font.
type Position struct {
	Lat, Lon float64
	Label    string
}

// CompanyNode is one regional power company: map position and
// generation capacity. Immutable after load.
type CompanyNode struct {
	Name       string // unique key, e.g. 東京
	Lat, Lon   float64
	Label      string // romanized name for rendering
	CapacityGW float64
}

// ConnectionEdge is an undirected interconnection between two
// companies, by name.
type ConnectionEdge struct {
	A, B string
}

// Grid holds the node and edge sets for one run. Edges keeps the rows
// as declared, duplicates included; the analysis graph deduplicates.
type Grid struct {
	Nodes []CompanyNode
	Edges []ConnectionEdge

	// Dropped lists connection rows skipped because an endpoint did not
	// resolve to a known company.
	Dropped []ConnectionEdge

	index map[string]int
	graph *simple.UndirectedGraph
}

// newGrid assembles a grid from resolved nodes and raw edges,
// validating every edge endpoint. Unknown endpoints drop the edge with
// a warning; the run continues with the remaining data.
func newGrid(nodes []CompanyNode, edges []ConnectionEdge, log *slog.Logger) *Grid {
	g := &Grid{
		Nodes: nodes,
		index: make(map[string]int, len(nodes)),
		graph: simple.NewUndirectedGraph(),
	}
	for i, n := range nodes {
		g.index[n.Name] = i
		g.graph.AddNode(simple.Node(i))
	}
	for _, e := range edges {
		ia, oka := g.index[e.A]
		ib, okb := g.index[e.B]
		if !oka || !okb {
			log.Warn("dropping connection with unknown company", "a", e.A, "b", e.B)
			g.Dropped = append(g.Dropped, e)
			continue
		}
		g.Edges = append(g.Edges, e)
		if ia != ib { // self loops stay in Edges but not in the graph
			g.graph.SetEdge(simple.Edge{F: simple.Node(ia), T: simple.Node(ib)})
		}
	}
	return g
}

// Node returns the company with the given name.
func (g *Grid) Node(name string) (CompanyNode, bool) {
	i, ok := g.index[name]
	if !ok {
		return CompanyNode{}, false
	}
	return g.Nodes[i], true
}

// Degree counts the edges incident to the named company in the
// declared edge list. Duplicate rows count twice, self loops count
// twice, matching the list the renderer draws.
func (g *Grid) Degree(name string) int {
	d := 0
	for _, e := range g.Edges {
		if e.A == name {
			d++
		}
		if e.B == name {
			d++
		}
	}
	return d
}

// TotalCapacity sums the generation capacity over all companies.
func (g *Grid) TotalCapacity() float64 {
	var total float64
	for _, n := range g.Nodes {
		total += n.CapacityGW
	}
	return total
}

// Graph exposes the deduplicated undirected graph for analysis. Node
// IDs are indices into Nodes.
func (g *Grid) Graph() *simple.UndirectedGraph { return g.graph }
