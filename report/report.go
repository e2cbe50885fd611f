// Package report prints the console summary of the grid: capacities,
// connections, degrees, network statistics and the impedance matrix.
// Output goes to an injected writer and is deterministic, so repeated
// runs over the same grid produce byte-identical text.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"powergridmap/gridmodel"
	"powergridmap/impedance"
)

// Printer writes the report. W defaults to nothing: callers pass
// os.Stdout or a buffer.
type Printer struct {
	W io.Writer
}

// Print emits the full report for the grid and its impedance matrix.
func (p *Printer) Print(g *gridmodel.Grid, m *impedance.Matrix) {
	fmt.Fprintln(p.W, "=== Power Grid Network ===")
	p.printCapacities(g)
	p.printConnections(g)
	p.printDegrees(g)
	p.printStats(g)
	p.printImpedance(m)
}

// printCapacities lists companies by capacity, descending, with their
// share of the total.
func (p *Printer) printCapacities(g *gridmodel.Grid) {
	fmt.Fprintf(p.W, "\nGeneration capacity (%d companies)\n", len(g.Nodes))

	nodes := make([]gridmodel.CompanyNode, len(g.Nodes))
	copy(nodes, g.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].CapacityGW != nodes[j].CapacityGW {
			return nodes[i].CapacityGW > nodes[j].CapacityGW
		}
		return nodes[i].Name < nodes[j].Name
	})
	total := g.TotalCapacity()

	t := tablewriter.NewWriter(p.W)
	t.SetHeader([]string{"Company", "Capacity [GW]", "Share"})
	t.SetAutoFormatHeaders(false)
	for _, n := range nodes {
		share := 0.0
		if total > 0 {
			share = n.CapacityGW / total * 100
		}
		t.Append([]string{n.Name, fmt.Sprintf("%.1f", n.CapacityGW), fmt.Sprintf("%.1f%%", share)})
	}
	t.SetFooter([]string{"Total", fmt.Sprintf("%.1f", total), "100.0%"})
	t.Render()
}

func (p *Printer) printConnections(g *gridmodel.Grid) {
	fmt.Fprintf(p.W, "\nConnections (%d)\n", len(g.Edges))
	t := tablewriter.NewWriter(p.W)
	t.SetHeader([]string{"From", "To"})
	t.SetAutoFormatHeaders(false)
	for _, e := range g.Edges {
		t.Append([]string{e.A, e.B})
	}
	t.Render()
	if len(g.Dropped) > 0 {
		fmt.Fprintf(p.W, "Skipped %d connection(s) referencing unknown companies:\n", len(g.Dropped))
		for _, e := range g.Dropped {
			fmt.Fprintf(p.W, "  %s - %s\n", e.A, e.B)
		}
	}
}

// printDegrees lists each node's degree plus the overall distribution.
func (p *Printer) printDegrees(g *gridmodel.Grid) {
	fmt.Fprintln(p.W, "\nDegrees")
	t := tablewriter.NewWriter(p.W)
	t.SetHeader([]string{"Company", "Degree"})
	t.SetAutoFormatHeaders(false)

	dist := map[int]int{}
	for _, n := range g.Nodes {
		d := g.Degree(n.Name)
		dist[d]++
		t.Append([]string{n.Name, strconv.Itoa(d)})
	}
	t.Render()

	degrees := make([]int, 0, len(dist))
	for d := range dist {
		degrees = append(degrees, d)
	}
	sort.Ints(degrees)
	fmt.Fprint(p.W, "Degree distribution:")
	for _, d := range degrees {
		fmt.Fprintf(p.W, " %dx%d", dist[d], d)
	}
	fmt.Fprintln(p.W)
}

func (p *Printer) printStats(g *gridmodel.Grid) {
	s := g.Stats()
	fmt.Fprintln(p.W, "\nNetwork statistics")
	fmt.Fprintf(p.W, "  nodes: %d, edges: %d, density: %.3f\n", s.NodeCount, s.EdgeCount, s.Density)
	if s.Connected {
		fmt.Fprintf(p.W, "  connected, diameter: %d\n", s.Diameter)
	} else {
		fmt.Fprintf(p.W, "  disconnected (%d components)\n", s.Components)
	}

	names := sortedNames(g, s)
	fmt.Fprintln(p.W, "  degree centrality:")
	for _, n := range names {
		fmt.Fprintf(p.W, "    %s: %.3f\n", n, s.DegreeCentrality[n])
	}
	fmt.Fprintln(p.W, "  betweenness centrality:")
	for _, n := range names {
		fmt.Fprintf(p.W, "    %s: %.3f\n", n, s.Betweenness[n])
	}
}

// printImpedance writes the matrix with the company names on both
// axes. Unconnected off-diagonal pairs print as ∞, like the original.
func (p *Printer) printImpedance(m *impedance.Matrix) {
	fmt.Fprintln(p.W, "\nImpedance matrix [Ohm]")
	t := tablewriter.NewWriter(p.W)
	t.SetHeader(append([]string{""}, m.Names...))
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i := 0; i < m.Dim(); i++ {
		row := make([]string, 0, m.Dim()+1)
		row = append(row, m.Names[i])
		for j := 0; j < m.Dim(); j++ {
			if i != j && !m.Connected(i, j) {
				row = append(row, "∞")
				continue
			}
			row = append(row, fmt.Sprintf("%.3f", m.At(i, j)))
		}
		t.Append(row)
	}
	t.Render()
	fmt.Fprintln(p.W, "Note: ∞ marks company pairs with no direct interconnection.")
}

// sortedNames returns the company names ordered by their descending
// degree centrality, ties broken by name, matching the original's
// ranking output.
func sortedNames(g *gridmodel.Grid, s gridmodel.NetworkStats) []string {
	names := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		names[i] = n.Name
	}
	sort.SliceStable(names, func(i, j int) bool {
		a, b := s.DegreeCentrality[names[i]], s.DegreeCentrality[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	return names
}
