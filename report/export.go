package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"powergridmap/gridmodel"
	"powergridmap/impedance"
)

// exportedStats is the JSON document written by Export.
type exportedStats struct {
	Stats       gridmodel.NetworkStats     `json:"network_stats"`
	Capacity    map[string]float64         `json:"power_capacity"`
	Connections []gridmodel.ConnectionEdge `json:"connections"`
}

// Export writes the analysis artifacts into dir: network statistics as
// JSON and the impedance matrix as CSV.
func Export(dir string, g *gridmodel.Grid, m *impedance.Matrix) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	capacity := make(map[string]float64, len(g.Nodes))
	for _, n := range g.Nodes {
		capacity[n.Name] = n.CapacityGW
	}
	doc := exportedStats{
		Stats:       g.Stats(),
		Capacity:    capacity,
		Connections: g.Edges,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	statsPath := filepath.Join(dir, "network_statistics.json")
	if err := os.WriteFile(statsPath, raw, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return writeImpedanceCSV(filepath.Join(dir, "impedance_matrix.csv"), m)
}

func writeImpedanceCSV(path string, m *impedance.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{""}, m.Names...)); err != nil {
		return err
	}
	for i := 0; i < m.Dim(); i++ {
		row := make([]string, 0, m.Dim()+1)
		row = append(row, m.Names[i])
		for j := 0; j < m.Dim(); j++ {
			row = append(row, fmt.Sprintf("%g", m.At(i, j)))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
