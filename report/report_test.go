package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"powergridmap/gridmodel"
	"powergridmap/impedance"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultGrid(t *testing.T) *gridmodel.Grid {
	t.Helper()
	g, err := gridmodel.Load(gridmodel.LoadOptions{
		CapacityPath:   "missing.csv",
		ConnectionPath: "missing.csv",
		Logger:         quietLogger(),
	})
	assert.NilError(t, err)
	return g
}

func TestPrintContainsAllSections(t *testing.T) {
	g := defaultGrid(t)
	m := impedance.Compute(g)

	var buf bytes.Buffer
	p := Printer{W: &buf}
	p.Print(g, m)
	out := buf.String()

	assert.Assert(t, strings.Contains(out, "Generation capacity (9 companies)"))
	assert.Assert(t, strings.Contains(out, "Connections (9)"))
	assert.Assert(t, strings.Contains(out, "Degrees"))
	assert.Assert(t, strings.Contains(out, "Network statistics"))
	assert.Assert(t, strings.Contains(out, "Impedance matrix [Ohm]"))

	for _, name := range []string{"北海道", "東北", "東京", "中部", "北陸", "関西", "中国", "四国", "九州"} {
		assert.Assert(t, strings.Contains(out, name), name)
	}

	// Largest capacity leads the sorted table.
	tokyoIdx := strings.Index(out, "東京")
	hokkaidoIdx := strings.Index(out, "北海道")
	assert.Assert(t, tokyoIdx < hokkaidoIdx)

	// Unconnected pairs print as infinity.
	assert.Assert(t, strings.Contains(out, "∞"))
	assert.Assert(t, strings.Contains(out, "189.8"))
}

func TestPrintIdempotent(t *testing.T) {
	g := defaultGrid(t)
	m := impedance.Compute(g)

	var a, b bytes.Buffer
	(&Printer{W: &a}).Print(g, m)
	(&Printer{W: &b}).Print(g, m)

	assert.Assert(t, bytes.Equal(a.Bytes(), b.Bytes()), "report output must be byte-identical across runs")
}

func TestPrintReportsDroppedConnections(t *testing.T) {
	dir := t.TempDir()
	capPath := filepath.Join(dir, "capacity.csv")
	conPath := filepath.Join(dir, "connections.csv")
	assert.NilError(t, os.WriteFile(capPath, []byte("東京,52.8\n関西,33.5\n"), 0o644))
	assert.NilError(t, os.WriteFile(conPath, []byte("東京,関西\n東京,沖縄\n"), 0o644))

	g, err := gridmodel.Load(gridmodel.LoadOptions{CapacityPath: capPath, ConnectionPath: conPath, Logger: quietLogger()})
	assert.NilError(t, err)

	var buf bytes.Buffer
	(&Printer{W: &buf}).Print(g, impedance.Compute(g))
	out := buf.String()

	assert.Assert(t, strings.Contains(out, "Skipped 1 connection(s)"))
	assert.Assert(t, strings.Contains(out, "沖縄"))
}

func TestExport(t *testing.T) {
	g := defaultGrid(t)
	m := impedance.Compute(g)

	dir := filepath.Join(t.TempDir(), "out")
	assert.NilError(t, Export(dir, g, m))

	raw, err := os.ReadFile(filepath.Join(dir, "network_statistics.json"))
	assert.NilError(t, err)
	var doc struct {
		Stats       gridmodel.NetworkStats     `json:"network_stats"`
		Capacity    map[string]float64         `json:"power_capacity"`
		Connections []gridmodel.ConnectionEdge `json:"connections"`
	}
	assert.NilError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, doc.Stats.NodeCount, 9)
	assert.Equal(t, doc.Capacity["東京"], 52.8)
	assert.Equal(t, len(doc.Connections), 9)

	f, err := os.Open(filepath.Join(dir, "impedance_matrix.csv"))
	assert.NilError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	assert.NilError(t, err)
	assert.Equal(t, len(rows), 10) // header + nine companies
	assert.Equal(t, len(rows[0]), 10)
	assert.Equal(t, rows[1][1], "0") // zero diagonal
}
