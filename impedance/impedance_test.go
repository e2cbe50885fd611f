package impedance

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"powergridmap/gridmodel"
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

func TestComputeSymmetric(t *testing.T) {
	m := Compute(defaultGrid(t))

	assert.Equal(t, m.Dim(), 9)
	for i := 0; i < m.Dim(); i++ {
		assert.Equal(t, m.At(i, i), 0.0)
		for j := 0; j < m.Dim(); j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
		}
	}
}

func TestComputeConnectedPairs(t *testing.T) {
	g := defaultGrid(t)
	m := Compute(g)

	index := make(map[string]int, len(m.Names))
	for i, n := range m.Names {
		index[n] = i
	}

	// Every declared edge gets a positive impedance.
	for _, e := range g.Edges {
		i, j := index[e.A], index[e.B]
		assert.Assert(t, m.At(i, j) > 0, "%s-%s", e.A, e.B)
		assert.Assert(t, m.Connected(i, j))
	}

	// 北海道 and 九州 are not directly connected.
	assert.Equal(t, m.At(index["北海道"], index["九州"]), 0.0)
	assert.Assert(t, !m.Connected(index["北海道"], index["九州"]))
}

func TestComputeTwoCompanyScenario(t *testing.T) {
	dir := t.TempDir()
	capPath := filepath.Join(dir, "capacity.csv")
	conPath := filepath.Join(dir, "connections.csv")
	assert.NilError(t, os.WriteFile(capPath, []byte("東京,52.8\n関西,33.5\n"), 0o644))
	assert.NilError(t, os.WriteFile(conPath, []byte("東京,関西\n"), 0o644))

	g, err := gridmodel.Load(gridmodel.LoadOptions{CapacityPath: capPath, ConnectionPath: conPath, Logger: quietLogger()})
	assert.NilError(t, err)

	m := Compute(g)
	assert.Equal(t, m.Dim(), 2)
	assert.Equal(t, m.At(0, 0), 0.0)
	assert.Equal(t, m.At(1, 1), 0.0)
	assert.Assert(t, m.At(0, 1) > 0)
	assert.Equal(t, m.At(0, 1), m.At(1, 0))
}

func TestComputeDeterministic(t *testing.T) {
	g := defaultGrid(t)
	a := Compute(g)
	b := Compute(g)
	for i := 0; i < a.Dim(); i++ {
		for j := 0; j < a.Dim(); j++ {
			assert.Equal(t, a.At(i, j), b.At(i, j))
		}
	}
}

func TestDefaultFormulaMonotone(t *testing.T) {
	prev := 0.0
	for d := 0.0; d <= 20; d += 0.5 {
		z := Default(d)
		assert.Assert(t, z > 0)
		assert.Assert(t, z >= prev)
		prev = z
	}
	assert.Equal(t, Default(0), 0.05)
}

func TestComputeWithCustomFormula(t *testing.T) {
	g := defaultGrid(t)
	m := ComputeWith(g, func(float64) float64 { return 1.5 })

	index := make(map[string]int, len(m.Names))
	for i, n := range m.Names {
		index[n] = i
	}
	assert.Equal(t, m.At(index["東京"], index["中部"]), 1.5)
}
