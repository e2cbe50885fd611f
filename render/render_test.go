package render

import (
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"powergridmap/config"
	"powergridmap/geodata"
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

func TestMarkerRadiusContract(t *testing.T) {
	prev := 0.0
	for c := 0.0; c <= 100; c += 0.5 {
		r := MarkerRadius(c)
		assert.Assert(t, r >= MinRadius, "capacity %.1f gave radius %.1f", c, r)
		assert.Assert(t, r <= MaxRadius, "capacity %.1f gave radius %.1f", c, r)
		assert.Assert(t, r >= prev, "radius must not decrease at capacity %.1f", c)
		prev = r
	}
	// Negative capacity clamps instead of producing NaN.
	assert.Equal(t, MarkerRadius(-3), float64(MinRadius))
}

func TestRenderDefaultGrid(t *testing.T) {
	r := Renderer{Config: config.Default(), Logger: quietLogger()}
	img := r.Render(defaultGrid(t), nil)

	assert.Equal(t, img.Bounds().Dx(), 1400)
	assert.Equal(t, img.Bounds().Dy(), 1000)

	// Tokyo projects to roughly (881, 644); its marker must be red.
	red, green, _, _ := img.At(881, 644).RGBA()
	assert.Assert(t, red > 0xe000, "expected red marker at Tokyo, got r=%#x", red)
	assert.Assert(t, green < 0x8000)

	// The sea east of the map stays white without a boundary layer.
	red, green, blue, _ := img.At(1390, 990).RGBA()
	assert.Assert(t, red == 0xffff && green == 0xffff && blue == 0xffff)
}

func TestRenderWithBoundary(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "boundary.geojson"))
	assert.NilError(t, err)
	boundary, err := geodata.Decode(raw)
	assert.NilError(t, err)

	r := Renderer{Config: config.Default(), Logger: quietLogger()}
	img := r.Render(defaultGrid(t), boundary)

	// The fixture polygon covers lon 132..142, lat 32..44: its center
	// (137, 38) must be shaded, not white.
	fx := (137.0 - 129) / 17 * 1400
	x := int(fx)
	y := int((46.0 - 38) / 16 * 1000)
	red, _, _, _ := img.At(x, y).RGBA()
	assert.Assert(t, red < 0xffff, "backdrop should shade the land area")
}

func TestRunSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.png")
	r := Renderer{Config: config.Default(), Logger: quietLogger()}
	err := r.Run(defaultGrid(t), nil, Options{Save: true, OutputPath: path})
	assert.NilError(t, err)

	f, err := os.Open(path)
	assert.NilError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	assert.NilError(t, err)
	assert.Equal(t, img.Bounds().Dx(), 1400)
}

func TestRunInfoOnlyDrawsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.png")
	r := Renderer{Config: config.Default(), Logger: quietLogger()}
	err := r.Run(defaultGrid(t), nil, Options{Save: true, OutputPath: path, InfoOnly: true})
	assert.NilError(t, err)

	_, err = os.Stat(path)
	assert.Assert(t, os.IsNotExist(err))
}

func TestRunNoFlagsWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.png")
	r := Renderer{Config: config.Default(), Logger: quietLogger()}
	err := r.Run(defaultGrid(t), nil, Options{OutputPath: path})
	assert.NilError(t, err)

	_, err = os.Stat(path)
	assert.Assert(t, os.IsNotExist(err))
}

func TestRenderCustomSizeFunc(t *testing.T) {
	calls := 0
	r := Renderer{
		Config: config.Default(),
		Size: func(capacityGW float64) float64 {
			calls++
			return 10
		},
		Logger: quietLogger(),
	}
	r.Render(defaultGrid(t), nil)
	assert.Equal(t, calls, 9)
}
