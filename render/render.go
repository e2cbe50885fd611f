// Package render composes the power grid figure: Japan boundary as
// backdrop, one line per interconnection, one capacity-scaled marker
// per company, labels beside the markers.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/font"

	"powergridmap/config"
	"powergridmap/geodata"
	"powergridmap/gridmodel"
	"powergridmap/mapcanvas"
)

// Options selects what happens with the rendered figure. The flags are
// independent and combinable.
type Options struct {
	Show       bool   // open the saved image in the platform viewer
	Save       bool   // write the image to OutputPath
	OutputPath string // defaults to power_grid_map.png
	InfoOnly   bool   // skip all drawing
}

// SizeFunc maps generation capacity in GW to a marker radius in
// pixels. Implementations must be monotonically non-decreasing and
// return values inside a positive bound.
type SizeFunc func(capacityGW float64) float64

// Marker radius bounds in pixels.
const (
	MinRadius = 6
	MaxRadius = 42
)

// MarkerRadius is the default SizeFunc: marker area grows linearly
// with capacity (radius with its square root), normalized to 14 px at
// 10 GW and clamped to [MinRadius, MaxRadius].
func MarkerRadius(capacityGW float64) float64 {
	if capacityGW < 0 {
		capacityGW = 0
	}
	r := 14 * math.Sqrt(capacityGW/10)
	if r < MinRadius {
		return MinRadius
	}
	if r > MaxRadius {
		return MaxRadius
	}
	return r
}

// projection maps lon/lat onto pixel coordinates, equirectangular
// within the configured window, y growing southward.
type projection struct {
	bounds config.Bounds
	w, h   float64
}

func (p projection) at(lat, lon float64) mapcanvas.Point {
	return mapcanvas.Point{
		X: (lon - p.bounds.LonMin) / (p.bounds.LonMax - p.bounds.LonMin) * p.w,
		Y: (p.bounds.LatMax - lat) / (p.bounds.LatMax - p.bounds.LatMin) * p.h,
	}
}

// Renderer draws the grid. Zero-value fields fall back to the default
// configuration, size function and bitmap face.
type Renderer struct {
	Config config.Config
	Size   SizeFunc
	Face   font.Face
	Logger *slog.Logger
}

// Render composes the figure and returns the image. A nil boundary
// skips the backdrop; the grid layers are always drawn.
func (r *Renderer) Render(grid *gridmodel.Grid, boundary *geodata.Boundary) *image.RGBA {
	cfg := r.Config
	if cfg.Canvas.Width == 0 || cfg.Canvas.Height == 0 {
		cfg = config.Default()
	}
	size := r.Size
	if size == nil {
		size = MarkerRadius
	}
	face := r.Face
	if face == nil {
		face = mapcanvas.DefaultFace()
	}

	c := mapcanvas.New(cfg.Canvas.Width, cfg.Canvas.Height)
	proj := projection{bounds: cfg.Bounds, w: float64(cfg.Canvas.Width), h: float64(cfg.Canvas.Height)}
	style := cfg.Style

	// Backdrop first, then lines, then markers, so the markers sit on top.
	if boundary != nil {
		for _, poly := range boundary.Polygons {
			if len(poly) == 0 {
				continue
			}
			outer := poly[0] // outer ring only, holes are invisible at this scale
			ring := make([]mapcanvas.Point, len(outer))
			for i, pt := range outer {
				ring[i] = proj.at(pt.Lat(), pt.Lon())
			}
			c.FillPolygon(ring, style.MapFill.NRGBA(), style.MapAlpha)
		}
	}

	for _, e := range grid.Edges {
		a, okA := grid.Node(e.A)
		b, okB := grid.Node(e.B)
		if !okA || !okB {
			continue
		}
		c.StrokeLine(proj.at(a.Lat, a.Lon), proj.at(b.Lat, b.Lon),
			style.LineWidth, style.LineColor.NRGBA(), style.LineAlpha)
	}

	for _, n := range grid.Nodes {
		pt := proj.at(n.Lat, n.Lon)
		radius := size(n.CapacityGW)
		c.FillCircle(pt.X, pt.Y, radius, style.MarkerColor.NRGBA(), style.MarkerAlpha)
		c.StrokeCircle(pt.X, pt.Y, radius, 2, style.MarkerEdge.NRGBA(), 1)

		label := n.Label
		if label == "" {
			label = n.Name
		}
		if style.ShowCapacity {
			label = fmt.Sprintf("%s %.1fGW", label, n.CapacityGW)
		}
		c.DrawText(pt.X+radius+3, pt.Y-radius-3, label, face, style.LabelColor.NRGBA())
	}

	return c.Image()
}

// Run renders per the options: encodes a PNG when saving or showing,
// and launches the platform image viewer for Show. InfoOnly skips
// everything.
func (r *Renderer) Run(grid *gridmodel.Grid, boundary *geodata.Boundary, opts Options) error {
	if opts.InfoOnly {
		return nil
	}
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	img := r.Render(grid, boundary)

	path := opts.OutputPath
	if path == "" {
		path = "power_grid_map.png"
	}
	if opts.Save || opts.Show {
		if err := SavePNG(img, path); err != nil {
			return err
		}
		log.Info("wrote map image", "path", path)
	}
	if opts.Show {
		if err := openViewer(path); err != nil {
			return fmt.Errorf("open viewer for %s: %w", path, err)
		}
	}
	return nil
}

// SavePNG encodes the image and writes it to path.
func SavePNG(img image.Image, path string) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
