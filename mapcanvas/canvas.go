// Package mapcanvas implements a raster drawing surface for the map,
// by wrapping rasterx. It exposes the three primitives the grid map
// needs (filled polygons, stroked polylines, circles) plus text.
package mapcanvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Point is a position in pixel coordinates.
type Point struct {
	X, Y float64
}

// Canvas draws onto an RGBA image. The filler and dasher are separate
// rasterx instances to avoid shared state between fill and stroke
// operations.
type Canvas struct {
	img    *image.RGBA
	filler *rasterx.Filler
	dasher *rasterx.Dasher
}

// New returns a canvas of the given pixel size with a white background.
func New(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Canvas{
		img:    img,
		filler: rasterx.NewFiller(width, height, scanner),
		dasher: rasterx.NewDasher(width, height, scanner),
	}
}

// Image returns the underlying image. The canvas keeps drawing into it.
func (c *Canvas) Image() *image.RGBA { return c.img }

func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// FillPolygon fills the closed ring with col at the given opacity.
// Rings with fewer than three points are ignored.
func (c *Canvas) FillPolygon(ring []Point, col color.Color, opacity float64) {
	if len(ring) < 3 {
		return
	}
	c.filler.Clear()
	c.filler.Start(toFixedP(ring[0].X, ring[0].Y))
	for _, p := range ring[1:] {
		c.filler.Line(toFixedP(p.X, p.Y))
	}
	c.filler.Stop(true)
	c.filler.SetColor(rasterx.ApplyOpacity(col, opacity))
	c.filler.Draw()
	c.filler.Clear()
}

// StrokeLine strokes a straight segment with round caps.
func (c *Canvas) StrokeLine(a, b Point, width float64, col color.Color, opacity float64) {
	c.dasher.Clear()
	c.dasher.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(4*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	c.dasher.Start(toFixedP(a.X, a.Y))
	c.dasher.Line(toFixedP(b.X, b.Y))
	c.dasher.Stop(false)
	c.dasher.SetColor(rasterx.ApplyOpacity(col, opacity))
	c.dasher.Draw()
	c.dasher.Clear()
}

// FillCircle fills a circle of radius r centered at (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color, opacity float64) {
	if r <= 0 {
		return
	}
	c.filler.Clear()
	rasterx.AddCircle(cx, cy, r, c.filler)
	c.filler.SetColor(rasterx.ApplyOpacity(col, opacity))
	c.filler.Draw()
	c.filler.Clear()
}

// StrokeCircle strokes the outline of a circle of radius r.
func (c *Canvas) StrokeCircle(cx, cy, r, width float64, col color.Color, opacity float64) {
	if r <= 0 {
		return
	}
	c.dasher.Clear()
	c.dasher.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(4*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	rasterx.AddCircle(cx, cy, r, c.dasher)
	c.dasher.SetColor(rasterx.ApplyOpacity(col, opacity))
	c.dasher.Draw()
	c.dasher.Clear()
}
