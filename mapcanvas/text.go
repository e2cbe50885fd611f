package mapcanvas

import (
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is the built-in bitmap face. ASCII only, which is why
// labels carry a romanized form.
func DefaultFace() font.Face { return basicfont.Face7x13 }

// LoadFace parses a TrueType/OpenType font file into a face of the
// given point size. Needed for rendering the Japanese company names.
func LoadFace(path string, size float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(raw)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// DrawText draws s with its baseline starting at (x, y).
func (c *Canvas) DrawText(x, y float64, s string, face font.Face, col color.Color) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(s)
}

// MeasureText returns the advance width of s in pixels.
func (c *Canvas) MeasureText(s string, face font.Face) float64 {
	d := font.Drawer{Face: face}
	return float64(d.MeasureString(s)) / 64
}
