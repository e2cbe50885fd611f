// Package config holds the run configuration for the power grid map:
// input paths, map bounds, canvas size and styling. All fields have
// defaults; a JSON file overrides only the keys it names.
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
)

// Bounds is the geographic window projected onto the canvas,
// in decimal degrees.
type Bounds struct {
	LonMin float64 `json:"lon_min"`
	LonMax float64 `json:"lon_max"`
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
}

// Canvas is the output image size in pixels.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Style groups the drawing parameters for the three layers
// (boundary, connection lines, company markers) and the labels.
type Style struct {
	MapFill      HexColor `json:"map_fill"`
	MapAlpha     float64  `json:"map_alpha"`
	LineColor    HexColor `json:"line_color"`
	LineWidth    float64  `json:"line_width"`
	LineAlpha    float64  `json:"line_alpha"`
	MarkerColor  HexColor `json:"marker_color"`
	MarkerEdge   HexColor `json:"marker_edge"`
	MarkerAlpha  float64  `json:"marker_alpha"`
	LabelColor   HexColor `json:"label_color"`
	ShowCapacity bool     `json:"show_capacity"`
}

// Position is a company location override. Label is the ASCII name used
// for on-map annotation when no TrueType font is configured.
type Position struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// Config is the full run configuration.
type Config struct {
	CapacityCSV    string              `json:"capacity_csv"`
	ConnectionsCSV string              `json:"connections_csv"`
	CSVEncoding    string              `json:"csv_encoding"` // charset label, empty means UTF-8
	BoundaryURL    string              `json:"boundary_url"`
	BoundaryCache  string              `json:"boundary_cache"`
	FontPath       string              `json:"font_path"` // TrueType font for labels
	FontSize       float64             `json:"font_size"`
	Bounds         Bounds              `json:"bounds"`
	Canvas         Canvas              `json:"canvas"`
	Style          Style               `json:"style"`
	Positions      map[string]Position `json:"positions"` // merged over the built-in table
}

// Default returns the built-in configuration, matching the original
// nine-company map: Japan window lon 129..146, lat 30..46 on a
// 1400x1000 canvas.
func Default() Config {
	return Config{
		CapacityCSV:    "power_capacity.csv",
		ConnectionsCSV: "connections.csv",
		BoundaryURL:    "https://raw.githubusercontent.com/dataofjapan/land/master/japan.geojson",
		FontSize:       13,
		Bounds:         Bounds{LonMin: 129, LonMax: 146, LatMin: 30, LatMax: 46},
		Canvas:         Canvas{Width: 1400, Height: 1000},
		Style: Style{
			MapFill:      HexColor{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff}, // lightgray
			MapAlpha:     0.7,
			LineColor:    HexColor{B: 0xff, A: 0xff},
			LineWidth:    2,
			LineAlpha:    0.7,
			MarkerColor:  HexColor{R: 0xff, A: 0xff},
			MarkerEdge:   HexColor{A: 0xff},
			MarkerAlpha:  0.8,
			LabelColor:   HexColor{A: 0xff},
			ShowCapacity: true,
		},
	}
}

// Load reads a JSON configuration file and applies it over the defaults.
// A missing or invalid file is a configuration error: the caller asked
// for that file explicitly.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// HexColor is a color.NRGBA encoded in JSON as "#rrggbb" or "#rrggbbaa".
type HexColor color.NRGBA

func (c HexColor) NRGBA() color.NRGBA { return color.NRGBA(c) }

func (c *HexColor) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if len(s) == 0 || s[0] != '#' {
		return fmt.Errorf("config: invalid color %q", s)
	}
	var r, g, bb, a uint8
	a = 0xff
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &bb); err != nil {
			return fmt.Errorf("config: invalid color %q", s)
		}
	case 9:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &bb, &a); err != nil {
			return fmt.Errorf("config: invalid color %q", s)
		}
	default:
		return fmt.Errorf("config: invalid color %q", s)
	}
	*c = HexColor{R: r, G: g, B: bb, A: a}
	return nil
}

func (c HexColor) MarshalJSON() ([]byte, error) {
	if c.A != 0xff {
		return json.Marshal(fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A))
	}
	return json.Marshal(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
