// Package geodata supplies the Japan boundary shape used as the map
// backdrop. The shape comes from a public GeoJSON resource, fetched
// once per run with no retry; a local cache file can stand in when the
// network is unavailable.
package geodata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DefaultURL is the dataofjapan land boundary dataset.
const DefaultURL = "https://raw.githubusercontent.com/dataofjapan/land/master/japan.geojson"

// Boundary is the decoded backdrop shape: one entry per polygon, with
// MultiPolygon features flattened.
type Boundary struct {
	Polygons []orb.Polygon
}

// Fetcher retrieves and decodes the boundary.
type Fetcher struct {
	URL       string // empty means DefaultURL
	CachePath string // optional local fallback
	Client    *http.Client
	Logger    *slog.Logger
}

// Fetch performs a single GET of the boundary resource. On failure it
// falls back to the cache file when one is configured; otherwise the
// error is returned for the caller to surface.
func (f *Fetcher) Fetch(ctx context.Context) (*Boundary, error) {
	url := f.URL
	if url == "" {
		url = DefaultURL
	}
	log := f.Logger
	if log == nil {
		log = slog.Default()
	}

	b, err := f.fetchRemote(ctx, url)
	if err == nil {
		return b, nil
	}
	if f.CachePath == "" {
		return nil, err
	}
	log.Warn("boundary fetch failed, trying local cache", "url", url, "err", err, "cache", f.CachePath)
	b, cacheErr := ReadFile(f.CachePath)
	if cacheErr != nil {
		return nil, fmt.Errorf("fetch %s: %w (cache %s also failed: %v)", url, err, f.CachePath, cacheErr)
	}
	return b, nil
}

func (f *Fetcher) fetchRemote(ctx context.Context, url string) (*Boundary, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	b, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return b, nil
}

// ReadFile decodes a boundary from a local GeoJSON file.
func ReadFile(path string) (*Boundary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return b, nil
}

// Decode parses GeoJSON bytes into a Boundary, keeping Polygon and
// MultiPolygon features and ignoring everything else.
func Decode(raw []byte) (*Boundary, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, err
	}
	b := &Boundary{}
	for _, feat := range fc.Features {
		switch geom := feat.Geometry.(type) {
		case orb.Polygon:
			b.Polygons = append(b.Polygons, geom)
		case orb.MultiPolygon:
			b.Polygons = append(b.Polygons, geom...)
		}
	}
	if len(b.Polygons) == 0 {
		return nil, fmt.Errorf("geodata: no polygon features in %d features", len(fc.Features))
	}
	return b, nil
}
