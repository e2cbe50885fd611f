package gridmodel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// LoadOptions names the two tabular sources and how to read them.
// Zero values fall back to the built-in tables and UTF-8.
type LoadOptions struct {
	CapacityPath   string
	ConnectionPath string

	// Encoding is a charset label (e.g. "shift_jis") applied to both
	// CSV files. Empty means UTF-8.
	Encoding string

	// Positions resolves coordinates for CSV-loaded companies. Nil
	// means DefaultPositions.
	Positions map[string]Position

	Logger *slog.Logger
}

// Load builds a Grid from the configured CSV sources. A missing or
// unreadable file falls back to the built-in table with a warning, so
// the only hard failures are an unknown encoding label or a position
// table emptied by configuration.
func Load(opts LoadOptions) (*Grid, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	positions := opts.Positions
	if positions == nil {
		positions = DefaultPositions
	}

	nodes, err := loadCapacities(opts.CapacityPath, opts.Encoding, positions, log)
	if err != nil {
		return nil, err
	}
	edges, err := loadConnections(opts.ConnectionPath, opts.Encoding, log)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errors.New("gridmodel: no usable company rows and no fallback")
	}
	return newGrid(nodes, edges, log), nil
}

// loadCapacities reads (company, capacity GW) rows. Falls back to
// DefaultCompanies when the file is absent or unreadable.
func loadCapacities(path, encoding string, positions map[string]Position, log *slog.Logger) ([]CompanyNode, error) {
	rows, err := readCSV(path, encoding)
	if err != nil {
		if isEncodingErr(err) {
			return nil, err
		}
		log.Warn("capacity table unavailable, using built-in defaults", "path", path, "err", err)
		nodes := make([]CompanyNode, len(DefaultCompanies))
		copy(nodes, DefaultCompanies)
		return nodes, nil
	}
	log.Info("loaded capacity table", "path", path, "rows", len(rows))

	var nodes []CompanyNode
	for i, row := range rows {
		if len(row) < 2 {
			log.Warn("capacity row too short, skipping", "row", i+1)
			continue
		}
		name := strings.TrimSpace(row[0])
		capGW, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			log.Warn("capacity value not numeric, skipping", "row", i+1, "company", name)
			continue
		}
		pos, ok := positions[name]
		if !ok {
			log.Warn("company has no known position, skipping", "company", name)
			continue
		}
		nodes = append(nodes, CompanyNode{
			Name:       name,
			Lat:        pos.Lat,
			Lon:        pos.Lon,
			Label:      pos.Label,
			CapacityGW: capGW,
		})
	}
	return nodes, nil
}

// loadConnections reads (company, company) rows. Falls back to
// DefaultConnections when the file is absent or unreadable. Endpoint
// validation happens later against the loaded node set.
func loadConnections(path, encoding string, log *slog.Logger) ([]ConnectionEdge, error) {
	rows, err := readCSV(path, encoding)
	if err != nil {
		if isEncodingErr(err) {
			return nil, err
		}
		log.Warn("connection table unavailable, using built-in defaults", "path", path, "err", err)
		edges := make([]ConnectionEdge, len(DefaultConnections))
		copy(edges, DefaultConnections)
		return edges, nil
	}
	log.Info("loaded connection table", "path", path, "rows", len(rows))

	var edges []ConnectionEdge
	for i, row := range rows {
		if len(row) < 2 {
			log.Warn("connection row too short, skipping", "row", i+1)
			continue
		}
		a := strings.TrimSpace(row[0])
		b := strings.TrimSpace(row[1])
		if i == 0 && looksLikeHeader(a, b) {
			continue
		}
		edges = append(edges, ConnectionEdge{A: a, B: b})
	}
	return edges, nil
}

// errEncoding marks an unresolvable charset label; unlike a missing
// file this is a configuration error, not a fallback case.
var errEncoding = errors.New("gridmodel: unknown encoding label")

func isEncodingErr(err error) bool { return errors.Is(err, errEncoding) }

// readCSV reads all records from path, decoding through the charset
// label when one is set.
func readCSV(path, encoding string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src io.Reader = f
	if encoding != "" {
		src, err = charset.NewReaderLabel(encoding, f)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", errEncoding, encoding, err)
		}
	}
	r := csv.NewReader(src)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// looksLikeHeader reports whether a connection row repeats the original
// CSV column names rather than naming companies.
func looksLikeHeader(a, b string) bool {
	return strings.Contains(a, "電力会社") || strings.EqualFold(a, "company_a") ||
		strings.Contains(b, "電力会社") || strings.EqualFold(b, "company_b")
}
