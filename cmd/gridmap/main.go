// Command gridmap draws Japan's regional power grid on a map: nine
// power companies as capacity-scaled markers, their interconnections
// as lines, over the national boundary fetched from a public GeoJSON
// source. It also prints a tabular network report and a nominal
// impedance matrix.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/image/font"

	"powergridmap/config"
	"powergridmap/geodata"
	"powergridmap/gridmodel"
	"powergridmap/impedance"
	"powergridmap/mapcanvas"
	"powergridmap/render"
	"powergridmap/report"
)

const fetchTimeout = 30 * time.Second

var (
	capacityPath    = flag.String("capacity", "", "capacity CSV path (default from config)")
	connectionsPath = flag.String("connections", "", "connections CSV path (default from config)")
	configPath      = flag.String("config", "", "JSON configuration file")
	save            = flag.Bool("save", false, "save the map image")
	export          = flag.Bool("export", false, "export analysis results (JSON stats, impedance CSV)")
	outputDir       = flag.String("output", "output", "export output directory")
	outImage        = flag.String("out-image", "power_grid_map.png", "map image path for -save")
	noShow          = flag.Bool("no-show", false, "do not open the map in an image viewer")
	infoOnly        = flag.Bool("info-only", false, "print the report only, skip all drawing")
	logLevel        = flag.String("log-level", "info", "log level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
		logger.Info("loaded configuration", "path", *configPath)
	}
	if *capacityPath != "" {
		cfg.CapacityCSV = *capacityPath
	}
	if *connectionsPath != "" {
		cfg.ConnectionsCSV = *connectionsPath
	}

	grid, err := gridmodel.Load(gridmodel.LoadOptions{
		CapacityPath:   cfg.CapacityCSV,
		ConnectionPath: cfg.ConnectionsCSV,
		Encoding:       cfg.CSVEncoding,
		Positions:      positionTable(cfg),
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	matrix := impedance.Compute(grid)

	printer := report.Printer{W: os.Stdout}
	printer.Print(grid, matrix)

	if *export {
		if err := report.Export(*outputDir, grid, matrix); err != nil {
			return err
		}
		logger.Info("exported analysis results", "dir", *outputDir)
	}

	if *infoOnly {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	fetcher := geodata.Fetcher{
		URL:       cfg.BoundaryURL,
		CachePath: cfg.BoundaryCache,
		Logger:    logger,
	}
	boundary, err := fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("boundary data unavailable: %w", err)
	}

	var face font.Face
	if cfg.FontPath != "" {
		face, err = mapcanvas.LoadFace(cfg.FontPath, cfg.FontSize)
		if err != nil {
			return fmt.Errorf("load font: %w", err)
		}
	}

	r := render.Renderer{Config: cfg, Face: face, Logger: logger}
	return r.Run(grid, boundary, render.Options{
		Show:       !*noShow,
		Save:       *save,
		OutputPath: *outImage,
	})
}

// positionTable merges configured position overrides over the built-in
// nine-company table.
func positionTable(cfg config.Config) map[string]gridmodel.Position {
	table := make(map[string]gridmodel.Position, len(gridmodel.DefaultPositions))
	for name, pos := range gridmodel.DefaultPositions {
		table[name] = pos
	}
	for name, pos := range cfg.Positions {
		table[name] = gridmodel.Position{Lat: pos.Lat, Lon: pos.Lon, Label: pos.Label}
	}
	return table
}
