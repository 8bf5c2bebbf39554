package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"

	"github.com/gadsdencode/CivMap-sub000/config"
	"github.com/gadsdencode/CivMap-sub000/diagram"
	"github.com/gadsdencode/CivMap-sub000/geometry"
	"github.com/gadsdencode/CivMap-sub000/layout"
	"github.com/gadsdencode/CivMap-sub000/render"
	"github.com/gadsdencode/CivMap-sub000/station"
	"github.com/gadsdencode/CivMap-sub000/tui"
	"github.com/gadsdencode/CivMap-sub000/viewport"
)

//go:embed data/stations.yaml
var defaultDataset []byte

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive TUI mode")
		configPath  = flag.String("config", "", "Config file (YAML, defaults apply when omitted)")
		dataPath    = flag.String("data", "", "Station dataset (YAML, built-in dataset when omitted)")
		dbPath      = flag.String("db", "", "Station database (SQLite); read stations from here instead of YAML")
		importData  = flag.Bool("import", false, "Import the YAML dataset into -db and exit")
		outputFile  = flag.String("o", "", "Output file for SVG (default: stdout)")
		year        = flag.Int("year", 0, "Center the view on this year")
		zoom        = flag.Float64("zoom", 1, "Zoom level as a fraction of the canvas width (min..1)")
		help        = flag.Bool("help", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Renders a zoomable metro map of recorded history as SVG, or explores it in the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                         # Render the built-in dataset to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -o map.svg              # Render to a file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -zoom 0.2 -year 1450    # A fifth of the canvas, centered on 1450\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -data stations.yaml -i  # Explore a dataset interactively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db history.db -import -data stations.yaml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db history.db -o map.svg\n", os.Args[0])
	}

	flag.Parse()

	yearSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "year" {
			yearSet = true
		}
	})

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *importData {
		if *dbPath == "" {
			fmt.Fprintf(os.Stderr, "Error: -import requires -db\n")
			os.Exit(1)
		}
		if err := runImport(*dbPath, *dataPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing dataset: %v\n", err)
			os.Exit(1)
		}
		return
	}

	stations, err := loadStations(*dbPath, *dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading stations: %v\n", err)
		os.Exit(1)
	}

	engine, err := diagram.NewEngine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	lay := engine.Build(stations)

	if *interactive {
		viewer, err := tui.NewViewer(cfg, engine, lay)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting viewer: %v\n", err)
			os.Exit(1)
		}
		if err := viewer.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := renderSVG(cfg, engine, lay, *outputFile, *zoom, *year, yearSet); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadStations picks the station source: the database when -db is given,
// a YAML file when -data is given, the embedded dataset otherwise.
func loadStations(dbPath, dataPath string) ([]station.Station, error) {
	if dbPath != "" {
		store, err := station.OpenStore(dbPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.All(context.Background())
	}
	if dataPath != "" {
		return station.LoadFile(dataPath)
	}
	stations, err := station.Parse(defaultDataset)
	if err != nil {
		return nil, fmt.Errorf("built-in dataset: %w", err)
	}
	return stations, nil
}

// runImport replaces the database contents with the given dataset.
func runImport(dbPath, dataPath string) error {
	var stations []station.Station
	var err error
	if dataPath != "" {
		stations, err = station.LoadFile(dataPath)
	} else {
		stations, err = station.Parse(defaultDataset)
	}
	if err != nil {
		return err
	}
	store, err := station.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.ReplaceAll(context.Background(), stations); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Imported %d stations into %s\n", len(stations), dbPath)
	return nil
}

// renderSVG renders one frame of the map at the requested zoom and
// center and writes it out.
func renderSVG(cfg *config.Config, engine *diagram.Engine, lay *diagram.Layout, outputFile string, zoom float64, year int, yearSet bool) error {
	bounds := viewport.NewBounds(cfg)
	state := bounds.NewState()

	anchor := state.View.Center()
	if yearSet {
		anchor = geometry.Point{X: engine.Scale().YearToX(year), Y: cfg.Canvas.Height / 2}
	}
	// The initial view spans the whole canvas, so the requested zoom
	// fraction doubles as the zoom factor relative to it.
	state = bounds.ApplyZoomAt(state, zoom, anchor)
	if yearSet {
		state = bounds.ApplyCenterOn(state, anchor)
	}

	candidates := render.VisibleLabels(lay, state.View, state.ZoomLevel(bounds), state.PriorityFor)
	offsets := layout.NewLabeler(cfg).Place(candidates)
	svg := render.NewSVGRenderer(cfg).Render(lay, offsets, state.View)

	if outputFile == "" {
		_, err := os.Stdout.WriteString(svg)
		return err
	}
	if err := os.WriteFile(outputFile, []byte(svg), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}
	return nil
}
