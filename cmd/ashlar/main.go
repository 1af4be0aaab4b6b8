// Command ashlar generates procedural building shell meshes and writes
// them as Wavefront OBJ. It builds a single parameterized building, a
// batch of seeded variations, or whatever a Lisp script describes.
//
// Usage:
//
//	ashlar -width 10 -depth 8 -floors 3 -profile storefront -out shell.obj
//	ashlar -count 12 -layout grid -columns 4 -seed 7 -out block.obj
//	ashlar -script city.lisp -out city.obj
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/chazu/ashlar/pkg/builder"
	"github.com/chazu/ashlar/pkg/geom"
	"github.com/chazu/ashlar/pkg/params"
	"github.com/chazu/ashlar/pkg/script"
)

func main() {
	var (
		out     = flag.String("out", "building.obj", "output OBJ path, - for stdout")
		verbose = flag.Bool("verbose", false, "debug logging")

		scriptPath = flag.String("script", "", "generate from a Lisp script instead of flags")

		count   = flag.Int("count", 1, "number of buildings (count > 1 runs the variation driver)")
		layout  = flag.String("layout", "row", "batch layout: row, grid, random")
		columns = flag.Int("columns", 4, "columns for grid layout")
		spacing = flag.Float64("spacing", 2.0, "gap between batch cells")
		area    = flag.Float64("area", 50.0, "ground extent for random layout")

		width       = flag.Float64("width", 8.0, "building width")
		depth       = flag.Float64("depth", 6.0, "building depth")
		floors      = flag.Int("floors", 2, "floor count")
		floorHeight = flag.Float64("floor-height", 3.5, "floor height")
		seed        = flag.Int64("seed", 0, "generation seed")

		profile     = flag.String("profile", "none", "interior profile: none, storefront, warehouse, residential, bar")
		windowSides = flag.String("window-sides", "all", "walls with windows")
		groundMode  = flag.String("ground-windows", "storefront", "ground floor window mode")
		fill        = flag.String("fill", "none", "interior fill: none, filled, partial, rubble_piles")
		flatRoof    = flag.Bool("roof", true, "flat roof")
		parapet     = flag.Bool("parapet", false, "roof parapet")
		pilasters   = flag.Bool("pilasters", false, "facade pilasters")
		patio       = flag.Bool("patio", false, "rooftop patio")
		patioSide   = flag.String("patio-side", "back", "patio side: back, front, left, right")
		damage      = flag.Float64("damage", 0.0, "damage amount, 0 disables")
		extRubble   = flag.Bool("exterior-rubble", false, "debris piles around the footprint")
	)
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	mesh, err := generate(genConfig{
		scriptPath: *scriptPath,
		count:      *count, layout: *layout, columns: *columns,
		spacing: *spacing, area: *area,
		width: *width, depth: *depth, floors: *floors,
		floorHeight: *floorHeight, seed: *seed,
		profile: *profile, windowSides: *windowSides, groundMode: *groundMode,
		fill: *fill, flatRoof: *flatRoof, parapet: *parapet,
		pilasters: *pilasters, patio: *patio, patioSide: *patioSide,
		damage: *damage, extRubble: *extRubble,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "ashlar:", err)
		os.Exit(1)
	}

	if err := writeOutput(*out, mesh); err != nil {
		fmt.Fprintln(os.Stderr, "ashlar:", err)
		os.Exit(1)
	}
}

type genConfig struct {
	scriptPath string

	count   int
	layout  string
	columns int
	spacing float64
	area    float64

	width, depth float64
	floors       int
	floorHeight  float64
	seed         int64
	profile      string
	windowSides  string
	groundMode   string
	fill         string
	flatRoof     bool
	parapet      bool
	pilasters    bool
	patio        bool
	patioSide    string
	damage       float64
	extRubble    bool
}

func generate(cfg genConfig) (*geom.Mesh, error) {
	if cfg.scriptPath != "" {
		return runScript(cfg.scriptPath)
	}
	if cfg.count > 1 {
		return runBatch(cfg)
	}

	b, err := buildingFromFlags(cfg)
	if err != nil {
		return nil, err
	}
	return builder.Build(b)
}

func buildingFromFlags(cfg genConfig) (params.Building, error) {
	b := params.Defaults()
	b.Width = cfg.width
	b.Depth = cfg.depth
	b.Floors = cfg.floors
	b.FloorHeight = cfg.floorHeight
	b.Seed = cfg.seed
	b.FlatRoof = cfg.flatRoof
	b.RoofParapet = cfg.parapet
	b.FacadePilasters = cfg.pilasters
	b.HasPatio = cfg.patio
	b.ExteriorRubble = cfg.extRubble
	if cfg.damage > 0 {
		b.EnableDamage = true
		b.DamageAmount = cfg.damage
	}

	var err error
	if b.BuildingProfile, err = params.ParseProfile(cfg.profile); err != nil {
		return b, err
	}
	if b.WindowSides, err = params.ParseWindowSides(cfg.windowSides); err != nil {
		return b, err
	}
	if b.GroundFloorWindows, err = params.ParseGroundWindows(cfg.groundMode); err != nil {
		return b, err
	}
	if b.InteriorFill, err = params.ParseFill(cfg.fill); err != nil {
		return b, err
	}
	if b.PatioSide, err = params.ParsePatioSide(cfg.patioSide); err != nil {
		return b, err
	}
	return b, nil
}

func runBatch(cfg genConfig) (*geom.Mesh, error) {
	r := params.DefaultRanges()
	r.BaseSeed = cfg.seed

	opts := builder.BatchOptions{
		Count:       cfg.count,
		GridColumns: cfg.columns,
		Spacing:     cfg.spacing,
		AreaSize:    cfg.area,
	}
	switch cfg.layout {
	case "row":
		opts.Layout = builder.LayoutRow
	case "grid":
		opts.Layout = builder.LayoutGrid
	case "random":
		opts.Layout = builder.LayoutRandom
	default:
		return nil, fmt.Errorf("unknown layout %q, expected row, grid, or random", cfg.layout)
	}

	placed, err := builder.GenerateBatch(r, opts)
	if err != nil {
		return nil, err
	}
	return builder.MergeBatch(placed), nil
}

func runScript(path string) (*geom.Mesh, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	eng := script.NewEngine()
	res, evalErrs, err := eng.Evaluate(string(src))
	if err != nil {
		return nil, err
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
		}
		return nil, fmt.Errorf("script failed with %d error(s)", len(evalErrs))
	}
	return builder.MergeBatch(res.Buildings), nil
}

func writeOutput(path string, m *geom.Mesh) error {
	if path == "-" {
		return geom.WriteOBJ(os.Stdout, m)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := geom.WriteOBJ(f, m); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
