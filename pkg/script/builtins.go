package script

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/ashlar/pkg/builder"
	"github.com/chazu/ashlar/pkg/params"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix marks keyword names rewritten by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites the script before zygomys sees it:
//
//  1. :keyword -> "__kw_keyword" string literals, so keywords need no
//     global symbol registration and cannot collide with user
//     variables.
//  2. ; line comments -> // comments, zygomys's comment syntax.
//  3. kebab-case identifiers -> underscore form (flat-roof ->
//     flat_roof) outside strings, since zygomys reads a bare hyphen as
//     subtraction.
//
// String literal boundaries and comments are respected throughout.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) {
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

type kwArgs struct {
	kw    map[string]zygo.Sexp
	order []string
}

// parseArgs collects keyword/value pairs. A trailing keyword with no
// value is a flag bound to null.
func parseArgs(args []zygo.Sexp) (kwArgs, error) {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			return result, fmt.Errorf("expected keyword, got %s", args[i].SexpString(nil))
		}
		result.order = append(result.order, name)
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Value extraction
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %s", s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %s", s.SexpString(nil))
}

// toName accepts a keyword (:storefront) or a plain string
// ("storefront") and returns the bare name. Kebab keywords normalize
// to the underscore form the parsers use (:front-back -> front_back).
func toName(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %s", s.SexpString(nil))
	}
	name := str.S
	if strings.HasPrefix(name, kwPrefix) {
		name = name[len(kwPrefix):]
	}
	return strings.ReplaceAll(name, "-", "_"), nil
}

// ---------------------------------------------------------------------------
// Sexp wrappers
// ---------------------------------------------------------------------------

// sexpBuilding is returned by (building ...) so scripts can see what
// they generated.
type sexpBuilding struct {
	index int
	b     params.Building
}

func (s *sexpBuilding) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(building %d %gx%gx%d)", s.index, s.b.Width, s.b.Depth, s.b.Floors)
}
func (s *sexpBuilding) Type() *zygo.RegisteredType { return nil }

// sexpBatch is returned by (batch ...).
type sexpBatch struct {
	count int
}

func (s *sexpBatch) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(batch %d)", s.count)
}
func (s *sexpBatch) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the DSL functions. They append generated
// buildings to result as a side effect of evaluation.
func registerBuiltins(env *zygo.Zlisp, result *Result) {

	// -------------------------------------------------------------------
	// (building :width 8 :depth 6 :floors 2 :profile :storefront
	//           :damage true :damage-amount 0.4 :seed 42)
	// -------------------------------------------------------------------
	env.AddFunction("building", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa, err := parseArgs(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("building: %w", err)
		}

		b := params.Defaults()
		for _, key := range pa.order {
			if err := applyBuildingArg(&b, key, pa.kw[key]); err != nil {
				return zygo.SexpNull, fmt.Errorf("building: %w", err)
			}
		}

		m, err := builder.Build(b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("building: %w", err)
		}

		index := len(result.Buildings)
		result.Buildings = append(result.Buildings, builder.Placed{
			Index:  index,
			Params: b,
			Mesh:   m,
		})
		return &sexpBuilding{index: index, b: b}, nil
	})

	// -------------------------------------------------------------------
	// (batch :count 5 :seed 42 :layout :grid :columns 3 :spacing 2
	//        :width-min 6 :width-max 12 :profile :residential)
	// -------------------------------------------------------------------
	env.AddFunction("batch", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa, err := parseArgs(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("batch: %w", err)
		}

		ranges := params.DefaultRanges()
		opts := builder.BatchOptions{Count: 1, Layout: builder.LayoutRow, Spacing: 2, AreaSize: 50}
		for _, key := range pa.order {
			if err := applyBatchArg(&ranges, &opts, key, pa.kw[key]); err != nil {
				return zygo.SexpNull, fmt.Errorf("batch: %w", err)
			}
		}

		placed, err := builder.GenerateBatch(ranges, opts)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("batch: %w", err)
		}
		for _, p := range placed {
			p.Index = len(result.Buildings)
			result.Buildings = append(result.Buildings, p)
		}
		return &sexpBatch{count: len(placed)}, nil
	})
}

// applyBuildingArg sets one parameter field from a keyword argument.
func applyBuildingArg(b *params.Building, key string, v zygo.Sexp) error {
	var err error
	switch key {
	case "width":
		b.Width, err = toFloat64(v)
	case "depth":
		b.Depth, err = toFloat64(v)
	case "floors":
		b.Floors, err = toInt(v)
	case "floor-height":
		b.FloorHeight, err = toFloat64(v)
	case "wall-thickness":
		b.WallThickness, err = toFloat64(v)

	case "window-width":
		b.WindowWidth, err = toFloat64(v)
	case "window-height":
		b.WindowHeight, err = toFloat64(v)
	case "windows-per-floor":
		b.WindowsPerFloor, err = toInt(v)
	case "window-spacing":
		b.WindowSpacing, err = toFloat64(v)
	case "sill-height":
		b.SillHeight, err = toFloat64(v)
	case "window-sides":
		b.WindowSides, err = parseName(v, params.ParseWindowSides)

	case "ground-windows":
		b.GroundFloorWindows, err = parseName(v, params.ParseGroundWindows)
	case "ground-window-count":
		b.GroundFloorWindowCount, err = toInt(v)
	case "storefront-window-width":
		b.StorefrontWindowWidth, err = toFloat64(v)
	case "storefront-window-height":
		b.StorefrontWindowHeight, err = toFloat64(v)
	case "storefront-sill":
		b.StorefrontSillHeight, err = toFloat64(v)

	case "door-width":
		b.DoorWidth, err = toFloat64(v)
	case "door-height":
		b.DoorHeight, err = toFloat64(v)
	case "front-door-offset":
		b.FrontDoorOffset, err = toFloat64(v)
	case "back-exit":
		b.BackExit, err = toBool(v)
	case "back-door-offset":
		b.BackDoorOffset, err = toFloat64(v)

	case "flat-roof":
		b.FlatRoof, err = toBool(v)
	case "floor-slabs":
		b.FloorSlabs, err = toBool(v)

	case "pilasters":
		b.FacadePilasters, err = toBool(v)
	case "pilaster-width":
		b.PilasterWidth, err = toFloat64(v)
	case "pilaster-depth":
		b.PilasterDepth, err = toFloat64(v)
	case "pilaster-style":
		b.PilasterStyle, err = parseName(v, params.ParsePilasterStyle)
	case "pilaster-sides":
		b.PilasterSides, err = parseName(v, params.ParsePilasterSides)

	case "parapet":
		b.RoofParapet, err = toBool(v)
	case "parapet-height":
		b.ParapetHeight, err = toFloat64(v)

	case "patio":
		b.HasPatio, err = toBool(v)
	case "patio-side":
		b.PatioSide, err = parseName(v, params.ParsePatioSide)
	case "patio-size":
		b.PatioSize, err = toFloat64(v)
	case "patio-door-width":
		b.PatioDoorWidth, err = toFloat64(v)

	case "profile":
		b.BuildingProfile, err = parseName(v, params.ParseProfile)
	case "exterior-stairs":
		b.ExteriorStairs, err = toBool(v)

	case "fill":
		b.InteriorFill, err = parseName(v, params.ParseFill)
	case "fill-floors":
		b.FillFloors, err = toInt(v)
	case "rubble-density":
		b.RubbleDensity, err = toFloat64(v)
	case "exterior-rubble":
		b.ExteriorRubble, err = toBool(v)
	case "rubble-piles":
		b.ExteriorRubblePiles, err = toInt(v)
	case "rubble-spread":
		b.RubbleSpread, err = toFloat64(v)

	case "damage":
		b.EnableDamage, err = toBool(v)
	case "damage-amount":
		b.DamageAmount, err = toFloat64(v)
	case "pointiness":
		b.DamagePointiness, err = toFloat64(v)
	case "resolution":
		b.DamageResolution, err = toFloat64(v)

	case "seed":
		var n int
		n, err = toInt(v)
		b.Seed = int64(n)
	case "auto-clean":
		b.AutoClean, err = toBool(v)
	case "mark-seams":
		b.MarkUVSeams, err = toBool(v)

	default:
		return fmt.Errorf("unknown parameter :%s", key)
	}
	if err != nil {
		return fmt.Errorf(":%s: %w", key, err)
	}
	return nil
}

// applyBatchArg sets one sampling range or placement option.
func applyBatchArg(r *params.Ranges, opts *builder.BatchOptions, key string, v zygo.Sexp) error {
	var err error
	switch key {
	case "count":
		opts.Count, err = toInt(v)
	case "seed":
		var n int
		n, err = toInt(v)
		r.BaseSeed = int64(n)
	case "layout":
		var name string
		name, err = toName(v)
		if err == nil {
			switch name {
			case "row":
				opts.Layout = builder.LayoutRow
			case "grid":
				opts.Layout = builder.LayoutGrid
			case "random":
				opts.Layout = builder.LayoutRandom
			default:
				err = fmt.Errorf("unknown layout %q", name)
			}
		}
	case "columns":
		opts.GridColumns, err = toInt(v)
	case "spacing":
		opts.Spacing, err = toFloat64(v)
	case "area":
		opts.AreaSize, err = toFloat64(v)
	case "workers":
		opts.Workers, err = toInt(v)

	case "width-min":
		r.Width.Min, err = toFloat64(v)
	case "width-max":
		r.Width.Max, err = toFloat64(v)
	case "depth-min":
		r.Depth.Min, err = toFloat64(v)
	case "depth-max":
		r.Depth.Max, err = toFloat64(v)
	case "floors-min":
		r.Floors.Min, err = toInt(v)
	case "floors-max":
		r.Floors.Max, err = toInt(v)

	case "profile":
		r.Profile, err = parseName(v, params.ParseProfile)
		r.RandomProfile = false
	case "fill":
		r.InteriorFill, err = parseName(v, params.ParseFill)
		r.RandomFill = false
	case "window-sides":
		r.WindowSidesFixed, err = parseName(v, params.ParseWindowSides)
		r.RandomSides = false

	case "damage":
		r.Damage, err = parseFeatureMode(v)
	case "damage-probability":
		r.DamageProbability, err = toFloat64(v)
	case "patio":
		r.Patio, err = parseFeatureMode(v)
	case "patio-probability":
		r.PatioProbability, err = toFloat64(v)
	case "exterior-rubble":
		r.ExteriorRubble, err = parseFeatureMode(v)

	default:
		return fmt.Errorf("unknown parameter :%s", key)
	}
	if err != nil {
		return fmt.Errorf(":%s: %w", key, err)
	}
	return nil
}

// parseName runs a params parser over a keyword or string argument.
func parseName[T any](v zygo.Sexp, parse func(string) (T, error)) (T, error) {
	var zero T
	name, err := toName(v)
	if err != nil {
		return zero, err
	}
	return parse(name)
}

func parseFeatureMode(v zygo.Sexp) (params.FeatureMode, error) {
	name, err := toName(v)
	if err != nil {
		return params.FeatureRandom, err
	}
	switch name {
	case "always":
		return params.FeatureAlways, nil
	case "never":
		return params.FeatureNever, nil
	case "random":
		return params.FeatureRandom, nil
	}
	return params.FeatureRandom, fmt.Errorf("unknown feature mode %q, expected always/never/random", name)
}
