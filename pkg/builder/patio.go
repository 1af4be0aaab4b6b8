package builder

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ashlar/pkg/geom"
	"github.com/chazu/ashlar/pkg/interiors"
	"github.com/chazu/ashlar/pkg/params"
	"github.com/chazu/ashlar/pkg/walls"
)

// patioInfo records where the patio divider landed so the roof and
// parapet can stop at it. Only the divider coordinate matching the
// patio axis is meaningful.
type patioInfo struct {
	side     params.PatioSide
	dividerX float64
	dividerY float64
}

// buildPatio opens the top floor toward one wall: a railing around the
// outer patio edges, a divider wall with a centered door back into the
// interior, and a deck slab between them. topFloorZ is the patio floor
// level, one floor below the roofline.
func buildPatio(m *geom.Mesh, b params.Building, topFloorZ float64, stairOpening *interiors.Bounds) *patioInfo {
	w, d := b.Width, b.Depth
	rail := b.WallThickness * patioRailRatio
	zBase := topFloorZ
	zTop := topFloorZ + b.ParapetHeight

	info := &patioInfo{side: b.PatioSide}
	var dividerStart, dividerEnd, dividerNormal v3.Vec
	var deck interiors.Bounds

	switch b.PatioSide {
	case params.PatioBack:
		info.dividerY = d * (1 - b.PatioSize)
		addBox(m, 0, d-rail, zBase, w, d, zTop, geom.MatWalls)
		addBox(m, 0, info.dividerY, zBase, rail, d-rail, zTop, geom.MatWalls)
		addBox(m, w-rail, info.dividerY, zBase, w, d-rail, zTop, geom.MatWalls)
		dividerStart = v3.Vec{Y: info.dividerY}
		dividerEnd = v3.Vec{X: w, Y: info.dividerY}
		dividerNormal = v3.Vec{Y: 1}
		deck = interiors.Bounds{XMin: rail, YMin: info.dividerY, XMax: w - rail, YMax: d - rail}
	case params.PatioFront:
		info.dividerY = d * b.PatioSize
		addBox(m, 0, 0, zBase, w, rail, zTop, geom.MatWalls)
		addBox(m, 0, rail, zBase, rail, info.dividerY, zTop, geom.MatWalls)
		addBox(m, w-rail, rail, zBase, w, info.dividerY, zTop, geom.MatWalls)
		dividerStart = v3.Vec{Y: info.dividerY}
		dividerEnd = v3.Vec{X: w, Y: info.dividerY}
		dividerNormal = v3.Vec{Y: -1}
		deck = interiors.Bounds{XMin: rail, YMin: rail, XMax: w - rail, YMax: info.dividerY}
	case params.PatioLeft:
		info.dividerX = w * b.PatioSize
		addBox(m, 0, 0, zBase, rail, d, zTop, geom.MatWalls)
		addBox(m, rail, 0, zBase, info.dividerX, rail, zTop, geom.MatWalls)
		addBox(m, rail, d-rail, zBase, info.dividerX, d, zTop, geom.MatWalls)
		dividerStart = v3.Vec{X: info.dividerX}
		dividerEnd = v3.Vec{X: info.dividerX, Y: d}
		dividerNormal = v3.Vec{X: -1}
		deck = interiors.Bounds{XMin: rail, YMin: rail, XMax: info.dividerX, YMax: d - rail}
	default:
		info.dividerX = w * (1 - b.PatioSize)
		addBox(m, w-rail, 0, zBase, w, d, zTop, geom.MatWalls)
		addBox(m, info.dividerX, 0, zBase, w-rail, rail, zTop, geom.MatWalls)
		addBox(m, info.dividerX, d-rail, zBase, w-rail, d, zTop, geom.MatWalls)
		dividerStart = v3.Vec{X: info.dividerX}
		dividerEnd = v3.Vec{X: info.dividerX, Y: d}
		dividerNormal = v3.Vec{X: 1}
		deck = interiors.Bounds{XMin: info.dividerX, YMin: rail, XMax: w - rail, YMax: d - rail}
	}

	buildPatioDividerWall(m, b, dividerStart, dividerEnd, dividerNormal, topFloorZ)
	buildPatioDeck(m, deck, topFloorZ, stairOpening)
	return info
}

// buildPatioDividerWall separates the interior from the patio with a
// centered door sized to the floor.
func buildPatioDividerWall(m *geom.Mesh, b params.Building, start, end, normal v3.Vec, baseZ float64) {
	seg := walls.NewSegment(start, end, b.FloorHeight, baseZ, normal)
	doorHeight := math.Min(b.FloorHeight-0.3, 2.4)
	doorX := (seg.Length() - b.PatioDoorWidth) / 2
	seg.AddOpening(doorX, doorX+b.PatioDoorWidth, 0, doorHeight, walls.OpeningDoor)
	walls.Build(m, seg, b.WallThickness, true)
}

// buildPatioDeck lays the exposed slab, cutting the stair opening only
// when it actually falls inside the deck.
func buildPatioDeck(m *geom.Mesh, deck interiors.Bounds, baseZ float64, opening *interiors.Bounds) {
	slabSections(m, deck.XMin, deck.YMin, deck.XMax, deck.YMax, baseZ, opening)
}

// buildPatioFloorWalls builds the three exterior walls of the patio
// floor; the patio side stays open. Walls adjacent to the patio are
// shortened to the divider so they do not wrap around the deck.
func buildPatioFloorWalls(m *geom.Mesh, b params.Building, baseZ float64, topCap bool) {
	w, d, wt := b.Width, b.Depth, b.WallThickness
	fh := b.FloorHeight

	seg := func(x0, y0, x1, y1 float64, normal v3.Vec) *walls.Segment {
		return walls.NewSegment(v3.Vec{X: x0, Y: y0}, v3.Vec{X: x1, Y: y1}, fh, baseZ, normal)
	}

	var floorWalls []*walls.Segment
	switch b.PatioSide {
	case params.PatioBack:
		dy := d * (1 - b.PatioSize)
		floorWalls = []*walls.Segment{
			seg(0, 0, w, 0, v3.Vec{Y: -1}),
			seg(0, dy-wt, 0, wt, v3.Vec{X: -1}),
			seg(w, wt, w, dy-wt, v3.Vec{X: 1}),
		}
	case params.PatioFront:
		dy := d * b.PatioSize
		floorWalls = []*walls.Segment{
			seg(w, d, 0, d, v3.Vec{Y: 1}),
			seg(0, d-wt, 0, dy+wt, v3.Vec{X: -1}),
			seg(w, dy+wt, w, d-wt, v3.Vec{X: 1}),
		}
	case params.PatioLeft:
		dx := w * b.PatioSize
		floorWalls = []*walls.Segment{
			seg(w, wt, w, d-wt, v3.Vec{X: 1}),
			seg(dx+wt, 0, w, 0, v3.Vec{Y: -1}),
			seg(w, d, dx+wt, d, v3.Vec{Y: 1}),
		}
	default:
		dx := w * (1 - b.PatioSize)
		floorWalls = []*walls.Segment{
			seg(0, d-wt, 0, wt, v3.Vec{X: -1}),
			seg(0, 0, dx-wt, 0, v3.Vec{Y: -1}),
			seg(dx-wt, d, 0, d, v3.Vec{Y: 1}),
		}
	}

	sideCount := b.WindowsPerFloor / 2
	if sideCount < 1 {
		sideCount = 1
	}
	for _, s := range floorWalls {
		var wants bool
		count := sideCount
		switch {
		case s.Normal.Y < -0.5:
			wants = b.WindowSides.Front()
			count = b.WindowsPerFloor
		case s.Normal.Y > 0.5:
			wants = b.WindowSides.Back()
			count = b.WindowsPerFloor
		case s.Normal.X < -0.5:
			wants = b.WindowSides.Left()
		default:
			wants = b.WindowSides.Right()
		}
		if wants {
			walls.DistributeWindows(s, count, b.WindowWidth, b.WindowHeight, b.WindowSpacing, b.SillHeight)
		}
	}

	for _, s := range floorWalls {
		walls.Build(m, s, wt, topCap)
	}
}
