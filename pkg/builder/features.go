package builder

import (
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ashlar/pkg/geom"
	"github.com/chazu/ashlar/pkg/params"
)

// The parapet reads thinner than the main walls; the patio railing is
// thinner still.
const (
	parapetThicknessRatio = 0.8
	patioRailRatio        = 0.7
)

func addBox(m *geom.Mesh, x0, y0, z0, x1, y1, z1 float64, mat geom.Material) {
	m.AddBox(v3.Vec{X: x0, Y: y0, Z: z0}, v3.Vec{X: x1, Y: y1, Z: z1}, mat)
}

// buildRoof caps the building with a flat slab. With a parapet the
// roof is inset to sit inside it; otherwise it overhangs to the outer
// wall faces.
func buildRoof(m *geom.Mesh, b params.Building, roofZ float64) {
	if b.RoofParapet {
		pt := b.WallThickness * parapetThicknessRatio
		addBox(m, pt, pt, roofZ, b.Width-pt, b.Depth-pt, roofZ+roofThickness, geom.MatRoof)
		return
	}
	addBox(m, 0, 0, roofZ, b.Width, b.Depth, roofZ+roofThickness, geom.MatRoof)
}

// buildRoofWithPatio roofs only the interior portion, stopping at the
// patio divider.
func buildRoofWithPatio(m *geom.Mesh, b params.Building, roofZ float64, patio *patioInfo) {
	pt := 0.0
	if b.RoofParapet {
		pt = b.WallThickness * parapetThicknessRatio
	}

	x0, y0 := pt, pt
	x1, y1 := b.Width-pt, b.Depth-pt
	switch patio.side {
	case params.PatioBack:
		y1 = patio.dividerY - pt
	case params.PatioFront:
		y0 = patio.dividerY + pt
	case params.PatioLeft:
		x0 = patio.dividerX + pt
	default:
		x1 = patio.dividerX - pt
	}
	addBox(m, x0, y0, roofZ, x1, y1, roofZ+roofThickness, geom.MatRoof)
}

// buildParapet runs a low wall around the roofline. Front and back
// span the full width; side runs fit between them. Corner pilasters
// extend through the parapet when the facade carries them.
func buildParapet(m *geom.Mesh, b params.Building, roofZ float64) {
	pt := b.WallThickness * parapetThicknessRatio
	zTop := roofZ + b.ParapetHeight
	w, d := b.Width, b.Depth

	addBox(m, 0, 0, roofZ, w, pt, zTop, geom.MatWalls)
	addBox(m, 0, d-pt, roofZ, w, d, zTop, geom.MatWalls)
	addBox(m, 0, pt, roofZ, pt, d-pt, zTop, geom.MatWalls)
	addBox(m, w-pt, pt, roofZ, w, d-pt, zTop, geom.MatWalls)

	if b.FacadePilasters {
		extendCornerPilasters(m, b, roofZ, zTop, true, b.PilasterSides != params.PilasterFront)
	}
}

// buildParapetWithPatio runs the parapet around the interior portion
// only, closing it off along the divider line.
func buildParapetWithPatio(m *geom.Mesh, b params.Building, roofZ float64, patio *patioInfo) {
	pt := b.WallThickness * parapetThicknessRatio
	zTop := roofZ + b.ParapetHeight
	w, d := b.Width, b.Depth

	switch patio.side {
	case params.PatioBack:
		dy := patio.dividerY
		addBox(m, 0, 0, roofZ, w, pt, zTop, geom.MatWalls)
		addBox(m, 0, pt, roofZ, pt, dy, zTop, geom.MatWalls)
		addBox(m, w-pt, pt, roofZ, w, dy, zTop, geom.MatWalls)
		addBox(m, 0, dy-pt, roofZ, w, dy, zTop, geom.MatWalls)
	case params.PatioFront:
		dy := patio.dividerY
		addBox(m, 0, d-pt, roofZ, w, d, zTop, geom.MatWalls)
		addBox(m, 0, dy, roofZ, pt, d-pt, zTop, geom.MatWalls)
		addBox(m, w-pt, dy, roofZ, w, d-pt, zTop, geom.MatWalls)
		addBox(m, 0, dy, roofZ, w, dy+pt, zTop, geom.MatWalls)
	case params.PatioLeft:
		dx := patio.dividerX
		addBox(m, w-pt, 0, roofZ, w, d, zTop, geom.MatWalls)
		addBox(m, dx, 0, roofZ, w-pt, pt, zTop, geom.MatWalls)
		addBox(m, dx, d-pt, roofZ, w-pt, d, zTop, geom.MatWalls)
		addBox(m, dx, 0, roofZ, dx+pt, d, zTop, geom.MatWalls)
	default:
		dx := patio.dividerX
		addBox(m, 0, 0, roofZ, pt, d, zTop, geom.MatWalls)
		addBox(m, pt, 0, roofZ, dx, pt, zTop, geom.MatWalls)
		addBox(m, pt, d-pt, roofZ, dx, d, zTop, geom.MatWalls)
		addBox(m, dx-pt, 0, roofZ, dx, d, zTop, geom.MatWalls)
	}

	if b.FacadePilasters {
		front := patio.side != params.PatioFront
		back := b.PilasterSides != params.PilasterFront && patio.side != params.PatioBack
		extendCornerPilasters(m, b, roofZ, zTop, front, back)
	}
}

// extendCornerPilasters carries the facade's corner pilasters through
// the parapet band.
func extendCornerPilasters(m *geom.Mesh, b params.Building, zBase, zTop float64, front, back bool) {
	pw, pd := b.PilasterWidth, b.PilasterDepth
	if front {
		addBox(m, 0, -pd, zBase, pw, 0, zTop, geom.MatWalls)
		addBox(m, b.Width-pw, -pd, zBase, b.Width, 0, zTop, geom.MatWalls)
	}
	if back {
		addBox(m, 0, b.Depth, zBase, pw, b.Depth+pd, zTop, geom.MatWalls)
		addBox(m, b.Width-pw, b.Depth, zBase, b.Width, b.Depth+pd, zTop, geom.MatWalls)
	}
}

// pilasterPositions returns the centerline offsets along one wall for
// the configured style. Between-window pilasters only apply to walls
// that carry the full window row and only when the row leaves room.
func pilasterPositions(b params.Building, wallLength float64, frontBack bool) []float64 {
	half := b.PilasterWidth / 2
	var positions []float64

	switch b.PilasterStyle {
	case params.PilastersCorners, params.PilastersCornersCenter, params.PilastersFull:
		positions = append(positions, half, wallLength-half)
	}
	if b.PilasterStyle == params.PilastersCornersCenter || b.PilasterStyle == params.PilastersFull {
		positions = append(positions, wallLength/2)
	}

	betweenWindows := b.PilasterStyle == params.PilastersBetweenWindows || b.PilasterStyle == params.PilastersFull
	if betweenWindows && frontBack && b.WindowsPerFloor > 0 {
		n := float64(b.WindowsPerFloor)
		total := n*b.WindowWidth + (n-1)*b.WindowSpacing
		if total < wallLength*0.9 {
			start := (wallLength - total) / 2
			if start > b.PilasterWidth*1.5 {
				positions = append(positions, start-b.PilasterWidth)
			}
			for i := 0; i < b.WindowsPerFloor-1; i++ {
				x := start + float64(i+1)*b.WindowWidth + (float64(i)+0.5)*b.WindowSpacing
				if x > b.PilasterWidth && x < wallLength-b.PilasterWidth {
					positions = append(positions, x)
				}
			}
			end := start + total
			if wallLength-end > b.PilasterWidth*1.5 {
				positions = append(positions, end+b.PilasterWidth)
			}
		}
	}

	sort.Float64s(positions)
	dedup := positions[:0]
	for i, p := range positions {
		if i == 0 || p != dedup[len(dedup)-1] {
			dedup = append(dedup, p)
		}
	}
	return dedup
}

// buildPilasters adds protruding columns on the selected walls, rising
// from the ground to height. Pilasters inside a patio zone stop at the
// patio floor so they do not poke through the open deck.
func buildPilasters(m *geom.Mesh, b params.Building, height float64) {
	hasBack := b.PilasterSides != params.PilasterFront
	hasSides := b.PilasterSides == params.PilasterAll
	pw, pd := b.PilasterWidth, b.PilasterDepth

	patioZ := height
	if b.HasPatio {
		patioZ = float64(b.Floors-1) * b.FloorHeight
	}
	sideHeight := func(side params.PatioSide) float64 {
		if b.HasPatio && b.PatioSide == side {
			return patioZ
		}
		return height
	}
	divXLeft := b.Width * b.PatioSize
	divXRight := b.Width * (1 - b.PatioSize)
	divYBack := b.Depth * (1 - b.PatioSize)
	divYFront := b.Depth * b.PatioSize

	// A pilaster on a full-height wall still drops to patio level when
	// its run crosses into the patio zone.
	frontBackHeight := func(x, base float64) float64 {
		if b.HasPatio && b.PatioSide == params.PatioLeft && x < divXLeft {
			return patioZ
		}
		if b.HasPatio && b.PatioSide == params.PatioRight && x > divXRight {
			return patioZ
		}
		return base
	}
	sideWallHeight := func(y, base float64) float64 {
		if b.HasPatio && b.PatioSide == params.PatioBack && y > divYBack {
			return patioZ
		}
		if b.HasPatio && b.PatioSide == params.PatioFront && y < divYFront {
			return patioZ
		}
		return base
	}

	for _, x := range pilasterPositions(b, b.Width, true) {
		h := frontBackHeight(x, sideHeight(params.PatioFront))
		addBox(m, x-pw/2, -pd, 0, x+pw/2, 0, h, geom.MatWalls)
	}
	if hasBack {
		for _, x := range pilasterPositions(b, b.Width, true) {
			h := frontBackHeight(x, sideHeight(params.PatioBack))
			addBox(m, x-pw/2, b.Depth, 0, x+pw/2, b.Depth+pd, h, geom.MatWalls)
		}
	}
	if hasSides {
		for _, y := range pilasterPositions(b, b.Depth, false) {
			h := sideWallHeight(y, sideHeight(params.PatioLeft))
			addBox(m, -pd, y-pw/2, 0, 0, y+pw/2, h, geom.MatWalls)
		}
		for _, y := range pilasterPositions(b, b.Depth, false) {
			h := sideWallHeight(y, sideHeight(params.PatioRight))
			addBox(m, b.Width, y-pw/2, 0, b.Width+pd, y+pw/2, h, geom.MatWalls)
		}
	}
}
