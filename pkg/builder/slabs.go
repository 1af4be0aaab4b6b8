package builder

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ashlar/pkg/geom"
	"github.com/chazu/ashlar/pkg/interiors"
	"github.com/chazu/ashlar/pkg/params"
)

// Openings keep a minimum margin from slab edges so no strip collapses
// into a sliver face.
const slabMinMargin = 0.05

// buildFloorSlab builds one floor slab inset to the inner wall faces,
// with the stair opening cut out when one is given.
func buildFloorSlab(m *geom.Mesh, b params.Building, baseZ float64, opening *interiors.Bounds) {
	wt := b.WallThickness
	slabSections(m, wt, wt, b.Width-wt, b.Depth-wt, baseZ, opening)
}

// buildPatioInteriorSlab covers only the interior portion of the patio
// floor; the patio portion gets its own slab inside the patio parapet.
func buildPatioInteriorSlab(m *geom.Mesh, b params.Building, baseZ float64, opening *interiors.Bounds) {
	wt := b.WallThickness
	x0, y0 := wt, wt
	x1, y1 := b.Width-wt, b.Depth-wt

	switch b.PatioSide {
	case params.PatioBack:
		y1 = b.Depth * (1 - b.PatioSize)
	case params.PatioFront:
		y0 = b.Depth * b.PatioSize
	case params.PatioLeft:
		x0 = b.Width * b.PatioSize
	default:
		x1 = b.Width * (1 - b.PatioSize)
	}
	slabSections(m, x0, y0, x1, y1, baseZ, opening)
}

// slabSections meshes the slab as a solid box, or as up to four strips
// framing the opening: full-width front and back strips plus side
// strips between the opening's Y bounds.
func slabSections(m *geom.Mesh, x0, y0, x1, y1, baseZ float64, opening *interiors.Bounds) {
	zLo, zHi := baseZ, baseZ+slabThickness

	box := func(bx0, by0, bx1, by1 float64) {
		m.AddBox(v3.Vec{X: bx0, Y: by0, Z: zLo}, v3.Vec{X: bx1, Y: by1, Z: zHi}, geom.MatFloor)
	}

	if opening == nil {
		box(x0, y0, x1, y1)
		return
	}

	ox0 := max64(opening.XMin, x0+slabMinMargin)
	oy0 := max64(opening.YMin, y0+slabMinMargin)
	ox1 := min64(opening.XMax, x1-slabMinMargin)
	oy1 := min64(opening.YMax, y1-slabMinMargin)
	if ox0 >= ox1 || oy0 >= oy1 {
		box(x0, y0, x1, y1)
		return
	}

	if oy0-y0 > slabMinMargin {
		box(x0, y0, x1, oy0)
	}
	if y1-oy1 > slabMinMargin {
		box(x0, oy1, x1, y1)
	}
	if ox0-x0 > slabMinMargin {
		box(x0, oy0, ox0, oy1)
	}
	if x1-ox1 > slabMinMargin {
		box(ox1, oy0, x1, oy1)
	}
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
