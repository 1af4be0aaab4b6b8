package interiors

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ashlar/pkg/geom"
	"github.com/chazu/ashlar/pkg/params"
	"github.com/chazu/ashlar/pkg/prng"
)

// GenerateFill adds interior rubble according to the fill mode: a
// solid block to the ceiling, a slant-topped fill over the lower
// floors, or scattered debris mounds on the ground floor. The fill
// never rises above the lowest damage point or a patio floor.
func GenerateFill(m *geom.Mesh, rnd *prng.Stream, b params.Building, damageMin float64) {
	if b.InteriorFill == params.FillNone {
		return
	}

	ib := InteriorBounds(b.Width, b.Depth, b.WallThickness)
	totalHeight := float64(b.Floors) * b.FloorHeight
	maxRubble := totalHeight - 0.1
	if b.EnableDamage && b.DamageAmount > 0 {
		maxRubble = math.Min(maxRubble, damageMin-0.1)
	}
	if b.HasPatio && b.Floors >= 2 {
		patioZ := float64(b.Floors-1) * b.FloorHeight
		maxRubble = math.Min(maxRubble, patioZ-0.1)
	}

	switch b.InteriorFill {
	case params.FillFilled:
		m.AddBox(
			v3.Vec{X: ib.XMin, Y: ib.YMin, Z: 0},
			v3.Vec{X: ib.XMax, Y: ib.YMax, Z: maxRubble},
			geom.MatRubble)

	case params.FillPartial:
		fillFloors := b.FillFloors
		if fillFloors > b.Floors-1 {
			fillFloors = b.Floors - 1
		}
		if fillFloors > 0 {
			base := float64(fillFloors)*b.FloorHeight - rnd.Uniform(0.3, 0.6)
			base = math.Min(base, maxRubble-0.5)
			slantedFill(m, rnd, ib, base, maxRubble)
		}

	case params.FillRubblePiles:
		interiorPiles(m, rnd, b)
	}
}

// slantedFill builds a rubble prism whose top surface tilts in a
// random direction with per-corner jitter, like debris settled against
// one wall.
func slantedFill(m *geom.Mesh, rnd *prng.Stream, ib Bounds, baseHeight, maxHeight float64) {
	slantX := rnd.Uniform(-0.3, 0.3)
	slantY := rnd.Uniform(-0.3, 0.3)

	w := ib.Width()
	d := ib.Depth()
	h00 := baseHeight
	h10 := baseHeight + slantX*w
	h01 := baseHeight + slantY*d
	h11 := baseHeight + slantX*w + slantY*d

	h00 += rnd.Uniform(-0.2, 0.2)
	h10 += rnd.Uniform(-0.2, 0.2)
	h01 += rnd.Uniform(-0.2, 0.2)
	h11 += rnd.Uniform(-0.2, 0.2)

	clamp := func(h float64) float64 {
		return math.Min(math.Max(h, 0.3), maxHeight)
	}
	h00, h10, h01, h11 = clamp(h00), clamp(h10), clamp(h01), clamp(h11)

	b00 := v3.Vec{X: ib.XMin, Y: ib.YMin}
	b10 := v3.Vec{X: ib.XMax, Y: ib.YMin}
	b11 := v3.Vec{X: ib.XMax, Y: ib.YMax}
	b01 := v3.Vec{X: ib.XMin, Y: ib.YMax}
	t00 := v3.Vec{X: ib.XMin, Y: ib.YMin, Z: h00}
	t10 := v3.Vec{X: ib.XMax, Y: ib.YMin, Z: h10}
	t11 := v3.Vec{X: ib.XMax, Y: ib.YMax, Z: h11}
	t01 := v3.Vec{X: ib.XMin, Y: ib.YMax, Z: h01}

	m.AddQuad(b00, b01, b11, b10, v3.Vec{Z: -1}, geom.MatRubble)
	m.AddQuad(t00, t10, t11, t01, v3.Vec{Z: 1}, geom.MatRubble)
	m.AddQuad(b00, b10, t10, t00, v3.Vec{Y: -1}, geom.MatRubble)
	m.AddQuad(b11, b01, t01, t11, v3.Vec{Y: 1}, geom.MatRubble)
	m.AddQuad(b01, b00, t00, t01, v3.Vec{X: -1}, geom.MatRubble)
	m.AddQuad(b10, b11, t11, t10, v3.Vec{X: 1}, geom.MatRubble)
}

// organicPile builds a low-poly debris mound: an irregular base
// polygon with a fan of triangles to an off-center peak.
func organicPile(m *geom.Mesh, rnd *prng.Stream, centerX, centerY, baseZ, radius, height float64) {
	numSides := rnd.IntRange(5, 7)

	base := make([]v3.Vec, 0, numSides)
	for i := 0; i < numSides; i++ {
		angle := 2*math.Pi*float64(i)/float64(numSides) + rnd.Uniform(-0.3, 0.3)
		r := radius * rnd.Uniform(0.7, 1.0)
		base = append(base, v3.Vec{
			X: centerX + r*math.Cos(angle),
			Y: centerY + r*math.Sin(angle),
			Z: baseZ,
		})
	}

	peak := v3.Vec{
		X: centerX + rnd.Uniform(-radius*0.3, radius*0.3),
		Y: centerY + rnd.Uniform(-radius*0.3, radius*0.3),
		Z: baseZ + height*rnd.Uniform(0.8, 1.0),
	}

	m.AddPolygon(base, v3.Vec{Z: -1}, geom.MatRubble)

	center := v3.Vec{X: centerX, Y: centerY, Z: baseZ + height/2}
	for i := 0; i < numSides; i++ {
		next := (i + 1) % numSides
		centroid := base[i].Add(base[next]).Add(peak).MulScalar(1.0 / 3.0)
		m.AddTriangle(base[i], base[next], peak, centroid.Sub(center), geom.MatRubble)
	}
}

// interiorPiles scatters 2-5 non-overlapping debris mounds on the
// ground floor, count scaling with rubble density.
func interiorPiles(m *geom.Mesh, rnd *prng.Stream, b params.Building) {
	ib := InteriorBounds(b.Width, b.Depth, b.WallThickness)
	iw := ib.Width()
	id := ib.Depth()

	numPiles := 2 + int(b.RubbleDensity*3)
	if numPiles > 5 {
		numPiles = 5
	}

	type pile struct{ x, y, r float64 }
	var placed []pile

	for i := 0; i < numPiles; i++ {
		for attempt := 0; attempt < 10; attempt++ {
			const margin = 0.8
			x := rnd.Uniform(ib.XMin+margin, ib.XMax-margin)
			y := rnd.Uniform(ib.YMin+margin, ib.YMax-margin)
			radius := rnd.Uniform(0.4, math.Min(1.2, math.Min(iw, id)*0.25))
			height := rnd.Uniform(0.3, 0.8)

			overlaps := false
			for _, p := range placed {
				if math.Hypot(x-p.x, y-p.y) < (radius+p.r)*0.8 {
					overlaps = true
					break
				}
			}
			if !overlaps {
				placed = append(placed, pile{x, y, radius})
				organicPile(m, rnd, x, y, 0, radius, height)
				break
			}
		}
	}
}

// GenerateExterior scatters collapsed-debris mounds around the outside
// of the building footprint, one random side per pile, within the
// rubble spread distance.
func GenerateExterior(m *geom.Mesh, rnd *prng.Stream, b params.Building) {
	if !b.ExteriorRubble {
		return
	}

	for i := 0; i < b.ExteriorRubblePiles; i++ {
		var x, y float64
		switch rnd.IntN(4) {
		case 0: // front
			x = rnd.Uniform(0.5, b.Width-0.5)
			y = rnd.Uniform(-b.RubbleSpread*0.8, -0.3)
		case 1: // back
			x = rnd.Uniform(0.5, b.Width-0.5)
			y = rnd.Uniform(b.Depth+0.3, b.Depth+b.RubbleSpread*0.8)
		case 2: // left
			x = rnd.Uniform(-b.RubbleSpread*0.8, -0.3)
			y = rnd.Uniform(0.5, b.Depth-0.5)
		default: // right
			x = rnd.Uniform(b.Width+0.3, b.Width+b.RubbleSpread*0.8)
			y = rnd.Uniform(0.5, b.Depth-0.5)
		}

		radius := rnd.Uniform(0.4, 1.0)
		height := rnd.Uniform(0.2, 0.6)
		organicPile(m, rnd, x, y, 0, radius, height)
	}
}
