package walls

import (
	"math"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ashlar/pkg/geom"
)

// Build meshes the segment with thickness into m. Walls without
// openings become a simple six-sided box; walls with openings are
// decomposed into a grid of solid cells around the cuts, with frame
// faces exposing the wall thickness inside each opening. topCap closes
// the top of the wall (used for the topmost surviving floor when no
// roof covers it).
func Build(m *geom.Mesh, s *Segment, thickness float64, topCap bool) {
	if len(s.Openings) == 0 {
		buildSolid(m, s, thickness, topCap)
		return
	}
	buildWithOpenings(m, s, thickness, topCap)
}

func buildSolid(m *geom.Mesh, s *Segment, thickness float64, topCap bool) {
	inner := s.Normal.MulScalar(-thickness)
	up := v3.Vec{Z: 1}

	oBL := s.Start.Add(v3.Vec{Z: s.BaseZ})
	oBR := s.End.Add(v3.Vec{Z: s.BaseZ})
	oTL := s.Start.Add(v3.Vec{Z: s.BaseZ + s.Height})
	oTR := s.End.Add(v3.Vec{Z: s.BaseZ + s.Height})
	iBL := oBL.Add(inner)
	iBR := oBR.Add(inner)
	iTL := oTL.Add(inner)
	iTR := oTR.Add(inner)

	m.AddQuad(oBL, oBR, oTR, oTL, s.Normal, geom.MatWalls)
	m.AddQuad(iBR, iBL, iTL, iTR, s.Normal.MulScalar(-1), geom.MatWalls)
	if topCap {
		m.AddQuad(oTL, oTR, iTR, iTL, up, geom.MatWalls)
	}
	m.AddQuad(iBL, iBR, oBR, oBL, up.MulScalar(-1), geom.MatWalls)
	m.AddQuad(iBL, oBL, oTL, iTL, s.Direction.MulScalar(-1), geom.MatWalls)
	m.AddQuad(oBR, iBR, iTR, oTR, s.Direction, geom.MatWalls)
}

func buildWithOpenings(m *geom.Mesh, s *Segment, thickness float64, topCap bool) {
	wallLength := s.Length()
	openings := append([]Opening(nil), s.Openings...)
	sort.Slice(openings, func(i, j int) bool { return openings[i].XStart < openings[j].XStart })

	// Grid lines only where openings force them.
	xs := []float64{0, wallLength}
	zs := []float64{0, s.Height}
	for _, op := range openings {
		xs = append(xs, op.XStart, op.XEnd)
		zs = append(zs, op.ZStart, op.ZEnd)
	}
	xs = dedupeSorted(clampAll(xs, 0, wallLength))
	zs = dedupeSorted(clampAll(zs, 0, s.Height))

	for i := 0; i < len(xs)-1; i++ {
		for j := 0; j < len(zs)-1; j++ {
			x0, x1 := xs[i], xs[i+1]
			z0, z1 := zs[j], zs[j+1]
			if x1-x0 < 0.001 || z1-z0 < 0.001 {
				continue
			}
			cx := (x0 + x1) / 2
			cz := (z0 + z1) / 2
			if insideOpening(openings, cx, cz) {
				continue
			}
			topCell := z1 >= s.Height-0.001
			buildCell(m, s, x0, x1, z0, z1, thickness, topCap && topCell)
		}
	}

	for _, op := range openings {
		buildOpeningFrame(m, s, op, thickness)
	}

	// End caps close the wall thickness at both extremities.
	inner := s.Normal.MulScalar(-thickness)
	lob := s.Start.Add(v3.Vec{Z: s.BaseZ})
	lot := s.Start.Add(v3.Vec{Z: s.BaseZ + s.Height})
	m.AddQuad(lob.Add(inner), lob, lot, lot.Add(inner), s.Direction.MulScalar(-1), geom.MatWalls)

	rob := s.Start.Add(s.Direction.MulScalar(wallLength)).Add(v3.Vec{Z: s.BaseZ})
	rot := s.Start.Add(s.Direction.MulScalar(wallLength)).Add(v3.Vec{Z: s.BaseZ + s.Height})
	m.AddQuad(rob, rob.Add(inner), rot.Add(inner), rot, s.Direction, geom.MatWalls)
}

func insideOpening(openings []Opening, x, z float64) bool {
	for _, op := range openings {
		if op.XStart <= x && x <= op.XEnd && op.ZStart <= z && z <= op.ZEnd {
			return true
		}
	}
	return false
}

// buildCell meshes one solid grid cell: outer and inner skins always,
// a bottom face for ground cells, a top cap for topmost cells when
// requested.
func buildCell(m *geom.Mesh, s *Segment, x0, x1, z0, z1, thickness float64, topCap bool) {
	inner := s.Normal.MulScalar(-thickness)
	up := v3.Vec{Z: 1}

	cellStart := s.Start.Add(s.Direction.MulScalar(x0))
	cellEnd := s.Start.Add(s.Direction.MulScalar(x1))

	oBL := cellStart.Add(v3.Vec{Z: s.BaseZ + z0})
	oBR := cellEnd.Add(v3.Vec{Z: s.BaseZ + z0})
	oTL := cellStart.Add(v3.Vec{Z: s.BaseZ + z1})
	oTR := cellEnd.Add(v3.Vec{Z: s.BaseZ + z1})
	iBL := oBL.Add(inner)
	iBR := oBR.Add(inner)
	iTL := oTL.Add(inner)
	iTR := oTR.Add(inner)

	m.AddQuad(oBL, oBR, oTR, oTL, s.Normal, geom.MatWalls)
	m.AddQuad(iBR, iBL, iTL, iTR, s.Normal.MulScalar(-1), geom.MatWalls)
	if topCap {
		m.AddQuad(oTL, oTR, iTR, iTL, up, geom.MatWalls)
	}
	if z0 < 0.001 {
		m.AddQuad(iBL, iBR, oBR, oBL, up.MulScalar(-1), geom.MatWalls)
	}
}

// buildOpeningFrame adds the reveal faces inside an opening. The
// bottom reveal is skipped for ground-level openings (doors) where the
// cut reaches the floor.
func buildOpeningFrame(m *geom.Mesh, s *Segment, op Opening, thickness float64) {
	mat := geom.MatWindowFrame
	if op.Kind == OpeningDoor {
		mat = geom.MatDoorFrame
	}

	inner := s.Normal.MulScalar(-thickness)
	up := v3.Vec{Z: 1}

	oBL := s.Start.Add(s.Direction.MulScalar(op.XStart)).Add(v3.Vec{Z: s.BaseZ + op.ZStart})
	oBR := s.Start.Add(s.Direction.MulScalar(op.XEnd)).Add(v3.Vec{Z: s.BaseZ + op.ZStart})
	oTL := s.Start.Add(s.Direction.MulScalar(op.XStart)).Add(v3.Vec{Z: s.BaseZ + op.ZEnd})
	oTR := s.Start.Add(s.Direction.MulScalar(op.XEnd)).Add(v3.Vec{Z: s.BaseZ + op.ZEnd})
	iBL := oBL.Add(inner)
	iBR := oBR.Add(inner)
	iTL := oTL.Add(inner)
	iTR := oTR.Add(inner)

	if op.ZStart > 0.01 {
		m.AddQuad(oBL, oBR, iBR, iBL, up.MulScalar(-1), mat)
	}
	m.AddQuad(oTR, oTL, iTL, iTR, up, mat)
	m.AddQuad(oTL, oBL, iBL, iTL, s.Direction.MulScalar(-1), mat)
	m.AddQuad(oBR, oTR, iTR, iBR, s.Direction, mat)
}

func clampAll(vals []float64, lo, hi float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = math.Max(lo, math.Min(hi, v))
	}
	return out
}

func dedupeSorted(vals []float64) []float64 {
	sort.Float64s(vals)
	out := vals[:0]
	for _, v := range vals {
		if len(out) == 0 || v-out[len(out)-1] > 1e-9 {
			out = append(out, v)
		}
	}
	return out
}
