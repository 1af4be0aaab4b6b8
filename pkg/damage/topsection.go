package damage

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ashlar/pkg/geom"
)

// BuildTopSection meshes the ragged wall remainder between baseZ and
// the damage profile as a continuous strip: outer skin, inner skin,
// undulating top, and end caps. start is the outer wall corner the
// profile positions are measured from, dir runs along the wall, and
// normal points out of the building; the inner skin sits thickness
// behind the outer one.
func BuildTopSection(m *geom.Mesh, samples []Sample, start, dir, normal v3.Vec,
	baseZ, thickness float64, mat geom.Material) {
	if len(samples) < 2 {
		return
	}

	// Only the span that actually rises above the floor line gets
	// geometry; fully collapsed stretches stay open.
	valid := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.Height > baseZ+0.05 {
			valid = append(valid, s)
		}
	}
	if len(valid) < 2 {
		return
	}

	inward := normal.MulScalar(-thickness)
	up := v3.Vec{Z: 1}

	outerB := make([]v3.Vec, len(valid))
	outerT := make([]v3.Vec, len(valid))
	innerB := make([]v3.Vec, len(valid))
	innerT := make([]v3.Vec, len(valid))
	for i, s := range valid {
		topZ := s.Height
		if topZ < baseZ+0.05 {
			topZ = baseZ + 0.05
		}
		outer := start.Add(dir.MulScalar(s.Pos))
		inner := outer.Add(inward)
		outerB[i] = v3.Vec{X: outer.X, Y: outer.Y, Z: baseZ}
		outerT[i] = v3.Vec{X: outer.X, Y: outer.Y, Z: topZ}
		innerB[i] = v3.Vec{X: inner.X, Y: inner.Y, Z: baseZ}
		innerT[i] = v3.Vec{X: inner.X, Y: inner.Y, Z: topZ}
	}

	for i := 0; i < len(valid)-1; i++ {
		m.AddQuad(outerB[i], outerB[i+1], outerT[i+1], outerT[i], normal, mat)
		m.AddQuad(innerB[i], innerB[i+1], innerT[i+1], innerT[i], normal.MulScalar(-1), mat)
		m.AddQuad(outerT[i], outerT[i+1], innerT[i+1], innerT[i], up, mat)
	}

	// End caps close the strip against the intact wall below.
	m.AddQuad(innerB[0], outerB[0], outerT[0], innerT[0], dir.MulScalar(-1), mat)
	last := len(valid) - 1
	m.AddQuad(outerB[last], innerB[last], innerT[last], outerT[last], dir, mat)
}
