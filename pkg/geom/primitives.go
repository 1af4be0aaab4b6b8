package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ---------------------------------------------------------------------------
// Construction primitives
// ---------------------------------------------------------------------------

// AddQuad appends a quad over four fresh vertices. The face normal is
// computed from the vertex order and the winding is flipped when it
// points away from outward, so callers only supply the intended facing
// direction and never reason about vertex order.
func (m *Mesh) AddQuad(a, b, c, d v3.Vec, outward v3.Vec, mat Material) {
	ia := m.AddVertex(a)
	ib := m.AddVertex(b)
	ic := m.AddVertex(c)
	id := m.AddVertex(d)

	n := b.Sub(a).Cross(c.Sub(a))
	if n.Dot(outward) < 0 {
		m.AddFace(mat, id, ic, ib, ia)
		return
	}
	m.AddFace(mat, ia, ib, ic, id)
}

// AddPolygon appends a planar polygon over fresh vertices with the same
// winding correction as AddQuad. Used for rubble fan caps.
func (m *Mesh) AddPolygon(pts []v3.Vec, outward v3.Vec, mat Material) {
	if len(pts) < 3 {
		return
	}
	idx := make([]int, len(pts))
	for i, p := range pts {
		idx[i] = m.AddVertex(p)
	}
	n := pts[1].Sub(pts[0]).Cross(pts[2].Sub(pts[0]))
	if n.Dot(outward) < 0 {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}
	m.AddFace(mat, idx...)
}

// AddTriangle appends a triangle over fresh vertices, flipping winding
// to face outward.
func (m *Mesh) AddTriangle(a, b, c v3.Vec, outward v3.Vec, mat Material) {
	ia := m.AddVertex(a)
	ib := m.AddVertex(b)
	ic := m.AddVertex(c)
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Dot(outward) < 0 {
		m.AddFace(mat, ic, ib, ia)
		return
	}
	m.AddFace(mat, ia, ib, ic)
}

// AddBox appends an axis-aligned box spanning min..max with all six
// faces wound outward.
func (m *Mesh) AddBox(min, max v3.Vec, mat Material) {
	v := [8]v3.Vec{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}
	idx := [8]int{}
	for i, p := range v {
		idx[i] = m.AddVertex(p)
	}

	// Outward winding, CCW seen from outside.
	faces := [6][4]int{
		{0, 3, 2, 1}, // bottom (-Z)
		{4, 5, 6, 7}, // top (+Z)
		{0, 1, 5, 4}, // -Y
		{2, 3, 7, 6}, // +Y
		{0, 4, 7, 3}, // -X
		{1, 2, 6, 5}, // +X
	}
	for _, f := range faces {
		m.AddFace(mat, idx[f[0]], idx[f[1]], idx[f[2]], idx[f[3]])
	}
}
