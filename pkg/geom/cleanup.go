package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ---------------------------------------------------------------------------
// Post-build cleanup
// ---------------------------------------------------------------------------

const (
	// MergeDistance is the weld tolerance for coincident vertices.
	MergeDistance = 0.0005
	// minFaceArea is the degenerate-face cull threshold.
	minFaceArea = 0.00001
)

// Cleanup welds coincident vertices, removes degenerate faces and loose
// vertices, and dissolves redundant vertical edges inside flat wall
// runs. floorHeight scales the dissolve length threshold. Normals are
// never recomputed here; face winding set during construction is
// authoritative.
func (m *Mesh) Cleanup(floorHeight float64) {
	m.MergeDoubles(MergeDistance)
	m.RemoveDegenerateFaces()
	m.RemoveLooseVerts()
	m.DissolveWallEdges(floorHeight)
	m.RemoveLooseVerts()
}

// MergeDoubles welds vertices closer than dist using a quantized
// spatial hash. Face loops are remapped and consecutive duplicate
// indices collapsed.
func (m *Mesh) MergeDoubles(dist float64) {
	if len(m.Verts) == 0 {
		return
	}
	type cell struct{ x, y, z int64 }
	inv := 1.0 / dist
	grid := make(map[cell][]int, len(m.Verts))
	remap := make([]int, len(m.Verts))
	kept := make([]v3.Vec, 0, len(m.Verts))

	for i, v := range m.Verts {
		cx := int64(math.Floor(v.X * inv))
		cy := int64(math.Floor(v.Y * inv))
		cz := int64(math.Floor(v.Z * inv))
		found := -1
		// Search the 27 neighbouring cells so pairs straddling a cell
		// boundary still weld.
		for dx := int64(-1); dx <= 1 && found < 0; dx++ {
			for dy := int64(-1); dy <= 1 && found < 0; dy++ {
				for dz := int64(-1); dz <= 1 && found < 0; dz++ {
					for _, ki := range grid[cell{cx + dx, cy + dy, cz + dz}] {
						if kept[ki].Sub(v).Length() <= dist {
							found = ki
							break
						}
					}
				}
			}
		}
		if found >= 0 {
			remap[i] = found
			continue
		}
		ki := len(kept)
		kept = append(kept, v)
		grid[cell{cx, cy, cz}] = append(grid[cell{cx, cy, cz}], ki)
		remap[i] = ki
	}

	m.Verts = kept
	for fi := range m.Faces {
		f := &m.Faces[fi]
		out := f.Verts[:0]
		for _, vi := range f.Verts {
			nv := remap[vi]
			if len(out) == 0 || out[len(out)-1] != nv {
				out = append(out, nv)
			}
		}
		// The loop wraps; drop a trailing duplicate of the head too.
		for len(out) > 1 && out[0] == out[len(out)-1] {
			out = out[:len(out)-1]
		}
		f.Verts = out
	}
}

// RemoveDegenerateFaces drops faces with fewer than three vertices or
// near-zero area.
func (m *Mesh) RemoveDegenerateFaces() {
	out := m.Faces[:0]
	for i := range m.Faces {
		if len(m.Faces[i].Verts) < 3 {
			continue
		}
		if m.faceAreaAt(i) < minFaceArea {
			continue
		}
		out = append(out, m.Faces[i])
	}
	m.Faces = out
}

func (m *Mesh) faceAreaAt(i int) float64 {
	return m.FaceArea(i)
}

// RemoveLooseVerts drops vertices referenced by no face and compacts
// the vertex buffer.
func (m *Mesh) RemoveLooseVerts() {
	used := make([]bool, len(m.Verts))
	for _, f := range m.Faces {
		for _, vi := range f.Verts {
			used[vi] = true
		}
	}
	remap := make([]int, len(m.Verts))
	kept := m.Verts[:0]
	for i, v := range m.Verts {
		if !used[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, v)
	}
	m.Verts = kept
	for fi := range m.Faces {
		f := &m.Faces[fi]
		for j, vi := range f.Verts {
			f.Verts[j] = remap[vi]
		}
	}
}

// DissolveWallEdges removes vertical edges left behind by the grid wall
// builder where two coplanar wall faces meet across a full-height cell
// boundary. An edge dissolves when it has exactly two adjacent faces,
// both wall material, facing the same way (normal dot >= 0.999), the
// edge is near-vertical, and it is tall enough to be a full cell edge
// rather than an opening frame edge.
func (m *Mesh) DissolveWallEdges(floorHeight float64) {
	minLen := floorHeight * 0.8
	normals := make([]v3.Vec, len(m.Faces))
	for i := range m.Faces {
		normals[i] = m.FaceNormal(i)
	}

	ef := m.edgeFaces()
	merged := make([]int, len(m.Faces)) // union-find over faces
	for i := range merged {
		merged[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for merged[i] != i {
			merged[i] = merged[merged[i]]
			i = merged[i]
		}
		return i
	}

	for key, faces := range ef {
		if len(faces) != 2 {
			continue
		}
		f1, f2 := find(faces[0]), find(faces[1])
		if f1 == f2 {
			continue
		}
		if m.Faces[f1].Material != MatWalls || m.Faces[f2].Material != MatWalls {
			continue
		}
		if normals[faces[0]].Dot(normals[faces[1]]) < 0.999 {
			continue
		}
		d := m.Verts[key[1]].Sub(m.Verts[key[0]])
		l := d.Length()
		if l < minLen {
			continue
		}
		if math.Abs(d.Z)/l <= 0.9 {
			continue
		}
		nf, ok := m.mergeFaceLoops(f1, f2, key)
		if !ok {
			continue
		}
		m.Faces[f1] = nf
		m.Faces[f2].Verts = nil
		merged[f2] = f1
	}

	out := m.Faces[:0]
	for i := range m.Faces {
		if len(m.Faces[i].Verts) >= 3 {
			out = append(out, m.Faces[i])
		}
	}
	m.Faces = out
}

// mergeFaceLoops joins the loops of f1 and f2 across the shared edge.
// Both loops must traverse the edge in opposite directions, which holds
// for consistently wound coplanar neighbours.
func (m *Mesh) mergeFaceLoops(f1, f2 int, edge EdgeKey) (Face, bool) {
	a, b := edge[0], edge[1]

	rotTo := func(verts []int, x, y int) ([]int, bool) {
		// Rotate so the loop starts with x immediately followed by y.
		n := len(verts)
		for i, vi := range verts {
			if vi == x && verts[(i+1)%n] == y {
				out := make([]int, 0, n)
				out = append(out, verts[i:]...)
				out = append(out, verts[:i]...)
				return out, true
			}
		}
		return nil, false
	}

	l1, ok := rotTo(m.Faces[f1].Verts, a, b)
	if !ok {
		// f1 traverses the edge as b->a.
		l1, ok = rotTo(m.Faces[f1].Verts, b, a)
		if !ok {
			return Face{}, false
		}
		a, b = b, a
	}
	l2, ok := rotTo(m.Faces[f2].Verts, b, a)
	if !ok {
		return Face{}, false
	}

	// l1 = [a, b, ...rest1], l2 = [b, a, ...rest2].
	// Merged loop: b ...rest1 a ...rest2, closing back to b.
	mergedVerts := make([]int, 0, len(l1)+len(l2)-2)
	mergedVerts = append(mergedVerts, l1[1:]...) // b ...rest1
	mergedVerts = append(mergedVerts, l2[1:]...) // a ...rest2
	return Face{Verts: mergedVerts, Material: m.Faces[f1].Material}, true
}
