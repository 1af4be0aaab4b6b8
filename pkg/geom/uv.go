package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ---------------------------------------------------------------------------
// UV projection and seam marking
// ---------------------------------------------------------------------------

// GenerateUVs assigns box-projected UVs to every face: each face is
// projected onto the world plane most aligned with its normal, in
// world units so texel density stays uniform across the building.
func (m *Mesh) GenerateUVs() {
	for i := range m.Faces {
		f := &m.Faces[i]
		n := m.FaceNormal(i)
		ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)

		f.UVs = make([]v2.Vec, len(f.Verts))
		for j, vi := range f.Verts {
			v := m.Verts[vi]
			switch {
			case az >= ax && az >= ay:
				f.UVs[j] = v2.Vec{X: v.X, Y: v.Y}
			case ax >= ay:
				f.UVs[j] = v2.Vec{X: v.Y, Y: v.Z}
			default:
				f.UVs[j] = v2.Vec{X: v.X, Y: v.Z}
			}
		}
	}
}

// MarkSeams flags the UV island boundaries so an unwrap pass splits
// the projection exactly where adjacent faces project onto different
// planes. Must run after Cleanup so edge adjacency reflects the welded
// surface.
func (m *Mesh) MarkSeams() {
	if m.Seams == nil {
		m.Seams = make(map[EdgeKey]bool)
	}
	normals := make([]v3cache, len(m.Faces))
	for i := range m.Faces {
		normals[i] = v3cache{n: m.FaceNormal(i), cz: m.FaceCenter(i).Z}
	}

	for key, faces := range m.edgeFaces() {
		if len(faces) != 2 {
			// Boundary and non-manifold edges always seam.
			m.Seams[key] = true
			continue
		}
		fa, fb := faces[0], faces[1]
		if m.Faces[fa].Material != m.Faces[fb].Material {
			m.Seams[key] = true
			continue
		}

		na, nb := normals[fa].n, normals[fb].n
		d := m.Verts[key[1]].Sub(m.Verts[key[0]])
		vertical := math.Abs(d.X) < 0.01 && math.Abs(d.Y) < 0.01 && math.Abs(d.Z) > 0.1
		horizontal := math.Abs(d.Z) < 0.01

		// Vertical building corner: walls meeting at ~90 degrees.
		if vertical && math.Abs(na.Dot(nb)) < 0.1 {
			m.Seams[key] = true
			continue
		}

		aFlat := math.Abs(na.Z) > 0.5
		bFlat := math.Abs(nb.Z) > 0.5

		// Wall meets floor/roof.
		if aFlat != bFlat {
			m.Seams[key] = true
			continue
		}

		// Two horizontal surfaces at different heights (slab edge vs
		// roof lip).
		if aFlat && bFlat && math.Abs(normals[fa].cz-normals[fb].cz) > 0.1 {
			m.Seams[key] = true
			continue
		}

		// Perimeter of strongly horizontal faces: cut the slab and
		// roof outlines free even where the neighbour passes the
		// checks above.
		if horizontal && (math.Abs(na.Z) > 0.9 || math.Abs(nb.Z) > 0.9) && math.Abs(na.Dot(nb)) < 0.999 {
			m.Seams[key] = true
		}
	}
}

type v3cache struct {
	n  v3.Vec
	cz float64
}
