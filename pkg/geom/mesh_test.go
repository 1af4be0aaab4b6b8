package geom

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

func TestAddQuadWindingFollowsOutward(t *testing.T) {
	tests := []struct {
		name    string
		outward v3.Vec
	}{
		{"plus_z", v3.Vec{Z: 1}},
		{"minus_z", v3.Vec{Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMesh()
			m.AddQuad(
				v3.Vec{X: 0, Y: 0}, v3.Vec{X: 1, Y: 0},
				v3.Vec{X: 1, Y: 1}, v3.Vec{X: 0, Y: 1},
				tt.outward, MatWalls,
			)
			n := m.FaceNormal(0)
			if n.Dot(tt.outward) < 0.99 {
				t.Fatalf("normal %v does not face %v", n, tt.outward)
			}
		})
	}
}

func TestAddBoxIsWatertight(t *testing.T) {
	m := NewMesh()
	m.AddBox(v3.Vec{}, v3.Vec{X: 2, Y: 3, Z: 4}, MatWalls)

	if m.FaceCount() != 6 {
		t.Fatalf("face count = %d, want 6", m.FaceCount())
	}
	for key, faces := range m.edgeFaces() {
		if len(faces) != 2 {
			t.Errorf("edge %v has %d faces, want 2", key, len(faces))
		}
	}

	// Every face normal must point away from the box center.
	center := v3.Vec{X: 1, Y: 1.5, Z: 2}
	for i := range m.Faces {
		out := m.FaceCenter(i).Sub(center)
		if m.FaceNormal(i).Dot(out) <= 0 {
			t.Errorf("face %d normal points inward", i)
		}
	}
}

func TestFaceAreaAndNormal(t *testing.T) {
	m := NewMesh()
	m.AddQuad(
		v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 2, Y: 0, Z: 0},
		v3.Vec{X: 2, Y: 0, Z: 3}, v3.Vec{X: 0, Y: 0, Z: 3},
		v3.Vec{Y: -1}, MatWalls,
	)
	if got := m.FaceArea(0); math.Abs(got-6.0) > 1e-9 {
		t.Fatalf("area = %v, want 6", got)
	}
	if n := m.FaceNormal(0); math.Abs(n.Y+1) > 1e-9 {
		t.Fatalf("normal = %v, want -Y", n)
	}
}

// ---------------------------------------------------------------------------
// Cleanup
// ---------------------------------------------------------------------------

func TestMergeDoublesWeldsAdjacentQuads(t *testing.T) {
	m := NewMesh()
	// Two quads sharing an edge, vertices duplicated per quad.
	m.AddQuad(
		v3.Vec{X: 0, Y: 0}, v3.Vec{X: 1, Y: 0},
		v3.Vec{X: 1, Y: 0, Z: 1}, v3.Vec{X: 0, Y: 0, Z: 1},
		v3.Vec{Y: -1}, MatWalls,
	)
	m.AddQuad(
		v3.Vec{X: 1, Y: 0}, v3.Vec{X: 2, Y: 0},
		v3.Vec{X: 2, Y: 0, Z: 1}, v3.Vec{X: 1, Y: 0, Z: 1},
		v3.Vec{Y: -1}, MatWalls,
	)
	if m.VertexCount() != 8 {
		t.Fatalf("pre-merge vertex count = %d, want 8", m.VertexCount())
	}

	m.MergeDoubles(MergeDistance)

	if m.VertexCount() != 6 {
		t.Fatalf("post-merge vertex count = %d, want 6", m.VertexCount())
	}
	shared := 0
	for _, faces := range m.edgeFaces() {
		if len(faces) == 2 {
			shared++
		}
	}
	if shared != 1 {
		t.Fatalf("shared edge count = %d, want 1", shared)
	}
}

func TestRemoveDegenerateFaces(t *testing.T) {
	m := NewMesh()
	m.AddQuad(
		v3.Vec{}, v3.Vec{X: 1},
		v3.Vec{X: 1, Z: 1}, v3.Vec{Z: 1},
		v3.Vec{Y: -1}, MatWalls,
	)
	// Sliver quad well below the area threshold.
	m.AddQuad(
		v3.Vec{X: 5}, v3.Vec{X: 5.00001},
		v3.Vec{X: 5.00001, Z: 0.0001}, v3.Vec{X: 5, Z: 0.0001},
		v3.Vec{Y: -1}, MatWalls,
	)

	m.RemoveDegenerateFaces()
	m.RemoveLooseVerts()

	if m.FaceCount() != 1 {
		t.Fatalf("face count = %d, want 1", m.FaceCount())
	}
	if m.VertexCount() != 4 {
		t.Fatalf("vertex count = %d, want 4", m.VertexCount())
	}
}

func TestDissolveWallEdges(t *testing.T) {
	const h = 3.5

	build := func(mat Material) *Mesh {
		m := NewMesh()
		m.AddQuad(
			v3.Vec{X: 0, Y: 0}, v3.Vec{X: 1, Y: 0},
			v3.Vec{X: 1, Y: 0, Z: h}, v3.Vec{X: 0, Y: 0, Z: h},
			v3.Vec{Y: -1}, mat,
		)
		m.AddQuad(
			v3.Vec{X: 1, Y: 0}, v3.Vec{X: 2, Y: 0},
			v3.Vec{X: 2, Y: 0, Z: h}, v3.Vec{X: 1, Y: 0, Z: h},
			v3.Vec{Y: -1}, mat,
		)
		m.MergeDoubles(MergeDistance)
		return m
	}

	t.Run("coplanar_wall_quads_merge", func(t *testing.T) {
		m := build(MatWalls)
		m.DissolveWallEdges(h)
		if m.FaceCount() != 1 {
			t.Fatalf("face count = %d, want 1", m.FaceCount())
		}
		if n := m.FaceNormal(0); n.Dot(v3.Vec{Y: -1}) < 0.99 {
			t.Fatalf("merged face normal flipped: %v", n)
		}
	})

	t.Run("non_wall_material_kept", func(t *testing.T) {
		m := build(MatInteriorWall)
		m.DissolveWallEdges(h)
		if m.FaceCount() != 2 {
			t.Fatalf("face count = %d, want 2", m.FaceCount())
		}
	})

	t.Run("short_edge_kept", func(t *testing.T) {
		// Edge shorter than 0.8 * floorHeight must survive; it is an
		// opening frame boundary, not a cell seam.
		m := build(MatWalls)
		m.DissolveWallEdges(h * 10)
		if m.FaceCount() != 2 {
			t.Fatalf("face count = %d, want 2", m.FaceCount())
		}
	})
}

// ---------------------------------------------------------------------------
// UVs and seams
// ---------------------------------------------------------------------------

func TestGenerateUVsProjectionPlane(t *testing.T) {
	m := NewMesh()
	// Wall facing -Y: projects onto XZ.
	m.AddQuad(
		v3.Vec{X: 1, Y: 0, Z: 2}, v3.Vec{X: 3, Y: 0, Z: 2},
		v3.Vec{X: 3, Y: 0, Z: 5}, v3.Vec{X: 1, Y: 0, Z: 5},
		v3.Vec{Y: -1}, MatWalls,
	)
	m.GenerateUVs()

	f := m.Faces[0]
	for j, vi := range f.Verts {
		v := m.Verts[vi]
		if math.Abs(f.UVs[j].X-v.X) > 1e-9 || math.Abs(f.UVs[j].Y-v.Z) > 1e-9 {
			t.Fatalf("uv[%d] = %v, want (%v, %v)", j, f.UVs[j], v.X, v.Z)
		}
	}
}

func TestMarkSeams(t *testing.T) {
	t.Run("boundary_edge", func(t *testing.T) {
		m := NewMesh()
		m.AddQuad(
			v3.Vec{}, v3.Vec{X: 1},
			v3.Vec{X: 1, Z: 1}, v3.Vec{Z: 1},
			v3.Vec{Y: -1}, MatWalls,
		)
		m.MarkSeams()
		if len(m.Seams) != 4 {
			t.Fatalf("seam count = %d, want 4", len(m.Seams))
		}
	})

	t.Run("perpendicular_corner", func(t *testing.T) {
		m := NewMesh()
		// Front wall and side wall sharing the vertical corner edge.
		m.AddQuad(
			v3.Vec{X: 0, Y: 0}, v3.Vec{X: 2, Y: 0},
			v3.Vec{X: 2, Y: 0, Z: 3}, v3.Vec{X: 0, Y: 0, Z: 3},
			v3.Vec{Y: -1}, MatWalls,
		)
		m.AddQuad(
			v3.Vec{X: 0, Y: 0}, v3.Vec{X: 0, Y: 2},
			v3.Vec{X: 0, Y: 2, Z: 3}, v3.Vec{X: 0, Y: 0, Z: 3},
			v3.Vec{X: -1}, MatWalls,
		)
		m.MergeDoubles(MergeDistance)
		m.MarkSeams()

		corner := MakeEdgeKey(indexOf(t, m, v3.Vec{}), indexOf(t, m, v3.Vec{Z: 3}))
		if !m.Seams[corner] {
			t.Fatal("corner edge not marked as seam")
		}
	})

	t.Run("coplanar_interior_edge_not_seam", func(t *testing.T) {
		m := NewMesh()
		m.AddQuad(
			v3.Vec{X: 0, Y: 0}, v3.Vec{X: 1, Y: 0},
			v3.Vec{X: 1, Y: 0, Z: 3}, v3.Vec{X: 0, Y: 0, Z: 3},
			v3.Vec{Y: -1}, MatWalls,
		)
		m.AddQuad(
			v3.Vec{X: 1, Y: 0}, v3.Vec{X: 2, Y: 0},
			v3.Vec{X: 2, Y: 0, Z: 3}, v3.Vec{X: 1, Y: 0, Z: 3},
			v3.Vec{Y: -1}, MatWalls,
		)
		m.MergeDoubles(MergeDistance)
		m.MarkSeams()

		mid := MakeEdgeKey(indexOf(t, m, v3.Vec{X: 1}), indexOf(t, m, v3.Vec{X: 1, Z: 3}))
		if m.Seams[mid] {
			t.Fatal("interior coplanar edge marked as seam")
		}
	})
}

func indexOf(t *testing.T, m *Mesh, v v3.Vec) int {
	t.Helper()
	for i, p := range m.Verts {
		if p.Sub(v).Length() < 1e-9 {
			return i
		}
	}
	t.Fatalf("vertex %v not found", v)
	return -1
}

func TestAppendOffsetsIndices(t *testing.T) {
	a := NewMesh()
	a.AddBox(v3.Vec{}, v3.Vec{X: 1, Y: 1, Z: 1}, MatWalls)
	b := NewMesh()
	b.AddBox(v3.Vec{X: 2}, v3.Vec{X: 3, Y: 1, Z: 1}, MatRubble)

	a.Append(b)

	if a.FaceCount() != 12 {
		t.Fatalf("face count = %d, want 12", a.FaceCount())
	}
	for _, f := range a.Faces {
		for _, vi := range f.Verts {
			if vi < 0 || vi >= a.VertexCount() {
				t.Fatalf("face index %d out of range", vi)
			}
		}
	}
	if a.Faces[11].Material != MatRubble {
		t.Fatalf("appended material = %v, want rubble", a.Faces[11].Material)
	}
}
