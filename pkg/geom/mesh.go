// Package geom provides the polygon mesh buffer and construction
// primitives used by the building generator. Meshes are authored in
// world space with Z up; faces are planar polygons (quads and fans)
// wound counter-clockwise when viewed from outside.
package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Material identifies the surface slot a face belongs to. The values
// are stable indices usable directly as material slots by exporters.
type Material int

const (
	MatWalls Material = iota
	MatFloor
	MatRoof
	MatWindowFrame
	MatDoorFrame
	MatInteriorWall
	MatStairs
	MatRubble
)

var materialNames = [...]string{
	"walls",
	"floor",
	"roof",
	"window-frame",
	"door-frame",
	"interior-wall",
	"stairs",
	"rubble",
}

func (m Material) String() string {
	if m < 0 || int(m) >= len(materialNames) {
		return "unknown"
	}
	return materialNames[m]
}

// Face is a planar polygon over mesh vertex indices.
// UVs is populated by GenerateUVs and is index-parallel with Verts.
type Face struct {
	Verts    []int
	Material Material
	UVs      []v2.Vec
}

// EdgeKey identifies an undirected edge by its sorted vertex indices.
type EdgeKey [2]int

// MakeEdgeKey returns the canonical key for the edge between a and b.
func MakeEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{a, b}
}

// Mesh is an append-only polygon soup. Construction deliberately does
// not share vertices between faces; Cleanup welds coincident vertices
// afterwards so that adjacency queries (seams, dissolve) see a
// connected surface.
type Mesh struct {
	Verts []v3.Vec
	Faces []Face
	Seams map[EdgeKey]bool
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{Seams: make(map[EdgeKey]bool)}
}

// AddVertex appends v and returns its index.
func (m *Mesh) AddVertex(v v3.Vec) int {
	m.Verts = append(m.Verts, v)
	return len(m.Verts) - 1
}

// AddFace appends a polygon over existing vertex indices.
func (m *Mesh) AddFace(mat Material, verts ...int) {
	m.Faces = append(m.Faces, Face{Verts: verts, Material: mat})
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Verts) }

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Faces) == 0 }

// Append copies all geometry from other into m. Seam flags are not
// carried over; seams are computed on the assembled mesh.
func (m *Mesh) Append(other *Mesh) {
	base := len(m.Verts)
	m.Verts = append(m.Verts, other.Verts...)
	for _, f := range other.Faces {
		nf := Face{Material: f.Material, Verts: make([]int, len(f.Verts))}
		for i, vi := range f.Verts {
			nf.Verts[i] = vi + base
		}
		m.Faces = append(m.Faces, nf)
	}
}

// FaceNormal returns the unit normal of face i using Newell's method,
// which is robust for any planar polygon. Returns the zero vector for
// degenerate faces.
func (m *Mesh) FaceNormal(i int) v3.Vec {
	f := m.Faces[i]
	var n v3.Vec
	for j, vi := range f.Verts {
		a := m.Verts[vi]
		b := m.Verts[f.Verts[(j+1)%len(f.Verts)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	l := n.Length()
	if l < 1e-12 {
		return v3.Vec{}
	}
	return n.MulScalar(1.0 / l)
}

// FaceArea returns the area of face i.
func (m *Mesh) FaceArea(i int) float64 {
	f := m.Faces[i]
	var n v3.Vec
	for j, vi := range f.Verts {
		a := m.Verts[vi]
		b := m.Verts[f.Verts[(j+1)%len(f.Verts)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return 0.5 * n.Length()
}

// FaceCenter returns the vertex centroid of face i.
func (m *Mesh) FaceCenter(i int) v3.Vec {
	f := m.Faces[i]
	var c v3.Vec
	for _, vi := range f.Verts {
		c = c.Add(m.Verts[vi])
	}
	return c.MulScalar(1.0 / float64(len(f.Verts)))
}

// edgeFaces builds the undirected edge to adjacent-face map.
func (m *Mesh) edgeFaces() map[EdgeKey][]int {
	ef := make(map[EdgeKey][]int)
	for fi, f := range m.Faces {
		for j := range f.Verts {
			k := MakeEdgeKey(f.Verts[j], f.Verts[(j+1)%len(f.Verts)])
			ef[k] = append(ef[k], fi)
		}
	}
	return ef
}

// BoundingBox returns the axis-aligned bounds of all vertices.
// Returns zero vectors for an empty mesh.
func (m *Mesh) BoundingBox() (min, max v3.Vec) {
	if len(m.Verts) == 0 {
		return
	}
	min = m.Verts[0]
	max = m.Verts[0]
	for _, v := range m.Verts[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return
}
