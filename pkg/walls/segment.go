// Package walls models exterior wall segments with rectangular
// openings and meshes them with thickness. A segment runs from start
// to end at a fixed base height; openings are expressed in wall-local
// coordinates (distance along the wall, height above the segment
// base).
package walls

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// OpeningKind distinguishes doors from windows for frame materials.
type OpeningKind int

const (
	OpeningWindow OpeningKind = iota
	OpeningDoor
)

// Opening is a rectangular cut in wall-local coordinates.
type Opening struct {
	XStart, XEnd float64
	ZStart, ZEnd float64
	Kind         OpeningKind
}

// Segment is one straight wall run. Direction and Normal are unit
// vectors; Normal points out of the building and the inner skin sits
// behind it.
type Segment struct {
	Start, End v3.Vec
	Height     float64
	BaseZ      float64
	Direction  v3.Vec
	Normal     v3.Vec
	Openings   []Opening
}

// NewSegment builds a segment from its endpoints. When normal is the
// zero vector it defaults to the left-hand perpendicular of the run
// direction.
func NewSegment(start, end v3.Vec, height, baseZ float64, normal v3.Vec) *Segment {
	dir := end.Sub(start)
	if l := dir.Length(); l > 1e-12 {
		dir = dir.MulScalar(1.0 / l)
	}
	if normal.Length() < 1e-12 {
		normal = v3.Vec{X: -dir.Y, Y: dir.X}
	}
	return &Segment{
		Start:     start,
		End:       end,
		Height:    height,
		BaseZ:     baseZ,
		Direction: dir,
		Normal:    normal,
	}
}

// AddOpening appends a rectangular cut.
func (s *Segment) AddOpening(xStart, xEnd, zStart, zEnd float64, kind OpeningKind) {
	s.Openings = append(s.Openings, Opening{
		XStart: xStart, XEnd: xEnd,
		ZStart: zStart, ZEnd: zEnd,
		Kind: kind,
	})
}

// Length returns the segment run length.
func (s *Segment) Length() float64 {
	return s.End.Sub(s.Start).Length()
}

// Perimeter holds the four exterior walls of one floor. Front and back
// span the full width; the side walls are shortened by one wall
// thickness at each end so the corners are owned by front and back.
type Perimeter struct {
	Front, Back, Left, Right *Segment
}

// NewPerimeter lays out the four exterior walls for a floor whose
// outer footprint is width x depth with its front-left corner at the
// origin.
func NewPerimeter(width, depth, floorHeight, baseZ, wallThickness float64) *Perimeter {
	return &Perimeter{
		Front: NewSegment(
			v3.Vec{X: 0, Y: 0}, v3.Vec{X: width, Y: 0},
			floorHeight, baseZ, v3.Vec{Y: -1}),
		Back: NewSegment(
			v3.Vec{X: width, Y: depth}, v3.Vec{X: 0, Y: depth},
			floorHeight, baseZ, v3.Vec{Y: 1}),
		Left: NewSegment(
			v3.Vec{X: 0, Y: depth - wallThickness}, v3.Vec{X: 0, Y: wallThickness},
			floorHeight, baseZ, v3.Vec{X: -1}),
		Right: NewSegment(
			v3.Vec{X: width, Y: wallThickness}, v3.Vec{X: width, Y: depth - wallThickness},
			floorHeight, baseZ, v3.Vec{X: 1}),
	}
}

// All returns the walls in build order.
func (p *Perimeter) All() []*Segment {
	return []*Segment{p.Front, p.Back, p.Left, p.Right}
}
