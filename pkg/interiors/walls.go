package interiors

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/sirupsen/logrus"

	"github.com/chazu/ashlar/pkg/geom"
)

// Wall is one straight interior partition run in plan coordinates.
// Interior walls are always cardinal; ValidateWall straightens any
// residual drift before meshing.
type Wall struct {
	X0, Y0    float64
	X1, Y1    float64
	Height    float64
	Thickness float64
}

// Length returns the plan-projected run length.
func (w Wall) Length() float64 {
	return math.Hypot(w.X1-w.X0, w.Y1-w.Y0)
}

// AlongX reports whether the wall runs east-west.
func (w Wall) AlongX() bool {
	return math.Abs(w.X1-w.X0) > math.Abs(w.Y1-w.Y0)
}

// ValidateWall checks a proposed wall against the exterior shell:
// diagonal walls are rejected, near-cardinal walls are straightened to
// their average offset, and walls whose endpoint lands on an exterior
// wall are rejected when that attachment point falls inside a window
// or door span. The second return is false when the wall cannot be
// placed.
func ValidateWall(w Wall, b Bounds, spans OpeningSpans) (Wall, bool) {
	dx := math.Abs(w.X1 - w.X0)
	dy := math.Abs(w.Y1 - w.Y0)
	if dx > 0.1 && dy > 0.1 {
		log.WithFields(logrus.Fields{"dx": dx, "dy": dy}).
			Debug("rejecting diagonal interior wall")
		return Wall{}, false
	}

	if dx > dy {
		y := (w.Y0 + w.Y1) / 2
		w.Y0, w.Y1 = y, y
		if math.Abs(w.X0-b.XMin) < 0.01 && spans.Blocked(SideLeft, y) {
			return Wall{}, false
		}
		if math.Abs(w.X1-b.XMax) < 0.01 && spans.Blocked(SideRight, y) {
			return Wall{}, false
		}
	} else {
		x := (w.X0 + w.X1) / 2
		w.X0, w.X1 = x, x
		if math.Abs(w.Y0-b.YMin) < 0.01 && spans.Blocked(SideFront, x) {
			return Wall{}, false
		}
		if math.Abs(w.Y1-b.YMax) < 0.01 && spans.Blocked(SideBack, x) {
			return Wall{}, false
		}
	}
	return w, true
}

// ValidRoomSize reports whether a room footprint is usable.
func ValidRoomSize(width, depth float64) bool {
	if width < MinRoomSize || depth < MinRoomSize {
		return false
	}
	return width*depth >= MinRoomArea
}

// OptimalDividerPosition places a divider wall along one axis at the
// target ratio, clamped so both resulting rooms keep the minimum
// dimension. The second return is false when the span cannot hold two
// rooms.
func OptimalDividerPosition(axisMin, axisMax, targetRatio float64) (float64, bool) {
	span := axisMax - axisMin
	if span < MinRoomSize*2 {
		return 0, false
	}
	pos := axisMin + span*targetRatio
	lo := axisMin + MinRoomSize
	hi := axisMax - MinRoomSize
	return math.Max(lo, math.Min(hi, pos)), true
}

// overlapsZone reports whether the wall's plan bounding box intersects
// the zone.
func (w Wall) overlapsZone(zone Bounds) bool {
	xMin, xMax := math.Min(w.X0, w.X1), math.Max(w.X0, w.X1)
	yMin, yMax := math.Min(w.Y0, w.Y1), math.Max(w.Y0, w.Y1)
	return xMin < zone.XMax && xMax > zone.XMin &&
		yMin < zone.YMax && yMax > zone.YMin
}

// SplitForZone splits or shortens a wall so it never crosses a
// reserved zone. Segments shorter than 0.3 m are dropped; a wall fully
// inside the zone vanishes.
func SplitForZone(w Wall, zone Bounds) []Wall {
	if !w.overlapsZone(zone) {
		return []Wall{w}
	}

	var out []Wall
	if w.AlongX() {
		y := w.Y0
		if zone.YMin <= y && y <= zone.YMax {
			if w.X0 < zone.XMin {
				seg := w
				seg.X1, seg.Y1 = zone.XMin, y
				if seg.Length() > 0.3 {
					out = append(out, seg)
				}
			}
			if w.X1 > zone.XMax {
				seg := w
				seg.X0, seg.Y0 = zone.XMax, y
				if seg.Length() > 0.3 {
					out = append(out, seg)
				}
			}
			return out
		}
		return []Wall{w}
	}

	x := w.X0
	if zone.XMin <= x && x <= zone.XMax {
		if w.Y0 < zone.YMin {
			seg := w
			seg.X1, seg.Y1 = x, zone.YMin
			if seg.Length() > 0.3 {
				out = append(out, seg)
			}
		}
		if w.Y1 > zone.YMax {
			seg := w
			seg.X0, seg.Y0 = x, zone.YMax
			if seg.Length() > 0.3 {
				out = append(out, seg)
			}
		}
		return out
	}
	return []Wall{w}
}

// BuildWall meshes one interior wall as a solid box. The wall is
// snapped to its dominant axis; runs under 0.2 m are skipped.
func BuildWall(m *geom.Mesh, w Wall, baseZ float64) {
	if w.Length() < 0.2 {
		return
	}

	half := w.Thickness / 2
	var min, max v3.Vec
	if w.AlongX() {
		y := (w.Y0 + w.Y1) / 2
		min = v3.Vec{X: math.Min(w.X0, w.X1), Y: y - half, Z: baseZ}
		max = v3.Vec{X: math.Max(w.X0, w.X1), Y: y + half, Z: baseZ + w.Height}
	} else {
		x := (w.X0 + w.X1) / 2
		min = v3.Vec{X: x - half, Y: math.Min(w.Y0, w.Y1), Z: baseZ}
		max = v3.Vec{X: x + half, Y: math.Max(w.Y0, w.Y1), Z: baseZ + w.Height}
	}
	m.AddBox(min, max, geom.MatInteriorWall)
}
