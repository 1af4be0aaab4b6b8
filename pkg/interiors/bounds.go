// Package interiors lays out and meshes the inside of a building
// shell: profile-driven room partitions, a stair zone with stairs and
// floor openings, and rubble in its several forms. Layout runs in plan
// coordinates (X across the front, Y toward the back) against the
// interior bounds left by the exterior walls; every placement is
// validated for room usability and for clearance from exterior
// openings before any geometry is emitted.
package interiors

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/chazu/ashlar/pkg/params"
)

var log = logrus.WithField("pkg", "interiors")

// Layout solver constants, all in meters.
const (
	StairWidth     = 1.0 // stair run width
	StairDepth     = 2.8 // depth of the stair run itself
	StairLanding   = 1.0 // landing depth at the top of a run
	StairZoneWidth = 1.2 // reserved zone width including margins
	StairZoneDepth = 3.2 // reserved zone depth including landing

	MinRoomSize   = 2.5 // minimum usable room dimension
	MinRoomArea   = 6.0 // minimum usable room area
	MinWallOffset = 1.5 // minimum interior wall distance from exterior

	DoorWidth         = 0.9 // interior door width
	ExteriorDoorWidth = 1.0 // exterior stair access door width
	WallClearance     = 0.3 // clearance from exterior openings
)

// Bounds is an axis-aligned plan rectangle.
type Bounds struct {
	XMin, YMin, XMax, YMax float64
}

// Width returns the X extent.
func (b Bounds) Width() float64 { return b.XMax - b.XMin }

// Depth returns the Y extent.
func (b Bounds) Depth() float64 { return b.YMax - b.YMin }

// Inset returns the bounds shrunk by d on every side.
func (b Bounds) Inset(d float64) Bounds {
	return Bounds{b.XMin + d, b.YMin + d, b.XMax - d, b.YMax - d}
}

// Overlaps reports whether two rectangles intersect with positive
// area.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.XMin < o.XMax && b.XMax > o.XMin &&
		b.YMin < o.YMax && b.YMax > o.YMin
}

// InteriorBounds returns the usable plan rectangle inside the exterior
// walls.
func InteriorBounds(width, depth, wallThickness float64) Bounds {
	return Bounds{
		XMin: wallThickness,
		YMin: wallThickness,
		XMax: width - wallThickness,
		YMax: depth - wallThickness,
	}
}

// Side identifies an exterior wall in plan coordinates.
type Side int

const (
	SideFront Side = iota
	SideBack
	SideLeft
	SideRight
)

var sideNames = [...]string{"front", "back", "left", "right"}

func (s Side) String() string { return sideNames[s] }

// Span is an occupied interval along an exterior wall: X coordinates
// for front/back, Y coordinates for left/right.
type Span struct {
	Start, End float64
}

// OpeningSpans records where exterior windows and doors sit on each
// wall, for interior wall attachment checks.
type OpeningSpans [4][]Span

// ComputeOpeningSpans predicts the exterior opening positions from the
// build parameters, using the same distribution rules as the wall
// layout.
func ComputeOpeningSpans(b params.Building) OpeningSpans {
	var spans OpeningSpans

	if b.WindowSides.Front() || b.WindowSides.Back() {
		fb := windowSpans(b.Width, b.WindowsPerFloor, b.WindowWidth, b.WindowSpacing)
		if b.WindowSides.Front() {
			spans[SideFront] = append(spans[SideFront], fb...)
		}
		if b.WindowSides.Back() {
			spans[SideBack] = append(spans[SideBack], fb...)
		}
	}

	// Doors occupy the wall regardless of window routing.
	doorX := b.FrontDoorOffset * (b.Width - b.DoorWidth)
	spans[SideFront] = append(spans[SideFront], Span{doorX, doorX + b.DoorWidth})
	if b.BackExit {
		backX := b.BackDoorOffset * (b.Width - b.DoorWidth)
		spans[SideBack] = append(spans[SideBack], Span{backX, backX + b.DoorWidth})
	}

	sideCount := b.WindowsPerFloor / 2
	if sideCount < 1 {
		sideCount = 1
	}
	if b.WindowSides.Left() || b.WindowSides.Right() {
		lr := windowSpans(b.Depth, sideCount, b.WindowWidth, b.WindowSpacing)
		if b.WindowSides.Left() {
			spans[SideLeft] = append(spans[SideLeft], lr...)
		}
		if b.WindowSides.Right() {
			spans[SideRight] = append(spans[SideRight], lr...)
		}
	}

	return spans
}

// windowSpans mirrors the exterior window distribution: edge margins,
// capacity cap, and even gap sharing.
func windowSpans(wallLength float64, count int, windowWidth, spacing float64) []Span {
	if count <= 0 {
		return nil
	}
	edgeMargin := spacing * 0.5
	if edgeMargin < 0.3 {
		edgeMargin = 0.3
	}
	available := wallLength - 2*edgeMargin
	if available < windowWidth {
		return nil
	}

	const minGap = 0.3
	maxWindows := int((available + minGap) / (windowWidth + minGap))
	if maxWindows < 1 {
		maxWindows = 1
	}
	if count > maxWindows {
		count = maxWindows
	}

	remaining := available - float64(count)*windowWidth
	gap := remaining / float64(count+1)

	out := make([]Span, 0, count)
	for i := 0; i < count; i++ {
		start := edgeMargin + gap + float64(i)*(windowWidth+gap)
		out = append(out, Span{start, start + windowWidth})
	}
	return out
}

// Blocked reports whether pos on the given wall falls inside an
// opening, with attachment clearance on both sides.
func (o OpeningSpans) Blocked(side Side, pos float64) bool {
	for _, s := range o[side] {
		if s.Start-WallClearance <= pos && pos <= s.End+WallClearance {
			return true
		}
	}
	return false
}

// FindSafeAttachment returns a position near target on the given wall
// that does not block an opening. The second return is false when the
// wall has no usable gap at all.
func (o OpeningSpans) FindSafeAttachment(side Side, target, minPos, maxPos float64) (float64, bool) {
	if !o.Blocked(side, target) {
		return target, true
	}

	spans := append([]Span(nil), o[side]...)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var zones []Span
	cur := minPos
	for _, s := range spans {
		if cur < s.Start-WallClearance {
			zones = append(zones, Span{cur, s.Start - WallClearance})
		}
		if e := s.End + WallClearance; e > cur {
			cur = e
		}
	}
	if cur < maxPos {
		zones = append(zones, Span{cur, maxPos})
	}

	best := 0.0
	bestDist := -1.0
	for _, z := range zones {
		if z.Start <= target && target <= z.End {
			return target, true
		}
		for _, edge := range [2]float64{z.Start, z.End} {
			d := edge - target
			if d < 0 {
				d = -d
			}
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = edge
			}
		}
	}
	if bestDist < 0 {
		return 0, false
	}
	return best, true
}
