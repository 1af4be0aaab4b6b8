package interiors

import (
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ashlar/pkg/geom"
)

// StairPosition names where a profile reserves its stair zone.
type StairPosition string

const (
	StairBackRight  StairPosition = "back_right"
	StairBackLeft   StairPosition = "back_left"
	StairBackCenter StairPosition = "back_center"
	StairFrontRight StairPosition = "front_right"
	StairFrontLeft  StairPosition = "front_left"
)

// StairZone reserves an area for the stair run, identical on every
// floor so the flights stack. The zone shrinks with the interior and
// keeps a margin from the exterior walls so floor slabs still reach
// them.
func StairZone(width, depth, wallThickness float64, pos StairPosition) Bounds {
	ib := InteriorBounds(width, depth, wallThickness)
	iw := ib.Width()
	id := ib.Depth()

	zoneWidth := StairZoneWidth
	if w := iw * 0.25; w < zoneWidth {
		zoneWidth = w
	}
	zoneDepth := StairZoneDepth
	if d := id * 0.4; d < zoneDepth {
		zoneDepth = d
	}

	const wallMargin = 0.3
	var z Bounds
	switch {
	case strings.Contains(string(pos), "right"):
		z.XMax = ib.XMax - wallMargin
		z.XMin = z.XMax - zoneWidth
	case strings.Contains(string(pos), "left"):
		z.XMin = ib.XMin + wallMargin
		z.XMax = z.XMin + zoneWidth
	default:
		z.XMin = ib.XMin + (iw-zoneWidth)/2
		z.XMax = z.XMin + zoneWidth
	}
	if strings.Contains(string(pos), "front") {
		z.YMin = ib.YMin + wallMargin
		z.YMax = z.YMin + zoneDepth
	} else {
		z.YMax = ib.YMax - wallMargin
		z.YMin = z.YMax - zoneDepth
	}
	return z
}

// FloorOpening is the hole cut in floor slabs above a stair zone,
// inset slightly for framing.
func FloorOpening(width, depth, wallThickness float64, pos StairPosition) Bounds {
	return StairZone(width, depth, wallThickness, pos).Inset(0.1)
}

// BuildStairs meshes one stair flight inside the zone: solid step
// boxes climbing toward the back of the zone, then a landing slab
// spanning the reserved landing depth at the top.
func BuildStairs(m *geom.Mesh, zone Bounds, floorHeight, baseZ float64) {
	runDepth := zone.Depth() - StairLanding

	numSteps := int(floorHeight / 0.2)
	if numSteps < 1 {
		numSteps = 1
	}
	stepHeight := floorHeight / float64(numSteps)
	stepDepth := runDepth / float64(numSteps)
	const stepThickness = 0.12

	for i := 0; i < numSteps; i++ {
		topZ := baseZ + float64(i+1)*stepHeight
		y := zone.YMin + float64(i)*stepDepth
		m.AddBox(
			v3.Vec{X: zone.XMin, Y: y, Z: topZ - stepThickness},
			v3.Vec{X: zone.XMax, Y: y + stepDepth, Z: topZ},
			geom.MatStairs)
	}

	const landingThickness = 0.15
	landingZ := baseZ + floorHeight
	m.AddBox(
		v3.Vec{X: zone.XMin, Y: zone.YMax - StairLanding, Z: landingZ - landingThickness},
		v3.Vec{X: zone.XMax, Y: zone.YMax, Z: landingZ},
		geom.MatStairs)
}
