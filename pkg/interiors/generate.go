package interiors

import (
	"github.com/sirupsen/logrus"

	"github.com/chazu/ashlar/pkg/geom"
	"github.com/chazu/ashlar/pkg/params"
)

// Generate builds the complete interior for a building: validated
// partition walls on every intact floor and stair flights between
// them. damageMin is the lowest surviving exterior wall height; floors
// at or above it get no interior. Pass the full building height when
// the shell is undamaged.
//
// Placement rules, applied in order:
//   - walls are straightened to cardinal and dropped when diagonal,
//     shorter than 0.3 m, or attached over an exterior opening
//   - upper floors reuse the validated ground plan so partitions stack
//   - upper floor walls need a slab to stand on, stairs need one to
//     land on; neither is built without FloorSlabs
//   - the top floor of a patio building stays open
func Generate(m *geom.Mesh, b params.Building, damageMin float64) {
	profile, ok := ProfileFor(b.BuildingProfile)
	if !ok {
		return
	}

	totalHeight := float64(b.Floors) * b.FloorHeight
	maxInteriorFloor := b.Floors
	if damageMin < totalHeight {
		maxInteriorFloor = int(damageMin / b.FloorHeight)
	}
	if b.HasPatio && b.Floors >= 2 && maxInteriorFloor > b.Floors-1 {
		maxInteriorFloor = b.Floors - 1
	}

	spans := ComputeOpeningSpans(b)
	ib := InteriorBounds(b.Width, b.Depth, b.WallThickness)

	var zone *Bounds
	if b.Floors > 1 && b.FloorSlabs {
		z := StairZone(b.Width, b.Depth, b.WallThickness, profile.StairPosition())
		zone = &z
	}

	plan := profile.GroundPlan(b)
	validated := make([]Wall, 0, len(plan.Walls))
	for _, w := range plan.Walls {
		vw, ok := ValidateWall(w, ib, spans)
		if !ok || vw.Length() < 0.3 {
			continue
		}
		validated = append(validated, vw)
	}
	log.WithFields(logrus.Fields{
		"profile":  profile.Name(),
		"proposed": len(plan.Walls),
		"placed":   len(validated),
		"floors":   maxInteriorFloor,
	}).Debug("interior layout")

	for floorIdx := 0; floorIdx < b.Floors && floorIdx < maxInteriorFloor; floorIdx++ {
		if floorIdx > 0 && !b.FloorSlabs {
			continue
		}
		baseZ := float64(floorIdx) * b.FloorHeight
		for _, w := range validated {
			BuildWall(m, w, baseZ)
		}
	}

	if b.Floors > 1 && zone != nil && b.FloorSlabs && !b.ExteriorStairs {
		maxStairFloor := b.Floors - 1
		if damageMin < totalHeight {
			maxStairFloor = int(damageMin/b.FloorHeight) - 1
		}
		for floorIdx := 0; floorIdx < maxStairFloor; floorIdx++ {
			BuildStairs(m, *zone, b.FloorHeight, float64(floorIdx)*b.FloorHeight)
		}
	}
}

// SlabOpening returns the stair opening to cut in every floor slab.
// Every multi-floor building with slabs gets one, so the floors remain
// reachable even without an interior profile; the default position
// matches the default stair zone.
func SlabOpening(b params.Building) (Bounds, bool) {
	if !b.FloorSlabs || b.Floors <= 1 {
		return Bounds{}, false
	}
	pos := StairBackRight
	if p, ok := ProfileFor(b.BuildingProfile); ok {
		pos = p.StairPosition()
	}
	return FloorOpening(b.Width, b.Depth, b.WallThickness, pos), true
}

// ExteriorStairDoor returns the door cut for external stair access
// when the parameters call for one.
func ExteriorStairDoor(b params.Building) (StairDoor, bool) {
	if !b.ExteriorStairs {
		return StairDoor{}, false
	}
	if p, ok := ProfileFor(b.BuildingProfile); ok {
		return p.StairDoor(b), true
	}
	return StairDoor{Side: SideBack, Offset: 0.8, Width: ExteriorDoorWidth, Height: 2.4}, true
}
