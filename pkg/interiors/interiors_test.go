package interiors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/ashlar/pkg/geom"
	"github.com/chazu/ashlar/pkg/params"
	"github.com/chazu/ashlar/pkg/prng"
)

// ---------------------------------------------------------------------------
// Bounds and opening spans
// ---------------------------------------------------------------------------

func TestInteriorBounds(t *testing.T) {
	b := InteriorBounds(8, 6, 0.25)
	assert.Equal(t, Bounds{0.25, 0.25, 7.75, 5.75}, b)
	assert.InDelta(t, 7.5, b.Width(), 1e-9)
	assert.InDelta(t, 5.5, b.Depth(), 1e-9)
}

func TestOpeningSpansBlocked(t *testing.T) {
	b := params.Defaults()
	spans := ComputeOpeningSpans(b)

	// The front door occupies FrontDoorOffset*(width-doorWidth).
	doorX := b.FrontDoorOffset * (b.Width - b.DoorWidth)
	assert.True(t, spans.Blocked(SideFront, doorX+b.DoorWidth/2))
	// Clearance extends the blocked band.
	assert.True(t, spans.Blocked(SideFront, doorX-0.2))
	// Clear of the door band and of every front window span.
	assert.False(t, spans.Blocked(SideFront, 2.95))
}

func TestFindSafeAttachment(t *testing.T) {
	var spans OpeningSpans
	spans[SideFront] = []Span{{3.0, 4.0}}

	// Unblocked target passes through.
	pos, ok := spans.FindSafeAttachment(SideFront, 1.0, 0.5, 7.5)
	require.True(t, ok)
	assert.InDelta(t, 1.0, pos, 1e-9)

	// Blocked target moves to the nearest gap edge.
	pos, ok = spans.FindSafeAttachment(SideFront, 3.4, 0.5, 7.5)
	require.True(t, ok)
	assert.InDelta(t, 2.7, pos, 1e-9)
}

// ---------------------------------------------------------------------------
// Wall validation
// ---------------------------------------------------------------------------

func TestValidateWallRejectsDiagonal(t *testing.T) {
	ib := InteriorBounds(8, 6, 0.25)
	_, ok := ValidateWall(Wall{X0: 1, Y0: 1, X1: 4, Y1: 4}, ib, OpeningSpans{})
	assert.False(t, ok)
}

func TestValidateWallStraightens(t *testing.T) {
	ib := InteriorBounds(8, 6, 0.25)
	w, ok := ValidateWall(Wall{X0: 1, Y0: 2.0, X1: 5, Y1: 2.05}, ib, OpeningSpans{})
	require.True(t, ok)
	assert.InDelta(t, 2.025, w.Y0, 1e-9)
	assert.Equal(t, w.Y0, w.Y1)
}

func TestValidateWallRejectsBlockedAttachment(t *testing.T) {
	ib := InteriorBounds(8, 6, 0.25)
	var spans OpeningSpans
	spans[SideLeft] = []Span{{2.0, 3.0}}

	// X-axis wall starting on the left exterior wall at a window.
	_, ok := ValidateWall(Wall{X0: ib.XMin, Y0: 2.5, X1: 5, Y1: 2.5}, ib, spans)
	assert.False(t, ok)

	// Same wall clear of the window attaches fine.
	_, ok = ValidateWall(Wall{X0: ib.XMin, Y0: 4.5, X1: 5, Y1: 4.5}, ib, spans)
	assert.True(t, ok)
}

func TestOptimalDividerPosition(t *testing.T) {
	// Span too small for two rooms.
	_, ok := OptimalDividerPosition(0, 4.9, 0.5)
	assert.False(t, ok)

	// Target clamped so both rooms keep the minimum size.
	pos, ok := OptimalDividerPosition(0, 6, 0.1)
	require.True(t, ok)
	assert.InDelta(t, MinRoomSize, pos, 1e-9)

	pos, ok = OptimalDividerPosition(0, 10, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 5.0, pos, 1e-9)
}

func TestSplitForZone(t *testing.T) {
	zone := Bounds{3, 1, 5, 4}
	wall := Wall{X0: 0, Y0: 2, X1: 8, Y1: 2, Height: 3.5, Thickness: 0.25}

	segs := SplitForZone(wall, zone)
	require.Len(t, segs, 2)
	assert.InDelta(t, 3.0, segs[0].X1, 1e-9)
	assert.InDelta(t, 5.0, segs[1].X0, 1e-9)

	// A wall clear of the zone is untouched.
	clear := Wall{X0: 0, Y0: 5, X1: 8, Y1: 5}
	assert.Equal(t, []Wall{clear}, SplitForZone(clear, zone))

	// A wall fully inside the zone vanishes.
	inside := Wall{X0: 3.5, Y0: 2, X1: 4.5, Y1: 2}
	assert.Empty(t, SplitForZone(inside, zone))
}

// ---------------------------------------------------------------------------
// Stair zone and stairs
// ---------------------------------------------------------------------------

func TestStairZonePositions(t *testing.T) {
	ib := InteriorBounds(8, 6, 0.25)

	right := StairZone(8, 6, 0.25, StairBackRight)
	assert.InDelta(t, ib.XMax-0.3, right.XMax, 1e-9)
	assert.InDelta(t, ib.YMax-0.3, right.YMax, 1e-9)
	assert.InDelta(t, StairZoneWidth, right.Width(), 1e-9)

	left := StairZone(8, 6, 0.25, StairBackLeft)
	assert.InDelta(t, ib.XMin+0.3, left.XMin, 1e-9)

	center := StairZone(8, 6, 0.25, StairBackCenter)
	mid := (center.XMin + center.XMax) / 2
	assert.InDelta(t, (ib.XMin+ib.XMax)/2, mid, 1e-9)
}

func TestStairZoneShrinksWithInterior(t *testing.T) {
	z := StairZone(4, 4, 0.25, StairBackRight)
	assert.InDelta(t, 3.5*0.25, z.Width(), 1e-9)
	assert.InDelta(t, 3.5*0.4, z.Depth(), 1e-9)
}

func TestFloorOpeningInsetFromZone(t *testing.T) {
	zone := StairZone(8, 6, 0.25, StairBackRight)
	op := FloorOpening(8, 6, 0.25, StairBackRight)
	assert.InDelta(t, zone.XMin+0.1, op.XMin, 1e-9)
	assert.InDelta(t, zone.YMax-0.1, op.YMax, 1e-9)
}

func TestBuildStairsGeometry(t *testing.T) {
	m := geom.NewMesh()
	zone := StairZone(8, 6, 0.25, StairBackRight)
	BuildStairs(m, zone, 3.5, 0)

	require.NotZero(t, m.FaceCount())
	// Steps and landing are boxes, six faces apiece.
	assert.Zero(t, m.FaceCount()%6)

	min, max := m.BoundingBox()
	assert.GreaterOrEqual(t, min.X, zone.XMin-1e-9)
	assert.LessOrEqual(t, max.X, zone.XMax+1e-9)
	assert.GreaterOrEqual(t, min.Y, zone.YMin-1e-9)
	assert.LessOrEqual(t, max.Y, zone.YMax+1e-9)
	// Landing top sits exactly one floor up.
	assert.InDelta(t, 3.5, max.Z, 1e-9)

	for i := range m.Faces {
		assert.Equal(t, geom.MatStairs, m.Faces[i].Material)
	}
}

// ---------------------------------------------------------------------------
// Profiles
// ---------------------------------------------------------------------------

func TestStorefrontGroundPlan(t *testing.T) {
	b := params.Defaults()
	b.BuildingProfile = params.ProfileStorefront

	p, ok := ProfileFor(b.BuildingProfile)
	require.True(t, ok)
	plan := p.GroundPlan(b)

	require.Len(t, plan.Rooms, 2)
	assert.Equal(t, "retail_front", plan.Rooms[0].Name)
	assert.Equal(t, "back_room", plan.Rooms[1].Name)

	// The back room holds the stair zone plus clearance.
	backDepth := plan.Rooms[1].Bounds.Depth()
	assert.GreaterOrEqual(t, backDepth, MinRoomSize)
	require.NotEmpty(t, plan.Walls)
	for _, w := range plan.Walls {
		assert.True(t, w.AlongX(), "storefront divider runs east-west")
		assert.InDelta(t, plan.Rooms[0].Bounds.YMax, w.Y0, 1e-9)
	}
}

func TestStorefrontTooSmallFallsBackToOpenRoom(t *testing.T) {
	b := params.Defaults()
	b.Width = 2.5
	b.Depth = 2.5
	b.BuildingProfile = params.ProfileStorefront

	p, _ := ProfileFor(b.BuildingProfile)
	plan := p.GroundPlan(b)
	require.Len(t, plan.Rooms, 1)
	assert.Equal(t, "open_retail", plan.Rooms[0].Name)
	assert.Empty(t, plan.Walls)
}

func TestWarehouseOfficeCorner(t *testing.T) {
	b := params.Defaults()
	b.Width = 12
	b.Depth = 10
	b.BuildingProfile = params.ProfileWarehouse

	p, _ := ProfileFor(b.BuildingProfile)
	plan := p.GroundPlan(b)

	require.Len(t, plan.Rooms, 2)
	assert.Equal(t, "office", plan.Rooms[1].Name)
	office := plan.Rooms[1].Bounds
	assert.LessOrEqual(t, office.Width(), 3.5+1e-9)
	assert.GreaterOrEqual(t, office.Width(), MinRoomSize-1e-9)

	// L-shaped walls: one along Y, one along X.
	require.Len(t, plan.Walls, 2)
	assert.False(t, plan.Walls[0].AlongX())
	assert.True(t, plan.Walls[1].AlongX())
}

func TestWarehouseSmallFootprintStaysOpen(t *testing.T) {
	b := params.Defaults()
	b.Width = 5
	b.Depth = 5
	b.BuildingProfile = params.ProfileWarehouse

	p, _ := ProfileFor(b.BuildingProfile)
	plan := p.GroundPlan(b)
	require.Len(t, plan.Rooms, 1)
	assert.Empty(t, plan.Walls)
}

func TestResidentialHallway(t *testing.T) {
	b := params.Defaults()
	b.BuildingProfile = params.ProfileResidential

	p, _ := ProfileFor(b.BuildingProfile)
	plan := p.GroundPlan(b)

	require.NotEmpty(t, plan.Rooms)
	hall := plan.Rooms[0]
	assert.Equal(t, "hallway", hall.Name)
	assert.InDelta(t, hallwayWidth, hall.Bounds.Width(), 1e-9)

	// Hallway stops at the stair zone on multi-floor buildings.
	zone := StairZone(b.Width, b.Depth, b.WallThickness, p.StairPosition())
	assert.InDelta(t, zone.YMin, hall.Bounds.YMax, 1e-9)

	// All hallway walls run along Y at the hallway edges.
	for _, w := range plan.Walls {
		if !w.AlongX() {
			assert.True(t,
				almostEqual(w.X0, hall.Bounds.XMin) || almostEqual(w.X0, hall.Bounds.XMax),
				"hallway wall at x=%v", w.X0)
		}
	}
}

func TestResidentialTooNarrowIsEmpty(t *testing.T) {
	b := params.Defaults()
	b.Width = 6 // interior 5.5 < 2 rooms + hallway
	b.BuildingProfile = params.ProfileResidential

	p, _ := ProfileFor(b.BuildingProfile)
	plan := p.GroundPlan(b)
	assert.Empty(t, plan.Rooms)
	assert.Empty(t, plan.Walls)
}

func TestBarPartialWallOpening(t *testing.T) {
	b := params.Defaults()
	b.BuildingProfile = params.ProfileBar

	p, _ := ProfileFor(b.BuildingProfile)
	plan := p.GroundPlan(b)

	require.GreaterOrEqual(t, len(plan.Rooms), 2)
	assert.Equal(t, "seating", plan.Rooms[0].Name)

	// The seating/bar divider leaves a central opening half the
	// interior wide.
	ib := InteriorBounds(b.Width, b.Depth, b.WallThickness)
	barY := plan.Rooms[0].Bounds.YMax
	var coverage float64
	for _, w := range plan.Walls {
		if w.AlongX() && almostEqual(w.Y0, barY) {
			coverage += w.Length()
		}
	}
	assert.InDelta(t, ib.Width()*0.5, ib.Width()-coverage, 0.01)
}

func TestExteriorStairDoorPerProfile(t *testing.T) {
	b := params.Defaults()
	b.ExteriorStairs = true

	door, ok := ExteriorStairDoor(b)
	require.True(t, ok)
	assert.Equal(t, SideBack, door.Side)
	assert.InDelta(t, 0.8, door.Offset, 1e-9)

	b.BuildingProfile = params.ProfileWarehouse
	door, _ = ExteriorStairDoor(b)
	assert.Equal(t, SideLeft, door.Side)
	assert.InDelta(t, 0.7, door.Offset, 1e-9)

	b.ExteriorStairs = false
	_, ok = ExteriorStairDoor(b)
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// Layout driver
// ---------------------------------------------------------------------------

func TestGenerateBuildsWallsAndStairs(t *testing.T) {
	b := params.Defaults()
	b.BuildingProfile = params.ProfileStorefront
	b.WindowSides = params.SidesFrontBack // keep side walls free for attachment

	m := geom.NewMesh()
	Generate(m, b, float64(b.Floors)*b.FloorHeight)

	walls, stairs := countMaterials(m)
	assert.NotZero(t, walls, "expected interior wall faces")
	assert.NotZero(t, stairs, "expected stair faces")

	// Two floors share the same validated plan, so wall faces split
	// evenly across them.
	assert.Zero(t, walls%2)
}

func TestGenerateSkipsBlockedAttachments(t *testing.T) {
	b := params.Defaults()
	b.BuildingProfile = params.ProfileStorefront
	b.WindowSides = params.SidesAll // side windows block both divider attachments

	m := geom.NewMesh()
	Generate(m, b, float64(b.Floors)*b.FloorHeight)

	walls, stairs := countMaterials(m)
	assert.Zero(t, walls, "divider walls attach over side windows and must be dropped")
	assert.NotZero(t, stairs)
}

func TestGenerateNoneProfileIsEmpty(t *testing.T) {
	m := geom.NewMesh()
	b := params.Defaults()
	Generate(m, b, float64(b.Floors)*b.FloorHeight)
	assert.True(t, m.IsEmpty())
}

func TestGenerateRespectsDamageLimit(t *testing.T) {
	b := params.Defaults()
	b.Floors = 3
	b.BuildingProfile = params.ProfileStorefront
	b.WindowSides = params.SidesFrontBack

	full := geom.NewMesh()
	Generate(full, b, float64(b.Floors)*b.FloorHeight)

	// Damage down to just above the first floor: one interior floor,
	// no stairs (int(4.0/3.5)-1 == 0).
	damaged := geom.NewMesh()
	Generate(damaged, b, 4.0)

	fullWalls, _ := countMaterials(full)
	dmgWalls, dmgStairs := countMaterials(damaged)
	assert.Equal(t, fullWalls/3, dmgWalls)
	assert.Zero(t, dmgStairs)
}

func TestGenerateExteriorStairsSuppressInteriorStairs(t *testing.T) {
	b := params.Defaults()
	b.BuildingProfile = params.ProfileStorefront
	b.WindowSides = params.SidesFrontBack
	b.ExteriorStairs = true

	m := geom.NewMesh()
	Generate(m, b, float64(b.Floors)*b.FloorHeight)
	_, stairs := countMaterials(m)
	assert.Zero(t, stairs)
}

func TestGenerateNoSlabsNoUpperWalls(t *testing.T) {
	b := params.Defaults()
	b.BuildingProfile = params.ProfileStorefront
	b.WindowSides = params.SidesFrontBack
	b.FloorSlabs = false

	m := geom.NewMesh()
	Generate(m, b, float64(b.Floors)*b.FloorHeight)

	walls, stairs := countMaterials(m)
	assert.NotZero(t, walls, "ground floor walls still build")
	assert.Zero(t, stairs, "stairs need slabs to land on")

	withSlabs := geom.NewMesh()
	b.FloorSlabs = true
	Generate(withSlabs, b, float64(b.Floors)*b.FloorHeight)
	slabWalls, _ := countMaterials(withSlabs)
	assert.Equal(t, slabWalls, walls*2)
}

func TestSlabOpening(t *testing.T) {
	b := params.Defaults()

	// Default profile still reserves a back-right opening.
	op, ok := SlabOpening(b)
	require.True(t, ok)
	want := FloorOpening(b.Width, b.Depth, b.WallThickness, StairBackRight)
	assert.Equal(t, want, op)

	b.Floors = 1
	_, ok = SlabOpening(b)
	assert.False(t, ok)

	b.Floors = 2
	b.FloorSlabs = false
	_, ok = SlabOpening(b)
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// Rubble
// ---------------------------------------------------------------------------

func TestGenerateFillFilled(t *testing.T) {
	b := params.Defaults()
	b.InteriorFill = params.FillFilled

	m := geom.NewMesh()
	GenerateFill(m, prng.New(1), b, float64(b.Floors)*b.FloorHeight)

	require.Equal(t, 6, m.FaceCount())
	for i := range m.Faces {
		assert.Equal(t, geom.MatRubble, m.Faces[i].Material)
	}
	_, max := m.BoundingBox()
	assert.InDelta(t, float64(b.Floors)*b.FloorHeight-0.1, max.Z, 1e-9)
}

func TestGenerateFillPartialStaysBelowCeiling(t *testing.T) {
	b := params.Defaults()
	b.InteriorFill = params.FillPartial
	b.FillFloors = 1

	m := geom.NewMesh()
	GenerateFill(m, prng.New(7), b, float64(b.Floors)*b.FloorHeight)

	require.Equal(t, 6, m.FaceCount())
	_, max := m.BoundingBox()
	// Base fill is one floor minus settle, plus up to 0.2 jitter and
	// the cross-interior slant.
	assert.Less(t, max.Z, float64(b.Floors)*b.FloorHeight)
	assert.Greater(t, max.Z, 0.3)
}

func TestGenerateFillPilesDeterministic(t *testing.T) {
	b := params.Defaults()
	b.InteriorFill = params.FillRubblePiles
	b.RubbleDensity = 1.0

	m1 := geom.NewMesh()
	GenerateFill(m1, prng.New(42), b, float64(b.Floors)*b.FloorHeight)
	m2 := geom.NewMesh()
	GenerateFill(m2, prng.New(42), b, float64(b.Floors)*b.FloorHeight)

	require.NotZero(t, m1.FaceCount())
	assert.Equal(t, m1.Verts, m2.Verts)
	assert.Equal(t, m1.FaceCount(), m2.FaceCount())

	// Piles stay inside the interior with the placement margin.
	ib := InteriorBounds(b.Width, b.Depth, b.WallThickness)
	min, max := m1.BoundingBox()
	assert.GreaterOrEqual(t, min.X, ib.XMin-1.3) // margin minus max radius
	assert.LessOrEqual(t, max.X, ib.XMax+1.3)
	assert.GreaterOrEqual(t, min.Z, 0.0)
}

func TestGenerateExteriorRubble(t *testing.T) {
	b := params.Defaults()
	b.ExteriorRubble = true
	b.ExteriorRubblePiles = 4

	m := geom.NewMesh()
	GenerateExterior(m, prng.New(3), b)
	require.NotZero(t, m.FaceCount())
	for i := range m.Faces {
		assert.Equal(t, geom.MatRubble, m.Faces[i].Material)
	}

	off := geom.NewMesh()
	b.ExteriorRubble = false
	GenerateExterior(off, prng.New(3), b)
	assert.True(t, off.IsEmpty())
}

// ---------------------------------------------------------------------------

func countMaterials(m *geom.Mesh) (walls, stairs int) {
	for i := range m.Faces {
		switch m.Faces[i].Material {
		case geom.MatInteriorWall:
			walls++
		case geom.MatStairs:
			stairs++
		}
	}
	return walls, stairs
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d > -1e-9 && d < 1e-9
}
