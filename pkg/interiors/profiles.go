package interiors

import (
	"fmt"

	"github.com/chazu/ashlar/pkg/params"
)

// Room is layout metadata: a named footprint within the interior. Rooms
// produce no geometry themselves but drive wall placement and make
// layouts inspectable.
type Room struct {
	Name   string
	Kind   string
	Bounds Bounds
}

// Plan is the wall layout a profile proposes for one floor, before
// cardinal validation.
type Plan struct {
	Rooms []Room
	Walls []Wall
}

// StairDoor is an exterior door giving access to external stairs. The
// offset is a 0..1 fraction along the wall.
type StairDoor struct {
	Side   Side
	Offset float64
	Width  float64
	Height float64
}

// Profile defines one interior layout family. The ground plan is also
// reused on upper floors so partitions stack structurally.
type Profile interface {
	Name() string
	StairPosition() StairPosition
	GroundPlan(b params.Building) Plan
	StairDoor(b params.Building) StairDoor
}

// ProfileFor maps the parameter enum to its layout implementation. The
// second return is false for ProfileNone, which builds no interior.
func ProfileFor(p params.Profile) (Profile, bool) {
	switch p {
	case params.ProfileStorefront:
		return storefrontProfile{}, true
	case params.ProfileWarehouse:
		return warehouseProfile{}, true
	case params.ProfileResidential:
		return residentialProfile{}, true
	case params.ProfileBar:
		return barProfile{}, true
	}
	return nil, false
}

// profileZone returns the stair zone when the building is tall enough
// to need one.
func profileZone(p Profile, b params.Building) *Bounds {
	if b.Floors <= 1 {
		return nil
	}
	z := StairZone(b.Width, b.Depth, b.WallThickness, p.StairPosition())
	return &z
}

// ---------------------------------------------------------------------------
// Storefront: open retail front, storage room at the back with stairs
// ---------------------------------------------------------------------------

type storefrontProfile struct{}

func (storefrontProfile) Name() string                 { return "storefront" }
func (storefrontProfile) StairPosition() StairPosition { return StairBackRight }

func (storefrontProfile) StairDoor(params.Building) StairDoor {
	return StairDoor{Side: SideBack, Offset: 0.8, Width: ExteriorDoorWidth, Height: 2.4}
}

func (p storefrontProfile) GroundPlan(b params.Building) Plan {
	ib := InteriorBounds(b.Width, b.Depth, b.WallThickness)
	iw := ib.Width()
	id := ib.Depth()

	openRetail := Plan{Rooms: []Room{{Name: "open_retail", Kind: "retail", Bounds: ib}}}
	if !ValidRoomSize(iw, id) {
		return openRetail
	}

	zone := profileZone(p, b)

	targetBackDepth := id * 0.25
	if b.Floors > 1 {
		targetBackDepth = id * 0.35
		if min := StairZoneDepth + 1.0; targetBackDepth < min {
			targetBackDepth = min
		}
	}

	dividerY, ok := OptimalDividerPosition(ib.YMin, ib.YMax, 1.0-targetBackDepth/id)
	if !ok {
		return openRetail
	}
	if !ValidRoomSize(iw, dividerY-ib.YMin) || !ValidRoomSize(iw, ib.YMax-dividerY) {
		return openRetail
	}

	plan := Plan{
		Rooms: []Room{
			{Name: "retail_front", Kind: "retail",
				Bounds: Bounds{ib.XMin, ib.YMin, ib.XMax, dividerY}},
			{Name: "back_room", Kind: "storage",
				Bounds: Bounds{ib.XMin, dividerY, ib.XMax, ib.YMax}},
		},
	}

	// Divider wall with a doorway on the left, away from the stairs.
	doorX := ib.XMin + iw*0.3
	if doorX > ib.XMin+MinWallOffset {
		plan.Walls = append(plan.Walls, Wall{
			X0: ib.XMin, Y0: dividerY, X1: doorX, Y1: dividerY,
			Height: b.FloorHeight, Thickness: b.WallThickness,
		})
	}
	right := Wall{
		X0: doorX + DoorWidth, Y0: dividerY, X1: ib.XMax, Y1: dividerY,
		Height: b.FloorHeight, Thickness: b.WallThickness,
	}
	if zone != nil {
		plan.Walls = append(plan.Walls, SplitForZone(right, *zone)...)
	} else {
		plan.Walls = append(plan.Walls, right)
	}
	return plan
}

// ---------------------------------------------------------------------------
// Warehouse: open floor with an optional front-left office corner
// ---------------------------------------------------------------------------

type warehouseProfile struct{}

func (warehouseProfile) Name() string                 { return "warehouse" }
func (warehouseProfile) StairPosition() StairPosition { return StairBackLeft }

func (warehouseProfile) StairDoor(params.Building) StairDoor {
	return StairDoor{Side: SideLeft, Offset: 0.7, Width: ExteriorDoorWidth, Height: 2.4}
}

func (warehouseProfile) GroundPlan(b params.Building) Plan {
	ib := InteriorBounds(b.Width, b.Depth, b.WallThickness)
	iw := ib.Width()
	id := ib.Depth()

	minOffice := MinRoomSize
	if iw <= minOffice*2+1.0 || id <= minOffice*2+1.0 ||
		!ValidRoomSize(iw-minOffice, id) {
		return Plan{Rooms: []Room{{Name: "warehouse_floor", Kind: "warehouse", Bounds: ib}}}
	}

	officeW := clampf(iw*0.3, minOffice, 3.5)
	officeD := clampf(id*0.3, minOffice, 3.5)
	oxMax := ib.XMin + officeW
	oyMax := ib.YMin + officeD

	return Plan{
		Rooms: []Room{
			{Name: "warehouse_floor", Kind: "warehouse",
				Bounds: Bounds{oxMax, ib.YMin, ib.XMax, ib.YMax}},
			{Name: "office", Kind: "office",
				Bounds: Bounds{ib.XMin, ib.YMin, oxMax, oyMax}},
		},
		// L-shaped office walls; the gap at the top of the east wall
		// is the office door.
		Walls: []Wall{
			{X0: oxMax, Y0: ib.YMin, X1: oxMax, Y1: oyMax - DoorWidth,
				Height: b.FloorHeight, Thickness: b.WallThickness},
			{X0: ib.XMin, Y0: oyMax, X1: oxMax, Y1: oyMax,
				Height: b.FloorHeight, Thickness: b.WallThickness},
		},
	}
}

// ---------------------------------------------------------------------------
// Residential: central hallway with apartments on both sides
// ---------------------------------------------------------------------------

type residentialProfile struct{}

const hallwayWidth = 1.4

func (residentialProfile) Name() string                 { return "residential" }
func (residentialProfile) StairPosition() StairPosition { return StairBackCenter }

func (residentialProfile) StairDoor(params.Building) StairDoor {
	return StairDoor{Side: SideBack, Offset: 0.5, Width: ExteriorDoorWidth, Height: 2.4}
}

func (p residentialProfile) GroundPlan(b params.Building) Plan {
	ib := InteriorBounds(b.Width, b.Depth, b.WallThickness)
	iw := ib.Width()
	id := ib.Depth()

	if iw < MinRoomSize*2+hallwayWidth || id < MinRoomSize {
		return Plan{}
	}
	roomWidth := (iw - hallwayWidth) / 2
	if roomWidth < MinRoomSize {
		return Plan{}
	}

	zone := profileZone(p, b)
	hallXLeft := ib.XMin + roomWidth
	hallXRight := hallXLeft + hallwayWidth
	hallYMax := ib.YMax
	if zone != nil {
		hallYMax = zone.YMin
	}
	hallDepth := hallYMax - ib.YMin
	if hallDepth < MinRoomSize {
		return Plan{}
	}

	plan := Plan{Rooms: []Room{{
		Name: "hallway", Kind: "hallway",
		Bounds: Bounds{hallXLeft, ib.YMin, hallXRight, hallYMax},
	}}}

	numRooms := int(hallDepth / MinRoomSize)
	if numRooms < 1 {
		numRooms = 1
	}
	if numRooms > 2 {
		numRooms = 2
	}
	roomDepth := hallDepth / float64(numRooms)
	if !ValidRoomSize(roomWidth, roomDepth) {
		numRooms = 1
		roomDepth = hallDepth
	}

	for i := 0; i < numRooms; i++ {
		yStart := ib.YMin + float64(i)*roomDepth
		yEnd := yStart + roomDepth
		if yEnd > hallYMax+0.01 || !ValidRoomSize(roomWidth, roomDepth) {
			continue
		}
		plan.Rooms = append(plan.Rooms,
			Room{Name: fmt.Sprintf("apt_l%d", i), Kind: "apartment",
				Bounds: Bounds{ib.XMin, yStart, hallXLeft, yEnd}},
			Room{Name: fmt.Sprintf("apt_r%d", i), Kind: "apartment",
				Bounds: Bounds{hallXRight, yStart, ib.XMax, yEnd}},
		)
	}

	// Hallway walls, one door per apartment centered in its span.
	for i := 0; i < numRooms; i++ {
		yStart := ib.YMin + float64(i)*roomDepth
		yEnd := yStart + roomDepth
		if yEnd > hallYMax {
			yEnd = hallYMax
		}
		doorY := yStart + (yEnd-yStart)*0.5 - DoorWidth/2

		for _, x := range [2]float64{hallXLeft, hallXRight} {
			if doorY-yStart > MinWallOffset {
				plan.Walls = append(plan.Walls, Wall{
					X0: x, Y0: yStart, X1: x, Y1: doorY,
					Height: b.FloorHeight, Thickness: b.WallThickness,
				})
			}
			if yEnd-(doorY+DoorWidth) > MinWallOffset {
				plan.Walls = append(plan.Walls, Wall{
					X0: x, Y0: doorY + DoorWidth, X1: x, Y1: yEnd,
					Height: b.FloorHeight, Thickness: b.WallThickness,
				})
			}
		}
	}

	// Cross walls between stacked apartments, kept clear of the
	// hallway doors.
	if numRooms > 1 {
		midY := ib.YMin + roomDepth
		if midY < hallYMax-MinWallOffset {
			if hallXLeft-ib.XMin-DoorWidth > MinWallOffset {
				plan.Walls = append(plan.Walls, Wall{
					X0: ib.XMin, Y0: midY, X1: hallXLeft - DoorWidth, Y1: midY,
					Height: b.FloorHeight, Thickness: b.WallThickness,
				})
			}
			if ib.XMax-hallXRight-DoorWidth > MinWallOffset {
				plan.Walls = append(plan.Walls, Wall{
					X0: hallXRight + DoorWidth, Y0: midY, X1: ib.XMax, Y1: midY,
					Height: b.FloorHeight, Thickness: b.WallThickness,
				})
			}
		}
	}

	return plan
}

// ---------------------------------------------------------------------------
// Bar: seating up front, bar area and storage at the back
// ---------------------------------------------------------------------------

type barProfile struct{}

func (barProfile) Name() string                 { return "bar" }
func (barProfile) StairPosition() StairPosition { return StairBackLeft }

func (barProfile) StairDoor(params.Building) StairDoor {
	return StairDoor{Side: SideBack, Offset: 0.2, Width: ExteriorDoorWidth, Height: 2.4}
}

func (p barProfile) GroundPlan(b params.Building) Plan {
	ib := InteriorBounds(b.Width, b.Depth, b.WallThickness)
	iw := ib.Width()
	id := ib.Depth()

	zone := profileZone(p, b)
	barY := ib.YMin + id*0.5

	backRoomX := ib.XMin + iw*0.3
	if zone != nil {
		backRoomX = zone.XMax + 0.5
	}

	plan := Plan{Rooms: []Room{
		{Name: "seating", Kind: "seating",
			Bounds: Bounds{ib.XMin, ib.YMin, ib.XMax, barY}},
		{Name: "bar_area", Kind: "bar",
			Bounds: Bounds{backRoomX, barY, ib.XMax, ib.YMax}},
	}}
	if zone != nil {
		plan.Rooms = append(plan.Rooms, Room{
			Name: "back_room", Kind: "storage",
			Bounds: Bounds{ib.XMin, barY, backRoomX, ib.YMax},
		})
	}

	// Partial wall between seating and bar, wide opening centered.
	openingWidth := iw * 0.5
	openingStart := ib.XMin + (iw-openingWidth)/2
	if openingStart > ib.XMin+0.3 {
		plan.Walls = append(plan.Walls, Wall{
			X0: ib.XMin, Y0: barY, X1: openingStart, Y1: barY,
			Height: b.FloorHeight, Thickness: b.WallThickness,
		})
	}
	if openingStart+openingWidth < ib.XMax-0.3 {
		plan.Walls = append(plan.Walls, Wall{
			X0: openingStart + openingWidth, Y0: barY, X1: ib.XMax, Y1: barY,
			Height: b.FloorHeight, Thickness: b.WallThickness,
		})
	}

	// Bar-to-back-room wall with a door at its south end.
	if zone != nil {
		w := Wall{
			X0: backRoomX, Y0: barY + DoorWidth, X1: backRoomX, Y1: ib.YMax,
			Height: b.FloorHeight, Thickness: b.WallThickness,
		}
		plan.Walls = append(plan.Walls, SplitForZone(w, *zone)...)
	}
	return plan
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
