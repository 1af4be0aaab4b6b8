// Package params defines the building parameter record, its enums and
// defaults, and the range-based sampler used by bulk generation. A
// Building value is treated as immutable once handed to the builder;
// derived quantities (damage heights, intact floor counts) live in
// their own types and are never written back here.
package params

import "fmt"

// WindowSides selects which exterior walls receive windows.
type WindowSides int

const (
	SidesAll WindowSides = iota
	SidesFrontBack
	SidesFrontSides
	SidesFrontOnly
	SidesFrontLeft
	SidesFrontRight
	SidesBackSides
	SidesSidesOnly
	SidesNone
)

// Front reports whether the front wall has windows.
func (s WindowSides) Front() bool {
	switch s {
	case SidesAll, SidesFrontBack, SidesFrontSides, SidesFrontOnly, SidesFrontLeft, SidesFrontRight:
		return true
	}
	return false
}

// Back reports whether the back wall has windows.
func (s WindowSides) Back() bool {
	switch s {
	case SidesAll, SidesFrontBack, SidesBackSides:
		return true
	}
	return false
}

// Left reports whether the left wall has windows.
func (s WindowSides) Left() bool {
	switch s {
	case SidesAll, SidesFrontSides, SidesFrontLeft, SidesBackSides, SidesSidesOnly:
		return true
	}
	return false
}

// Right reports whether the right wall has windows.
func (s WindowSides) Right() bool {
	switch s {
	case SidesAll, SidesFrontSides, SidesFrontRight, SidesBackSides, SidesSidesOnly:
		return true
	}
	return false
}

// GroundWindows selects the ground floor window style.
type GroundWindows int

const (
	GroundNone GroundWindows = iota
	GroundRegular
	GroundStorefront
	GroundStorefrontWide
)

// PilasterStyle selects pilaster placement along a wall.
type PilasterStyle int

const (
	PilastersCorners PilasterStyle = iota
	PilastersCornersCenter
	PilastersBetweenWindows
	PilastersFull
)

// PilasterSides selects which walls carry pilasters.
type PilasterSides int

const (
	PilasterFront PilasterSides = iota
	PilasterFrontBack
	PilasterAll
)

// PatioSide selects the wall the roof patio opens toward.
type PatioSide int

const (
	PatioBack PatioSide = iota
	PatioFront
	PatioLeft
	PatioRight
)

// Profile selects the interior layout family.
type Profile int

const (
	ProfileNone Profile = iota
	ProfileStorefront
	ProfileWarehouse
	ProfileResidential
	ProfileBar
)

var profileNames = map[Profile]string{
	ProfileNone:        "none",
	ProfileStorefront:  "storefront",
	ProfileWarehouse:   "warehouse",
	ProfileResidential: "residential",
	ProfileBar:         "bar",
}

func (p Profile) String() string {
	if s, ok := profileNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParseProfile converts a profile name to its enum value.
func ParseProfile(s string) (Profile, error) {
	for p, name := range profileNames {
		if name == s {
			return p, nil
		}
	}
	return ProfileNone, fmt.Errorf("unknown building profile %q", s)
}

// InteriorFill selects the rubble fill mode.
type InteriorFill int

const (
	FillNone InteriorFill = iota
	FillFilled
	FillPartial
	FillRubblePiles
)

// Building is the full parameter set for one generated building.
// Distances are meters; offsets and sizes marked as fractions are in
// [0, 1] of the relevant span.
type Building struct {
	// Shell dimensions.
	Width         float64
	Depth         float64
	Floors        int
	FloorHeight   float64
	WallThickness float64

	// Upper floor windows.
	WindowWidth     float64
	WindowHeight    float64
	WindowsPerFloor int
	WindowSpacing   float64
	SillHeight      float64
	WindowSides     WindowSides

	// Ground floor windows.
	GroundFloorWindows     GroundWindows
	GroundFloorWindowCount int
	StorefrontWindowHeight float64
	StorefrontWindowWidth  float64
	StorefrontSillHeight   float64

	// Doors.
	DoorWidth       float64
	DoorHeight      float64
	FrontDoorOffset float64 // fraction of usable wall span
	BackExit        bool
	BackDoorOffset  float64

	// Structure.
	FlatRoof   bool
	FloorSlabs bool

	// Facade pilasters.
	FacadePilasters bool
	PilasterWidth   float64
	PilasterDepth   float64
	PilasterStyle   PilasterStyle
	PilasterSides   PilasterSides

	// Parapet.
	RoofParapet   bool
	ParapetHeight float64

	// Patio.
	HasPatio       bool
	PatioSide      PatioSide
	PatioSize      float64 // fraction of the patio axis
	PatioDoorWidth float64

	// Interior.
	BuildingProfile Profile
	ExteriorStairs  bool

	// Rubble.
	InteriorFill       InteriorFill
	FillFloors         int
	RubbleDensity      float64
	ExteriorRubble     bool
	ExteriorRubblePiles int
	RubbleSpread       float64

	// Damage.
	EnableDamage     bool
	DamageAmount     float64
	DamagePointiness float64
	DamageResolution float64

	// Generation.
	Seed       int64
	AutoClean  bool
	MarkUVSeams bool
}

// Defaults returns the standard single-building parameter set.
func Defaults() Building {
	return Building{
		Width:         8.0,
		Depth:         6.0,
		Floors:        2,
		FloorHeight:   3.5,
		WallThickness: 0.25,

		WindowWidth:     1.2,
		WindowHeight:    1.4,
		WindowsPerFloor: 3,
		WindowSpacing:   0.8,
		SillHeight:      0.9,
		WindowSides:     SidesAll,

		GroundFloorWindows:     GroundStorefront,
		GroundFloorWindowCount: 2,
		StorefrontWindowHeight: 2.2,
		StorefrontWindowWidth:  2.0,
		StorefrontSillHeight:   0.3,

		DoorWidth:       1.2,
		DoorHeight:      2.4,
		FrontDoorOffset: 0.1,
		BackExit:        true,
		BackDoorOffset:  0.5,

		FlatRoof:   true,
		FloorSlabs: true,

		FacadePilasters: false,
		PilasterWidth:   0.4,
		PilasterDepth:   0.15,
		PilasterStyle:   PilastersCorners,
		PilasterSides:   PilasterFront,

		RoofParapet:   false,
		ParapetHeight: 0.5,

		HasPatio:       false,
		PatioSide:      PatioBack,
		PatioSize:      0.4,
		PatioDoorWidth: 1.5,

		BuildingProfile: ProfileNone,
		ExteriorStairs:  false,

		InteriorFill:        FillNone,
		FillFloors:          1,
		RubbleDensity:       0.3,
		ExteriorRubble:      false,
		ExteriorRubblePiles: 4,
		RubbleSpread:        2.0,

		EnableDamage:     false,
		DamageAmount:     0.3,
		DamagePointiness: 0.5,
		DamageResolution: 1.0,

		Seed:        0,
		AutoClean:   true,
		MarkUVSeams: true,
	}
}

// Validate reports structural contradictions that would make a build
// meaningless rather than merely degenerate.
func (b *Building) Validate() error {
	if b.Width <= 0 || b.Depth <= 0 {
		return fmt.Errorf("footprint %gx%g must be positive", b.Width, b.Depth)
	}
	if b.Floors < 1 {
		return fmt.Errorf("floors = %d, need at least 1", b.Floors)
	}
	if b.FloorHeight <= 0 {
		return fmt.Errorf("floor height %g must be positive", b.FloorHeight)
	}
	if b.WallThickness <= 0 || b.WallThickness*2 >= b.Width || b.WallThickness*2 >= b.Depth {
		return fmt.Errorf("wall thickness %g leaves no interior in a %gx%g footprint",
			b.WallThickness, b.Width, b.Depth)
	}
	return nil
}
