package params

import (
	"github.com/chazu/ashlar/pkg/prng"
)

// ---------------------------------------------------------------------------
// Bulk variation sampling
// ---------------------------------------------------------------------------

// FeatureMode controls whether a boolean feature is forced on, forced
// off, or decided per building.
type FeatureMode int

const (
	FeatureRandom FeatureMode = iota
	FeatureAlways
	FeatureNever
)

// FloatRange is an inclusive sampling interval.
type FloatRange struct {
	Min, Max float64
}

// IntRange is an inclusive sampling interval.
type IntRange struct {
	Min, Max int
}

// Ranges drives bulk generation: each building samples a Building value
// from these intervals. Sampling is context aware, not independent per
// field; larger footprints pull more windows, deep buildings pull
// residential layouts, and so on.
type Ranges struct {
	Width         FloatRange
	Depth         FloatRange
	Floors        IntRange
	FloorHeight   FloatRange
	WallThickness FloatRange

	WindowWidth     FloatRange
	WindowHeight    FloatRange
	WindowsPerFloor IntRange
	WindowSpacing   FloatRange
	SillHeight      FloatRange

	StorefrontWindowHeight FloatRange
	StorefrontSillHeight   FloatRange
	StorefrontWindowWidth  FloatRange
	GroundFloorWindowCount IntRange

	DoorWidth  FloatRange
	DoorHeight FloatRange

	PilasterWidth FloatRange
	PilasterDepth FloatRange
	ParapetHeight FloatRange

	PatioSize      FloatRange
	PatioDoorWidth FloatRange

	FillFloors          IntRange
	RubbleDensity       FloatRange
	ExteriorRubblePiles IntRange

	DamageAmount     FloatRange
	DamagePointiness FloatRange
	DamageResolution FloatRange

	// Fixed choices; the zero value of each means "decide per
	// building".
	BackExit        FeatureMode
	FlatRoof        FeatureMode
	FloorSlabs      FeatureMode
	FacadePilasters FeatureMode
	RoofParapet     FeatureMode
	Patio           FeatureMode
	ExteriorRubble  FeatureMode
	Damage          FeatureMode
	ExteriorStairs  FeatureMode

	PatioProbability  float64
	DamageProbability float64

	// RandomProfile enables the shape-weighted per-building draw;
	// otherwise Profile applies to every building.
	Profile       Profile
	RandomProfile bool

	InteriorFill     InteriorFill
	RandomFill       bool
	WindowSidesFixed WindowSides
	RandomSides      bool

	BaseSeed int64
}

// DefaultRanges returns the stock bulk generation intervals.
func DefaultRanges() Ranges {
	return Ranges{
		Width:         FloatRange{6.0, 12.0},
		Depth:         FloatRange{5.0, 10.0},
		Floors:        IntRange{1, 4},
		FloorHeight:   FloatRange{3.0, 4.0},
		WallThickness: FloatRange{0.2, 0.35},

		WindowWidth:     FloatRange{0.8, 1.8},
		WindowHeight:    FloatRange{1.0, 1.8},
		WindowsPerFloor: IntRange{2, 5},
		WindowSpacing:   FloatRange{0.5, 1.2},
		SillHeight:      FloatRange{0.6, 1.2},

		StorefrontWindowHeight: FloatRange{1.8, 2.5},
		StorefrontSillHeight:   FloatRange{0.1, 0.5},
		StorefrontWindowWidth:  FloatRange{1.5, 2.5},
		GroundFloorWindowCount: IntRange{1, 3},

		DoorWidth:  FloatRange{0.9, 1.5},
		DoorHeight: FloatRange{2.1, 2.6},

		PilasterWidth: FloatRange{0.3, 0.6},
		PilasterDepth: FloatRange{0.1, 0.2},
		ParapetHeight: FloatRange{0.3, 0.7},

		PatioSize:      FloatRange{0.25, 0.5},
		PatioDoorWidth: FloatRange{1.2, 2.0},

		FillFloors:          IntRange{1, 2},
		RubbleDensity:       FloatRange{0.2, 0.5},
		ExteriorRubblePiles: IntRange{2, 6},

		DamageAmount:     FloatRange{0.1, 0.5},
		DamagePointiness: FloatRange{0.3, 0.7},
		DamageResolution: FloatRange{0.5, 1.5},

		BackExit:        FeatureRandom,
		FlatRoof:        FeatureAlways,
		FloorSlabs:      FeatureAlways,
		FacadePilasters: FeatureNever,
		RoofParapet:     FeatureNever,
		Patio:           FeatureNever,
		ExteriorRubble:  FeatureNever,
		Damage:          FeatureNever,
		ExteriorStairs:  FeatureNever,

		PatioProbability:  0.3,
		DamageProbability: 0.5,

		RandomProfile: true,
		RandomFill:    false,
		RandomSides:   false,

		WindowSidesFixed: SidesAll,
	}
}

func (r FloatRange) sample(s *prng.Stream) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return s.Uniform(r.Min, r.Max)
}

func (r FloatRange) factor(v float64) float64 {
	span := r.Max - r.Min
	if span < 0.1 {
		span = 0.1
	}
	f := (v - r.Min) / span
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (r IntRange) sample(s *prng.Stream) int {
	return s.IntRange(r.Min, r.Max)
}

func (m FeatureMode) resolve(s *prng.Stream, p float64) bool {
	switch m {
	case FeatureAlways:
		return true
	case FeatureNever:
		return false
	}
	return s.Chance(p)
}

// Sample draws the parameter set for building index. The stream is
// seeded with BaseSeed + index, so each index reproduces independently
// of how many buildings the batch contains.
func (r *Ranges) Sample(index int) Building {
	s := prng.New(r.BaseSeed + int64(index))
	b := Defaults()
	b.Seed = r.BaseSeed + int64(index)

	b.Width = r.Width.sample(s)
	b.Depth = r.Depth.sample(s)
	b.Floors = r.Floors.sample(s)
	b.FloorHeight = r.FloorHeight.sample(s)
	b.WallThickness = r.WallThickness.sample(s)

	widthF := r.Width.factor(b.Width)
	depthF := r.Depth.factor(b.Depth)
	floorsSpan := r.Floors.Max - r.Floors.Min
	floorsF := 0.5
	if floorsSpan > 0 {
		floorsF = float64(b.Floors-r.Floors.Min) / float64(floorsSpan)
	}
	footprintF := (widthF + depthF) / 2

	b.BuildingProfile = r.sampleProfile(s, b)

	b.WindowsPerFloor = r.sampleWindowCount(s, b.Width)
	b.WindowHeight = r.sampleWindowHeight(s, b.FloorHeight)
	b.WindowWidth = r.WindowWidth.sample(s)
	if b.WindowsPerFloor > 3 {
		// Tighter spacing when the facade is crowded.
		b.WindowSpacing = FloatRange{r.WindowSpacing.Min, (r.WindowSpacing.Min + r.WindowSpacing.Max) / 2}.sample(s)
	} else {
		b.WindowSpacing = r.WindowSpacing.sample(s)
	}
	b.SillHeight = r.SillHeight.sample(s)

	b.StorefrontWindowHeight = r.StorefrontWindowHeight.sample(s)
	b.StorefrontSillHeight = r.StorefrontSillHeight.sample(s)
	b.GroundFloorWindows = r.sampleGroundWindows(s, b)
	if b.GroundFloorWindows == GroundStorefront || b.GroundFloorWindows == GroundStorefrontWide {
		b.GroundFloorWindowCount = r.sampleStorefrontCount(s, b.Width)
		b.StorefrontWindowWidth = r.StorefrontWindowWidth.sample(s)
		if b.GroundFloorWindows == GroundStorefrontWide {
			b.StorefrontWindowWidth *= 1.3
		}
	} else {
		b.GroundFloorWindowCount = b.WindowsPerFloor
		b.StorefrontWindowWidth = b.WindowWidth
	}

	b.DoorWidth = r.DoorWidth.sample(s)
	b.DoorHeight = r.DoorHeight.sample(s)
	b.FrontDoorOffset = s.Uniform(0.05, 0.95)

	if r.BackExit == FeatureRandom {
		p := 0.3 + footprintF*0.4
		if b.BuildingProfile == ProfileWarehouse || b.BuildingProfile == ProfileBar {
			p += 0.2
		}
		if p > 0.9 {
			p = 0.9
		}
		b.BackExit = s.Chance(p)
	} else {
		b.BackExit = r.BackExit == FeatureAlways
	}
	b.BackDoorOffset = s.Uniform(0.2, 0.8)

	b.FlatRoof = r.FlatRoof.resolve(s, 0.5)
	if r.FloorSlabs == FeatureRandom {
		if b.Floors > 1 {
			b.FloorSlabs = s.Chance(0.9)
		} else {
			b.FloorSlabs = s.Chance(0.4)
		}
	} else {
		b.FloorSlabs = r.FloorSlabs == FeatureAlways
	}

	if r.FacadePilasters == FeatureRandom {
		p := 0.2 + widthF*0.3
		if b.BuildingProfile == ProfileStorefront {
			p += 0.2
		}
		if p > 0.7 {
			p = 0.7
		}
		b.FacadePilasters = s.Chance(p)
	} else {
		b.FacadePilasters = r.FacadePilasters == FeatureAlways
	}
	if b.FacadePilasters {
		b.PilasterWidth = r.PilasterWidth.sample(s)
		b.PilasterDepth = r.PilasterDepth.sample(s)
		b.PilasterStyle = PilasterStyle(s.IntN(4))
		b.PilasterSides = PilasterSides(s.IntN(3))
	}

	if r.RoofParapet == FeatureRandom {
		b.RoofParapet = b.FlatRoof && s.Chance(0.5+floorsF*0.2)
	} else {
		b.RoofParapet = r.RoofParapet == FeatureAlways
	}
	if b.RoofParapet {
		b.ParapetHeight = r.ParapetHeight.sample(s)
	}

	if b.Floors >= 2 {
		b.HasPatio = r.Patio.resolve(s, r.PatioProbability)
		if b.HasPatio {
			b.PatioSize = r.PatioSize.sample(s)
			b.PatioDoorWidth = r.PatioDoorWidth.sample(s)
			b.PatioSide = PatioSide(s.IntN(4))
		}
	}

	if r.ExteriorStairs == FeatureRandom {
		b.ExteriorStairs = b.Floors > 1 && s.Chance(0.25)
	} else {
		b.ExteriorStairs = r.ExteriorStairs == FeatureAlways
	}

	b.WindowSides = r.sampleWindowSides(s, footprintF)

	if r.RandomFill {
		options := []InteriorFill{FillNone, FillNone, FillFilled, FillPartial, FillRubblePiles}
		b.InteriorFill = options[s.IntN(len(options))]
	} else {
		b.InteriorFill = r.InteriorFill
	}
	b.FillFloors = r.FillFloors.sample(s)
	b.RubbleDensity = r.RubbleDensity.sample(s)

	if r.ExteriorRubble == FeatureRandom {
		b.ExteriorRubble = s.Chance(0.4)
	} else {
		b.ExteriorRubble = r.ExteriorRubble == FeatureAlways
	}
	b.ExteriorRubblePiles = r.ExteriorRubblePiles.sample(s)

	b.EnableDamage = r.Damage.resolve(s, r.DamageProbability)
	if b.EnableDamage {
		b.DamageAmount = r.DamageAmount.sample(s)
		b.DamagePointiness = r.DamagePointiness.sample(s)
		b.DamageResolution = r.DamageResolution.sample(s)
	}

	return b
}

// sampleProfile picks an interior profile weighted by the building
// shape: wide buildings skew retail, deep buildings skew residential,
// big square footprints skew warehouse.
func (r *Ranges) sampleProfile(s *prng.Stream, b Building) Profile {
	if !r.RandomProfile {
		return r.Profile
	}

	type weighted struct {
		p Profile
		w float64
	}
	var weights []weighted
	switch {
	case b.Width > b.Depth*1.3 && b.Width >= 8:
		weights = []weighted{{ProfileStorefront, 0.4}, {ProfileWarehouse, 0.3}, {ProfileBar, 0.2}, {ProfileResidential, 0.1}}
	case b.Depth > b.Width*1.3:
		weights = []weighted{{ProfileResidential, 0.5}, {ProfileWarehouse, 0.2}, {ProfileStorefront, 0.15}, {ProfileBar, 0.1}, {ProfileNone, 0.05}}
	case b.Width >= 10 && b.Depth >= 10:
		weights = []weighted{{ProfileWarehouse, 0.35}, {ProfileBar, 0.3}, {ProfileStorefront, 0.2}, {ProfileResidential, 0.1}, {ProfileNone, 0.05}}
	case b.Floors == 1:
		weights = []weighted{{ProfileWarehouse, 0.3}, {ProfileStorefront, 0.3}, {ProfileBar, 0.2}, {ProfileNone, 0.2}}
	default:
		weights = []weighted{{ProfileStorefront, 0.25}, {ProfileResidential, 0.25}, {ProfileWarehouse, 0.2}, {ProfileBar, 0.15}, {ProfileNone, 0.15}}
	}

	v := s.Float()
	cum := 0.0
	for _, w := range weights {
		cum += w.w
		if v <= cum {
			return w.p
		}
	}
	return ProfileNone
}

// sampleWindowCount blends a width-derived ideal (one window per
// ~2.5 m of facade) with a random draw, clamped to the allowed range.
func (r *Ranges) sampleWindowCount(s *prng.Stream, width float64) int {
	ideal := int(width / 2.5)
	if ideal < 1 {
		ideal = 1
	}
	span := r.WindowsPerFloor.Max - r.WindowsPerFloor.Min
	if span <= 0 {
		return r.WindowsPerFloor.Min
	}
	idealF := float64(ideal-r.WindowsPerFloor.Min) / float64(span)
	if idealF < 0 {
		idealF = 0
	}
	if idealF > 1 {
		idealF = 1
	}
	blended := idealF*0.7 + s.Float()*0.3
	n := r.WindowsPerFloor.Min + int(blended*float64(span))
	if n < r.WindowsPerFloor.Min {
		n = r.WindowsPerFloor.Min
	}
	if n > r.WindowsPerFloor.Max {
		n = r.WindowsPerFloor.Max
	}
	return n
}

// sampleWindowHeight scales window height with floor height so tall
// floors do not end up with squat windows.
func (r *Ranges) sampleWindowHeight(s *prng.Stream, floorHeight float64) float64 {
	fhF := r.FloorHeight.factor(floorHeight)
	span := r.WindowHeight.Max - r.WindowHeight.Min
	h := r.WindowHeight.Min + fhF*0.6*span + s.Uniform(0, 0.4*span)
	if h < r.WindowHeight.Min {
		h = r.WindowHeight.Min
	}
	if h > r.WindowHeight.Max {
		h = r.WindowHeight.Max
	}
	return h
}

func (r *Ranges) sampleStorefrontCount(s *prng.Stream, width float64) int {
	ideal := int(width / 3)
	if ideal < 1 {
		ideal = 1
	}
	span := r.GroundFloorWindowCount.Max - r.GroundFloorWindowCount.Min
	if span <= 0 {
		return r.GroundFloorWindowCount.Min
	}
	idealF := float64(ideal-r.GroundFloorWindowCount.Min) / float64(span)
	if idealF < 0 {
		idealF = 0
	}
	if idealF > 1 {
		idealF = 1
	}
	blended := idealF*0.7 + s.Float()*0.3
	return r.GroundFloorWindowCount.Min + int(blended*float64(span))
}

func (r *Ranges) sampleGroundWindows(s *prng.Stream, b Building) GroundWindows {
	switch b.BuildingProfile {
	case ProfileStorefront:
		return []GroundWindows{GroundStorefront, GroundStorefrontWide}[s.IntN(2)]
	case ProfileWarehouse:
		return []GroundWindows{GroundNone, GroundNone, GroundRegular}[s.IntN(3)]
	case ProfileBar:
		return []GroundWindows{GroundStorefront, GroundStorefrontWide, GroundRegular}[s.IntN(3)]
	case ProfileResidential:
		return []GroundWindows{GroundRegular, GroundRegular, GroundStorefront}[s.IntN(3)]
	}
	if b.Width >= 8 {
		return []GroundWindows{GroundStorefront, GroundStorefrontWide, GroundRegular}[s.IntN(3)]
	}
	return []GroundWindows{GroundRegular, GroundStorefront, GroundNone}[s.IntN(3)]
}

func (r *Ranges) sampleWindowSides(s *prng.Stream, footprintF float64) WindowSides {
	if !r.RandomSides {
		return r.WindowSidesFixed
	}
	var options []WindowSides
	switch {
	case footprintF > 0.7:
		options = []WindowSides{SidesAll, SidesAll, SidesAll, SidesFrontBack, SidesFrontSides}
	case footprintF > 0.4:
		options = []WindowSides{SidesAll, SidesFrontBack, SidesFrontBack, SidesFrontSides, SidesFrontLeft, SidesFrontRight}
	default:
		options = []WindowSides{SidesFrontBack, SidesFrontBack, SidesFrontOnly, SidesFrontLeft, SidesFrontRight, SidesAll}
	}
	return options[s.IntN(len(options))]
}
