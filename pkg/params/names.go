package params

import "fmt"

// Name tables for the enum fields that cross the script and CLI
// boundary. Parsing is strict; an unknown name is a caller error, not
// a fallback.

var windowSidesNames = map[WindowSides]string{
	SidesAll:        "all",
	SidesFrontBack:  "front_back",
	SidesFrontSides: "front_sides",
	SidesFrontOnly:  "front_only",
	SidesFrontLeft:  "front_left",
	SidesFrontRight: "front_right",
	SidesBackSides:  "back_sides",
	SidesSidesOnly:  "sides_only",
	SidesNone:       "none",
}

func (s WindowSides) String() string {
	if n, ok := windowSidesNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseWindowSides converts a routing name to its enum value.
func ParseWindowSides(s string) (WindowSides, error) {
	for v, name := range windowSidesNames {
		if name == s {
			return v, nil
		}
	}
	return SidesAll, fmt.Errorf("unknown window sides %q", s)
}

var groundWindowsNames = map[GroundWindows]string{
	GroundNone:           "none",
	GroundRegular:        "regular",
	GroundStorefront:     "storefront",
	GroundStorefrontWide: "storefront_wide",
}

func (g GroundWindows) String() string {
	if n, ok := groundWindowsNames[g]; ok {
		return n
	}
	return "unknown"
}

// ParseGroundWindows converts a ground floor window mode name.
func ParseGroundWindows(s string) (GroundWindows, error) {
	for v, name := range groundWindowsNames {
		if name == s {
			return v, nil
		}
	}
	return GroundRegular, fmt.Errorf("unknown ground floor window mode %q", s)
}

var patioSideNames = map[PatioSide]string{
	PatioBack:  "back",
	PatioFront: "front",
	PatioLeft:  "left",
	PatioRight: "right",
}

func (p PatioSide) String() string {
	if n, ok := patioSideNames[p]; ok {
		return n
	}
	return "unknown"
}

// ParsePatioSide converts a patio side name.
func ParsePatioSide(s string) (PatioSide, error) {
	for v, name := range patioSideNames {
		if name == s {
			return v, nil
		}
	}
	return PatioBack, fmt.Errorf("unknown patio side %q", s)
}

var pilasterStyleNames = map[PilasterStyle]string{
	PilastersCorners:        "corners",
	PilastersCornersCenter:  "corners_center",
	PilastersBetweenWindows: "between_windows",
	PilastersFull:           "full",
}

func (p PilasterStyle) String() string {
	if n, ok := pilasterStyleNames[p]; ok {
		return n
	}
	return "unknown"
}

// ParsePilasterStyle converts a pilaster style name.
func ParsePilasterStyle(s string) (PilasterStyle, error) {
	for v, name := range pilasterStyleNames {
		if name == s {
			return v, nil
		}
	}
	return PilastersCorners, fmt.Errorf("unknown pilaster style %q", s)
}

var pilasterSidesNames = map[PilasterSides]string{
	PilasterFront:     "front",
	PilasterFrontBack: "front_back",
	PilasterAll:       "all",
}

func (p PilasterSides) String() string {
	if n, ok := pilasterSidesNames[p]; ok {
		return n
	}
	return "unknown"
}

// ParsePilasterSides converts a pilaster sides name.
func ParsePilasterSides(s string) (PilasterSides, error) {
	for v, name := range pilasterSidesNames {
		if name == s {
			return v, nil
		}
	}
	return PilasterFront, fmt.Errorf("unknown pilaster sides %q", s)
}

var fillNames = map[InteriorFill]string{
	FillNone:        "none",
	FillFilled:      "filled",
	FillPartial:     "partial",
	FillRubblePiles: "rubble_piles",
}

func (f InteriorFill) String() string {
	if n, ok := fillNames[f]; ok {
		return n
	}
	return "unknown"
}

// ParseFill converts an interior fill mode name.
func ParseFill(s string) (InteriorFill, error) {
	for v, name := range fillNames {
		if name == s {
			return v, nil
		}
	}
	return FillNone, fmt.Errorf("unknown interior fill %q", s)
}
