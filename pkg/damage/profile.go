// Package damage generates top-down erosion profiles for building
// shells and meshes the irregular wall tops that follow them. A
// profile is a piecewise-linear height function along each perimeter
// wall; the wall builders truncate full floors below it and the top
// section builder fills the ragged remainder.
package damage

import (
	"math"

	"github.com/chazu/ashlar/pkg/prng"
)

// Wall identifies one perimeter wall of the shell.
type Wall int

const (
	WallFront Wall = iota
	WallBack
	WallLeft
	WallRight
)

var wallNames = [...]string{"front", "back", "left", "right"}

func (w Wall) String() string { return wallNames[w] }

// Sample is one point of a wall height profile: Pos runs along the
// wall from its start corner, Height is the surviving wall height.
type Sample struct {
	Pos    float64
	Height float64
}

// Profile is the eroded height outline of the whole perimeter.
type Profile struct {
	Walls [4][]Sample

	// MinHeight is the lowest surviving height anywhere on the
	// perimeter, floored at IntactHeight.
	MinHeight float64

	// IntactHeight is the caller-supplied height below which damage
	// never reaches (door clearance, floor structure).
	IntactHeight float64
}

// Params bundles the erosion controls.
type Params struct {
	Amount          float64 // 0..1 overall severity
	Pointiness      float64 // 0..1 jaggedness of the silhouette
	Resolution      float64 // sample density multiplier
	MinIntactHeight float64
}

// Generate produces a damage profile for a width x depth x totalHeight
// shell. All randomness comes from s; the draw order is fixed, so one
// seed always yields one silhouette.
func Generate(s *prng.Stream, width, depth, totalHeight float64, p Params) *Profile {
	if p.Amount <= 0 {
		return flatProfile(width, depth, totalHeight, p.MinIntactHeight)
	}

	baseLoss := totalHeight * 0.85 * p.Amount
	variance := baseLoss * p.Pointiness
	absoluteMin := math.Max(p.MinIntactHeight, totalHeight*0.1)

	// Whole-wall collapses: front/back are more exposed than sides.
	collapsed := [4]bool{
		s.Chance(p.Amount * 0.4),
		s.Chance(p.Amount * 0.4),
		s.Chance(p.Amount * 0.35),
		s.Chance(p.Amount * 0.35),
	}
	intensity := [4]float64{1, 1, 1, 1}
	for w := range collapsed {
		if collapsed[w] {
			intensity[w] = s.Uniform(1.3, 2.0)
		}
	}

	// Corner collapses erode the ends of both adjoining walls.
	type zone struct {
		wall       Wall
		start, end float64
		intensity  float64
	}
	var zones []zone
	corners := [4]bool{}
	for c := range corners {
		corners[c] = s.Chance(p.Amount * 0.25)
	}
	if corners[0] { // front-left
		zones = append(zones, zone{WallFront, 0, width * 0.3, s.Uniform(1.5, 2.5)})
		zones = append(zones, zone{WallLeft, 0, depth * 0.3, s.Uniform(1.5, 2.5)})
	}
	if corners[1] { // front-right
		zones = append(zones, zone{WallFront, width * 0.7, width, s.Uniform(1.5, 2.5)})
		zones = append(zones, zone{WallRight, 0, depth * 0.3, s.Uniform(1.5, 2.5)})
	}
	if corners[2] { // back-left
		zones = append(zones, zone{WallBack, width * 0.7, width, s.Uniform(1.5, 2.5)})
		zones = append(zones, zone{WallLeft, depth * 0.7, depth, s.Uniform(1.5, 2.5)})
	}
	if corners[3] { // back-right
		zones = append(zones, zone{WallBack, 0, width * 0.3, s.Uniform(1.5, 2.5)})
		zones = append(zones, zone{WallRight, depth * 0.7, depth, s.Uniform(1.5, 2.5)})
	}

	prof := &Profile{MinHeight: totalHeight, IntactHeight: p.MinIntactHeight}

	lengths := [4]float64{width, width, depth, depth}
	for w, wallLen := range lengths {
		basePoints := int(wallLen / 0.8)
		if basePoints < 3 {
			basePoints = 3
		}
		numPoints := int(float64(basePoints) * p.Resolution)
		if numPoints < 3 {
			numPoints = 3
		}
		wallMult := intensity[w]

		offsets := make([]float64, numPoints+1)
		for i := range offsets {
			offsets[i] = s.Float()
		}

		samples := make([]Sample, 0, numPoints+1)
		for i := 0; i <= numPoints; i++ {
			pos := float64(i) / float64(numPoints) * wallLen

			collapseMult := 1.0
			for _, z := range zones {
				if z.wall != Wall(w) || pos < z.start || pos > z.end {
					continue
				}
				center := (z.start + z.end) / 2
				dist := math.Abs(pos-center) / ((z.end-z.start)/2 + 0.01)
				factor := 1.0 - dist*0.5
				collapseMult = math.Max(collapseMult, 1.0+(z.intensity-1.0)*factor)
			}

			loss := baseLoss*wallMult*collapseMult + (offsets[i]-0.5)*variance*wallMult
			if loss < 0 {
				loss = 0
			}
			h := totalHeight - loss
			h = math.Max(absoluteMin, math.Min(totalHeight, h))

			samples = append(samples, Sample{Pos: pos, Height: h})
			prof.MinHeight = math.Min(prof.MinHeight, h)
		}
		prof.Walls[w] = samples
	}

	prof.MinHeight = math.Max(prof.MinHeight, p.MinIntactHeight)
	return prof
}

func flatProfile(width, depth, totalHeight, intact float64) *Profile {
	return &Profile{
		Walls: [4][]Sample{
			{{0, totalHeight}, {width, totalHeight}},
			{{0, totalHeight}, {width, totalHeight}},
			{{0, totalHeight}, {depth, totalHeight}},
			{{0, totalHeight}, {depth, totalHeight}},
		},
		MinHeight:    totalHeight,
		IntactHeight: intact,
	}
}

// HeightAt linearly interpolates the surviving height at pos along the
// given wall. Positions outside the sampled span clamp to the end
// samples.
func (p *Profile) HeightAt(w Wall, pos float64) float64 {
	samples := p.Walls[w]
	if len(samples) == 0 {
		return 0
	}
	if pos <= samples[0].Pos {
		return samples[0].Height
	}
	if pos >= samples[len(samples)-1].Pos {
		return samples[len(samples)-1].Height
	}
	for i := 0; i < len(samples)-1; i++ {
		a, b := samples[i], samples[i+1]
		if pos < a.Pos || pos > b.Pos {
			continue
		}
		if math.Abs(b.Pos-a.Pos) < 0.001 {
			return a.Height
		}
		t := (pos - a.Pos) / (b.Pos - a.Pos)
		return a.Height + t*(b.Height-a.Height)
	}
	return samples[len(samples)-1].Height
}

// IntactFloorCount returns how many complete floors survive below
// minHeight.
func IntactFloorCount(minHeight, floorHeight float64) int {
	if floorHeight <= 0 {
		return 0
	}
	return int(minHeight / floorHeight)
}
