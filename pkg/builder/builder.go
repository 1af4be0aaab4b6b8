// Package builder assembles complete building shells from a parameter
// record: perimeter walls with openings floor by floor, slabs, roof
// and parapet, optional patio and pilasters, damage erosion with
// ragged wall tops, interiors and rubble. The output is a single mesh
// ready for cleanup and UV projection.
package builder

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/sirupsen/logrus"

	"github.com/chazu/ashlar/pkg/damage"
	"github.com/chazu/ashlar/pkg/geom"
	"github.com/chazu/ashlar/pkg/interiors"
	"github.com/chazu/ashlar/pkg/params"
	"github.com/chazu/ashlar/pkg/prng"
	"github.com/chazu/ashlar/pkg/walls"
)

var log = logrus.WithField("pkg", "builder")

const (
	slabThickness = 0.15
	roofThickness = 0.2
)

// Build generates the complete building described by b.
func Build(b params.Building) (*geom.Mesh, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("building parameters: %w", err)
	}

	m := geom.NewMesh()
	rnd := prng.New(b.Seed)
	totalHeight := float64(b.Floors) * b.FloorHeight

	// Damage erodes the shell from the top; the profile is drawn first
	// so wall truncation and rubble limits agree on the silhouette.
	var dmg *damage.Profile
	intactFloors := b.Floors
	damageMin := totalHeight
	damaged := b.EnableDamage && b.DamageAmount > 0
	if damaged {
		minIntact := math.Max(b.DoorHeight+0.5, b.FloorHeight*0.8)
		dmg = damage.Generate(rnd, b.Width, b.Depth, totalHeight, damage.Params{
			Amount:          b.DamageAmount,
			Pointiness:      b.DamagePointiness,
			Resolution:      b.DamageResolution,
			MinIntactHeight: minIntact,
		})
		damageMin = dmg.MinHeight
		intactFloors = damage.IntactFloorCount(damageMin, b.FloorHeight)
		if intactFloors < 1 {
			intactFloors = 1
		}
	}

	floorsToBuild := intactFloors
	if floorsToBuild > b.Floors {
		floorsToBuild = b.Floors
	}
	damageCutsFloors := damaged && intactFloors < b.Floors

	log.WithFields(logrus.Fields{
		"size":    fmt.Sprintf("%gx%gx%d", b.Width, b.Depth, b.Floors),
		"profile": b.BuildingProfile.String(),
		"damaged": damaged,
		"intact":  floorsToBuild,
		"seed":    b.Seed,
	}).Debug("building shell")

	var stairOpening *interiors.Bounds
	if op, ok := interiors.SlabOpening(b); ok {
		stairOpening = &op
	}

	for floorIdx := 0; floorIdx < floorsToBuild; floorIdx++ {
		baseZ := float64(floorIdx) * b.FloorHeight
		ground := floorIdx == 0
		topIntact := floorIdx == floorsToBuild-1

		// When damage cuts into upper floors the last intact floor is
		// always capped so the ragged section has a ledge to rise
		// from; otherwise only a roofless top floor gets caps.
		topCap := topIntact && !b.FlatRoof
		if damageCutsFloors {
			topCap = topIntact
		}

		patioFloor := topIntact && b.HasPatio && b.Floors >= 2 && !damaged
		if patioFloor {
			buildPatioFloorWalls(m, b, baseZ, !b.FlatRoof)
		} else {
			buildFloorWalls(m, b, baseZ, ground, topCap)
		}

		if floorIdx > 0 && b.FloorSlabs {
			if patioFloor {
				buildPatioInteriorSlab(m, b, baseZ, stairOpening)
			} else {
				buildFloorSlab(m, b, baseZ, stairOpening)
			}
		}
	}

	// Floors lost to damage may still keep their slabs where the slab
	// plane survives below the lowest break.
	if damaged && b.FloorSlabs {
		for floorIdx := floorsToBuild; floorIdx < b.Floors; floorIdx++ {
			baseZ := float64(floorIdx) * b.FloorHeight
			if baseZ < damageMin-0.1 {
				buildFloorSlab(m, b, baseZ, stairOpening)
			}
		}
	}

	if damageCutsFloors {
		buildDamagedTop(m, b, dmg, float64(intactFloors)*b.FloorHeight)
	}

	// Roofline features only survive on an undamaged silhouette.
	roofAndFeatures := !damaged || intactFloors >= b.Floors
	hasPatio := b.HasPatio && b.Floors >= 2 && roofAndFeatures
	var patio *patioInfo

	if roofAndFeatures {
		if b.FacadePilasters {
			buildPilasters(m, b, totalHeight)
		}
		if hasPatio {
			patio = buildPatio(m, b, float64(b.Floors-1)*b.FloorHeight, stairOpening)
		}
		if b.RoofParapet {
			if patio != nil {
				buildParapetWithPatio(m, b, totalHeight, patio)
			} else {
				buildParapet(m, b, totalHeight)
			}
		}
		if b.FlatRoof {
			if patio != nil {
				buildRoofWithPatio(m, b, totalHeight, patio)
			} else {
				buildRoof(m, b, totalHeight)
			}
		}
	} else if b.FacadePilasters && intactFloors > 0 {
		buildPilasters(m, b, float64(intactFloors)*b.FloorHeight)
	}

	// Interior layout is suppressed by the fill modes that bury it.
	switch b.InteriorFill {
	case params.FillFilled, params.FillPartial:
		interiors.GenerateFill(m, rnd, b, damageMin)
	case params.FillRubblePiles:
		interiors.Generate(m, b, damageMin)
		interiors.GenerateFill(m, rnd, b, damageMin)
	default:
		interiors.Generate(m, b, damageMin)
	}
	interiors.GenerateExterior(m, rnd, b)

	if b.AutoClean {
		m.Cleanup(b.FloorHeight)
	}
	if b.MarkUVSeams {
		m.GenerateUVs()
		m.MarkSeams()
	}

	log.WithFields(logrus.Fields{
		"verts": m.VertexCount(),
		"faces": m.FaceCount(),
	}).Debug("build complete")
	return m, nil
}

// windowConfig is the per-floor window layout, after ground floor mode
// substitution.
type windowConfig struct {
	width, height float64
	sill          float64
	count         int
}

func windowConfigFor(b params.Building, ground bool) windowConfig {
	if !ground {
		return windowConfig{b.WindowWidth, b.WindowHeight, b.SillHeight, b.WindowsPerFloor}
	}
	switch b.GroundFloorWindows {
	case params.GroundNone:
		return windowConfig{b.WindowWidth, 0, b.SillHeight, 0}
	case params.GroundStorefront, params.GroundStorefrontWide:
		return windowConfig{
			b.StorefrontWindowWidth, b.StorefrontWindowHeight,
			b.StorefrontSillHeight, b.GroundFloorWindowCount,
		}
	default:
		return windowConfig{b.WindowWidth, b.WindowHeight, b.SillHeight, b.WindowsPerFloor}
	}
}

// buildFloorWalls lays out and meshes the four perimeter walls of one
// floor: doors first on the ground floor so windows avoid them, then
// windows routed per WindowSides with side walls getting half counts.
func buildFloorWalls(m *geom.Mesh, b params.Building, baseZ float64, ground, topCap bool) {
	p := walls.NewPerimeter(b.Width, b.Depth, b.FloorHeight, baseZ, b.WallThickness)
	wc := windowConfigFor(b, ground)

	if ground {
		doorX := b.FrontDoorOffset * (b.Width - b.DoorWidth)
		p.Front.AddOpening(doorX, doorX+b.DoorWidth, 0, b.DoorHeight, walls.OpeningDoor)
		if b.BackExit {
			backX := b.BackDoorOffset * (b.Width - b.DoorWidth)
			p.Back.AddOpening(backX, backX+b.DoorWidth, 0, b.DoorHeight, walls.OpeningDoor)
		}
		if door, ok := interiors.ExteriorStairDoor(b); ok {
			addStairDoor(p, door)
		}
	}

	sideCount := b.WindowsPerFloor / 2
	if sideCount < 1 {
		sideCount = 1
	}
	if b.WindowSides.Front() {
		walls.DistributeWindows(p.Front, wc.count, wc.width, wc.height, b.WindowSpacing, wc.sill)
	}
	if b.WindowSides.Back() {
		walls.DistributeWindows(p.Back, wc.count, wc.width, wc.height, b.WindowSpacing, wc.sill)
	}
	if b.WindowSides.Left() {
		walls.DistributeWindows(p.Left, sideCount, wc.width, wc.height, b.WindowSpacing, wc.sill)
	}
	if b.WindowSides.Right() {
		walls.DistributeWindows(p.Right, sideCount, wc.width, wc.height, b.WindowSpacing, wc.sill)
	}

	for _, s := range p.All() {
		walls.Build(m, s, b.WallThickness, topCap)
	}
}

// addStairDoor cuts the external stair access door into its wall.
func addStairDoor(p *walls.Perimeter, door interiors.StairDoor) {
	var seg *walls.Segment
	switch door.Side {
	case interiors.SideFront:
		seg = p.Front
	case interiors.SideBack:
		seg = p.Back
	case interiors.SideLeft:
		seg = p.Left
	default:
		seg = p.Right
	}
	x := door.Offset * (seg.Length() - door.Width)
	height := math.Min(door.Height, seg.Height-0.2)
	seg.AddOpening(x, x+door.Width, 0, height, walls.OpeningDoor)
}

// buildDamagedTop meshes the ragged wall remainders above the intact
// floors. Side wall profiles are rescaled into the shortened runs the
// perimeter leaves between front and back.
func buildDamagedTop(m *geom.Mesh, b params.Building, dmg *damage.Profile, baseZ float64) {
	wt := b.WallThickness

	damage.BuildTopSection(m, dmg.Walls[damage.WallFront],
		v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: -1},
		baseZ, wt, geom.MatWalls)

	back := dmg.Walls[damage.WallBack]
	reversed := make([]damage.Sample, 0, len(back))
	for i := len(back) - 1; i >= 0; i-- {
		reversed = append(reversed, damage.Sample{Pos: b.Width - back[i].Pos, Height: back[i].Height})
	}
	damage.BuildTopSection(m, reversed,
		v3.Vec{Y: b.Depth}, v3.Vec{X: 1}, v3.Vec{Y: 1},
		baseZ, wt, geom.MatWalls)

	rescale := func(samples []damage.Sample) []damage.Sample {
		out := make([]damage.Sample, 0, len(samples))
		for _, s := range samples {
			pos := s.Pos
			if b.Depth > 2*wt {
				pos = wt + (s.Pos/b.Depth)*(b.Depth-2*wt)
			}
			out = append(out, damage.Sample{Pos: pos - wt, Height: s.Height})
		}
		return out
	}
	damage.BuildTopSection(m, rescale(dmg.Walls[damage.WallLeft]),
		v3.Vec{Y: wt}, v3.Vec{Y: 1}, v3.Vec{X: -1},
		baseZ, wt, geom.MatWalls)
	damage.BuildTopSection(m, rescale(dmg.Walls[damage.WallRight]),
		v3.Vec{X: b.Width, Y: wt}, v3.Vec{Y: 1}, v3.Vec{X: 1},
		baseZ, wt, geom.MatWalls)
}
