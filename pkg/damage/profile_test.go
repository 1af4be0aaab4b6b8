package damage

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ashlar/pkg/geom"
	"github.com/chazu/ashlar/pkg/prng"
)

const (
	testWidth  = 8.0
	testDepth  = 6.0
	testHeight = 7.0
)

func TestGenerateZeroAmountIsFlat(t *testing.T) {
	p := Generate(prng.New(1), testWidth, testDepth, testHeight, Params{Amount: 0})

	if p.MinHeight != testHeight {
		t.Fatalf("min height = %v, want %v", p.MinHeight, testHeight)
	}
	for w := WallFront; w <= WallRight; w++ {
		for _, s := range p.Walls[w] {
			if s.Height != testHeight {
				t.Fatalf("%v wall sample at %v has height %v", w, s.Pos, s.Height)
			}
		}
	}
}

func TestGenerateBounds(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		p := Generate(prng.New(seed), testWidth, testDepth, testHeight, Params{
			Amount:          0.6,
			Pointiness:      0.5,
			Resolution:      1.0,
			MinIntactHeight: 2.9,
		})

		if p.MinHeight < 2.9 {
			t.Fatalf("seed %d: min height %v below intact floor", seed, p.MinHeight)
		}
		absoluteMin := math.Max(2.9, testHeight*0.1)
		for w := WallFront; w <= WallRight; w++ {
			for _, s := range p.Walls[w] {
				if s.Height < absoluteMin-1e-9 || s.Height > testHeight+1e-9 {
					t.Fatalf("seed %d: %v sample height %v out of [%v, %v]",
						seed, w, s.Height, absoluteMin, testHeight)
				}
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	params := Params{Amount: 0.4, Pointiness: 0.7, Resolution: 1.5, MinIntactHeight: 1.0}
	a := Generate(prng.New(99), testWidth, testDepth, testHeight, params)
	b := Generate(prng.New(99), testWidth, testDepth, testHeight, params)

	for w := WallFront; w <= WallRight; w++ {
		if len(a.Walls[w]) != len(b.Walls[w]) {
			t.Fatalf("%v sample counts differ", w)
		}
		for i := range a.Walls[w] {
			if a.Walls[w][i] != b.Walls[w][i] {
				t.Fatalf("%v sample %d differs", w, i)
			}
		}
	}
}

func TestGenerateSampleSpacing(t *testing.T) {
	p := Generate(prng.New(5), testWidth, testDepth, testHeight, Params{
		Amount: 0.3, Pointiness: 0.5, Resolution: 1.0,
	})

	// width/0.8 = 10 base points means 11 samples from 0 to width.
	front := p.Walls[WallFront]
	if len(front) != 11 {
		t.Fatalf("front sample count = %d, want 11", len(front))
	}
	if front[0].Pos != 0 || math.Abs(front[len(front)-1].Pos-testWidth) > 1e-9 {
		t.Fatalf("front profile does not span the wall: %v..%v",
			front[0].Pos, front[len(front)-1].Pos)
	}

	// Higher resolution means more samples.
	hi := Generate(prng.New(5), testWidth, testDepth, testHeight, Params{
		Amount: 0.3, Pointiness: 0.5, Resolution: 2.0,
	})
	if len(hi.Walls[WallFront]) <= len(front) {
		t.Fatal("doubling resolution did not add samples")
	}
}

func TestHeightAtInterpolation(t *testing.T) {
	p := &Profile{}
	p.Walls[WallFront] = []Sample{{0, 4}, {2, 6}, {4, 2}}

	tests := []struct {
		pos, want float64
	}{
		{-1, 4},  // clamp low
		{0, 4},
		{1, 5},   // midpoint of first span
		{2, 6},
		{3, 4},   // midpoint of second span
		{4, 2},
		{10, 2},  // clamp high
	}
	for _, tt := range tests {
		if got := p.HeightAt(WallFront, tt.pos); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("HeightAt(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestIntactFloorCount(t *testing.T) {
	tests := []struct {
		min, fh float64
		want    int
	}{
		{7.0, 3.5, 2},
		{6.9, 3.5, 1},
		{3.4, 3.5, 0},
		{0, 3.5, 0},
		{7.0, 0, 0},
	}
	for _, tt := range tests {
		if got := IntactFloorCount(tt.min, tt.fh); got != tt.want {
			t.Errorf("IntactFloorCount(%v, %v) = %d, want %d", tt.min, tt.fh, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Top section meshing
// ---------------------------------------------------------------------------

func TestBuildTopSection(t *testing.T) {
	samples := []Sample{{0, 5.0}, {2, 5.6}, {4, 4.8}}
	m := geom.NewMesh()
	BuildTopSection(m, samples,
		v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: -1},
		3.5, 0.25, geom.MatWalls)

	// Two spans: outer + inner + top each, plus two end caps.
	if m.FaceCount() != 8 {
		t.Fatalf("face count = %d, want 8", m.FaceCount())
	}

	min, max := m.BoundingBox()
	if min.Z != 3.5 {
		t.Fatalf("base z = %v, want 3.5", min.Z)
	}
	if math.Abs(max.Z-5.6) > 1e-9 {
		t.Fatalf("top z = %v, want 5.6", max.Z)
	}
	if math.Abs(max.Y-0.25) > 1e-9 {
		t.Fatalf("inner skin y = %v, want 0.25", max.Y)
	}
}

func TestBuildTopSectionSkipsCollapsedSpans(t *testing.T) {
	// Every sample at or below the floor line: nothing to mesh.
	samples := []Sample{{0, 3.5}, {2, 3.52}, {4, 3.5}}
	m := geom.NewMesh()
	BuildTopSection(m, samples,
		v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: -1},
		3.5, 0.25, geom.MatWalls)

	if !m.IsEmpty() {
		t.Fatalf("expected empty mesh, got %d faces", m.FaceCount())
	}
}
