package params

import "testing"

func TestWindowSidesRouting(t *testing.T) {
	tests := []struct {
		name  string
		sides WindowSides
		want  [4]bool // front, back, left, right
	}{
		{"all", SidesAll, [4]bool{true, true, true, true}},
		{"front_back", SidesFrontBack, [4]bool{true, true, false, false}},
		{"front_sides", SidesFrontSides, [4]bool{true, false, true, true}},
		{"front_only", SidesFrontOnly, [4]bool{true, false, false, false}},
		{"front_left", SidesFrontLeft, [4]bool{true, false, true, false}},
		{"front_right", SidesFrontRight, [4]bool{true, false, false, true}},
		{"back_sides", SidesBackSides, [4]bool{false, true, true, true}},
		{"sides_only", SidesSidesOnly, [4]bool{false, false, true, true}},
		{"none", SidesNone, [4]bool{false, false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := [4]bool{tt.sides.Front(), tt.sides.Back(), tt.sides.Left(), tt.sides.Right()}
			if got != tt.want {
				t.Fatalf("routing = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultsValidate(t *testing.T) {
	b := Defaults()
	if err := b.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Building)
	}{
		{"zero_width", func(b *Building) { b.Width = 0 }},
		{"no_floors", func(b *Building) { b.Floors = 0 }},
		{"zero_floor_height", func(b *Building) { b.FloorHeight = 0 }},
		{"walls_swallow_interior", func(b *Building) { b.WallThickness = 4.0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Defaults()
			tt.mutate(&b)
			if err := b.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestParseProfile(t *testing.T) {
	for p, name := range profileNames {
		got, err := ParseProfile(name)
		if err != nil {
			t.Fatalf("ParseProfile(%q): %v", name, err)
		}
		if got != p {
			t.Fatalf("ParseProfile(%q) = %v, want %v", name, got, p)
		}
	}
	if _, err := ParseProfile("cathedral"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}
