package style

import "testing"

func TestOpacityAt(t *testing.T) {
	spec := ForYear(1950)

	tests := []struct {
		v    float64
		want float64
	}{
		{1800, 1},
		{1949.5, 1},
		{1950, 1},
		{1950.25, 0.75},
		{1950.5, 0.5},
		{1951, 0},
		{1960, 0},
	}

	for _, tt := range tests {
		got := spec.OpacityAt(tt.v)
		if got != tt.want {
			t.Errorf("OpacityAt(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestColorAtAnchors(t *testing.T) {
	spec := ForYear(1950)

	tests := []struct {
		v    float64
		want Color
	}{
		{1950, Color{0, 255, 255}},
		{1940, Color{255, 0, 255}},
		{1930, Color{68, 0, 68}},
		{1990, Color{0, 255, 255}},
		{1900, Color{68, 0, 68}},
	}

	for _, tt := range tests {
		got := spec.ColorAt(tt.v)
		if got != tt.want {
			t.Errorf("ColorAt(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestColorAtInterpolates(t *testing.T) {
	spec := ForYear(1950)

	got := spec.ColorAt(1945)
	if got != (Color{128, 127, 255}) {
		t.Errorf("midpoint of decade segment = %v, want {128 127 255}", got)
	}

	got = spec.ColorAt(1935)
	if got != (Color{161, 0, 161}) {
		t.Errorf("midpoint of oldest segment = %v, want {161 0 161}", got)
	}
}

func TestVisible(t *testing.T) {
	spec := ForYear(1950)

	if !spec.Visible(1950) {
		t.Error("construction at the display year should be visible")
	}
	if !spec.Visible(1950.5) {
		t.Error("construction inside the fade window should be visible")
	}
	if spec.Visible(1951) {
		t.Error("construction a full year ahead should be invisible")
	}
	if spec.Visible(1980) {
		t.Error("future construction should be invisible")
	}
}
