package viz

import (
	"testing"

	"github.com/san-kum/agemap/internal/geo"
	"github.com/san-kum/agemap/internal/style"
)

func footprint(lon, lat, size float64, year int) geo.Feature {
	return geo.Feature{
		Year: year,
		Polygons: []geo.Polygon{{
			Outer: geo.Ring{
				{Lon: lon, Lat: lat},
				{Lon: lon + size, Lat: lat},
				{Lon: lon + size, Lat: lat + size},
				{Lon: lon, Lat: lat + size},
			},
		}},
	}
}

func TestDrawFeaturesCullsOutsideViewport(t *testing.T) {
	near := footprint(13.0, 52.0, 0.01, 1900)
	far := footprint(45.0, 10.0, 0.01, 1900)
	set := geo.NewFeatureSet("test", []geo.Feature{near, far})

	cam := NewCamera(near.BBox())
	c := NewCanvas(40, 20)

	if got := DrawFeatures(c, set, cam, style.ForYear(1950), -1); got != 1 {
		t.Errorf("visible = %d, want 1 with the far footprint off-screen", got)
	}
}

func TestDrawFeaturesSkipsUnbuilt(t *testing.T) {
	set := geo.NewFeatureSet("test", []geo.Feature{footprint(13.0, 52.0, 0.01, 1960)})
	cam := NewCamera(set.Bounds)
	c := NewCanvas(40, 20)

	if got := DrawFeatures(c, set, cam, style.ForYear(1930), -1); got != 0 {
		t.Errorf("visible = %d, want 0 before construction", got)
	}
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if c.Grid[row][col] != emptyCell {
				t.Fatalf("cell (%d,%d) painted for an unbuilt footprint", col, row)
			}
		}
	}
}

func TestDrawFeaturesYearlessAlwaysRenders(t *testing.T) {
	set := geo.NewFeatureSet("test", []geo.Feature{footprint(13.0, 52.0, 0.01, 0)})
	cam := NewCamera(set.Bounds)
	c := NewCanvas(40, 20)

	if got := DrawFeatures(c, set, cam, style.ForYear(1880), -1); got != 1 {
		t.Errorf("visible = %d, want 1: yearless footprints clamp to opaque", got)
	}
}

func TestDrawFeaturesHighlightOutline(t *testing.T) {
	set := geo.NewFeatureSet("test", []geo.Feature{footprint(13.0, 52.0, 0.01, 1900)})
	cam := NewCamera(set.Bounds)
	c := NewCanvas(40, 20)

	DrawFeatures(c, set, cam, style.ForYear(1950), 0)

	accent := style.ParseHex(string(CurrentTheme.Accent))
	found := false
	for row := 0; row < c.Height && !found; row++ {
		for col := 0; col < c.Width; col++ {
			if c.CellColor(col, row) == accent {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("highlighting should stroke the footprint in the accent color")
	}
}

func TestCellPointRoundTrip(t *testing.T) {
	set := geo.NewFeatureSet("test", []geo.Feature{footprint(13.0, 52.0, 0.1, 1900)})
	cam := NewCamera(set.Bounds)
	c := NewCanvas(40, 20)

	for _, cell := range [][2]int{{0, 0}, {20, 10}, {39, 19}} {
		p := CellPoint(cam, c, cell[0], cell[1])
		x, y := cam.Project(p, c.SubW(), c.SubH())
		if int(x)/2 != cell[0] || int(y)/4 != cell[1] {
			t.Errorf("cell %v round-tripped to sub-pixel (%v, %v)", cell, x, y)
		}
	}
}
