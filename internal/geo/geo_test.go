package geo

import "testing"

func square(x, y, size float64, year int) Feature {
	return Feature{
		Year: year,
		Polygons: []Polygon{{
			Outer: Ring{
				{Lon: x, Lat: y},
				{Lon: x + size, Lat: y},
				{Lon: x + size, Lat: y + size},
				{Lon: x, Lat: y + size},
			},
		}},
	}
}

func TestRingContains(t *testing.T) {
	r := Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	tests := []struct {
		p    Point
		want bool
	}{
		{Point{5, 5}, true},
		{Point{0.1, 9.9}, true},
		{Point{15, 5}, false},
		{Point{-1, 5}, false},
		{Point{5, 11}, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if (Ring{{0, 0}, {1, 1}}).Contains(Point{0.5, 0.5}) {
		t.Error("degenerate ring should contain nothing")
	}
}

func TestPolygonHoles(t *testing.T) {
	pg := Polygon{
		Outer: Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Holes: []Ring{{{4, 4}, {6, 4}, {6, 6}, {4, 6}}},
	}

	if !pg.Contains(Point{2, 2}) {
		t.Error("point between outer ring and hole should be inside")
	}
	if pg.Contains(Point{5, 5}) {
		t.Error("point inside the hole should be outside")
	}
	if pg.Contains(Point{12, 5}) {
		t.Error("point beyond the outer ring should be outside")
	}
}

func TestHitTestTopmost(t *testing.T) {
	set := NewFeatureSet("test", []Feature{
		square(0, 0, 10, 1900),
		square(5, 5, 10, 1950),
	})

	if got := set.HitTest(Point{7, 7}); got != 1 {
		t.Errorf("overlap should hit the topmost feature, got index %d", got)
	}
	if got := set.HitTest(Point{2, 2}); got != 0 {
		t.Errorf("expected the lower feature, got index %d", got)
	}
	if got := set.HitTest(Point{50, 50}); got != -1 {
		t.Errorf("miss should return -1, got %d", got)
	}
}

func TestFeatureSetBounds(t *testing.T) {
	set := NewFeatureSet("test", []Feature{
		square(0, 0, 10, 1900),
		square(20, -5, 5, 1950),
	})

	want := BBox{MinLon: 0, MinLat: -5, MaxLon: 25, MaxLat: 10}
	if set.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", set.Bounds, want)
	}
}

func TestBBoxPad(t *testing.T) {
	b := BBox{MinLon: 0, MinLat: 0, MaxLon: 10, MaxLat: 20}
	p := b.Pad(0.1)

	want := BBox{MinLon: -1, MinLat: -2, MaxLon: 11, MaxLat: 22}
	if p != want {
		t.Errorf("padded = %+v, want %+v", p, want)
	}
	if !p.Contains(Point{-0.5, -1}) {
		t.Error("padded box should contain points in the margin")
	}
}

func TestYearRange(t *testing.T) {
	set := NewFeatureSet("test", []Feature{
		square(0, 0, 1, 1923),
		square(1, 0, 1, 0),
		square(2, 0, 1, 1890),
		square(3, 0, 1, 2001),
	})

	oldest, newest, ok := set.YearRange()
	if !ok || oldest != 1890 || newest != 2001 {
		t.Errorf("range = %d..%d ok=%v, want 1890..2001 ok=true", oldest, newest, ok)
	}

	empty := NewFeatureSet("test", []Feature{square(0, 0, 1, 0)})
	if _, _, ok := empty.YearRange(); ok {
		t.Error("a set of yearless footprints has no range")
	}
}

func TestDecadeCounts(t *testing.T) {
	set := NewFeatureSet("test", []Feature{
		square(0, 0, 1, 1905),
		square(1, 0, 1, 1907),
		square(2, 0, 1, 1911),
		square(3, 0, 1, 1930),
		square(4, 0, 1, 0),
	})

	decades, counts := set.DecadeCounts()

	wantDecades := []int{1900, 1910, 1920, 1930}
	wantCounts := []float64{2, 1, 0, 1}

	if len(decades) != len(wantDecades) {
		t.Fatalf("got %d decades, want %d", len(decades), len(wantDecades))
	}
	for i := range decades {
		if decades[i] != wantDecades[i] || counts[i] != wantCounts[i] {
			t.Errorf("decade %d: (%d, %v), want (%d, %v)",
				i, decades[i], counts[i], wantDecades[i], wantCounts[i])
		}
	}

	none := NewFeatureSet("test", nil)
	if d, c := none.DecadeCounts(); d != nil || c != nil {
		t.Error("empty set should produce no histogram")
	}
}
