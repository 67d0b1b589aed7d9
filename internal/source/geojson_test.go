package source

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/agemap/internal/geo"
)

const sampleDoc = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"start_date": 1905, "name": "Mill"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [
          [[0,0],[10,0],[10,10],[0,10],[0,0]],
          [[4,4],[6,4],[6,6],[4,6],[4,4]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"start_date": "1912-05"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[20,0],[25,0],[25,5],[20,5],[20,0]]],
          [[[30,0],[35,0],[35,5],[30,5],[30,0]]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[40,0],[45,0],[45,5],[40,5],[40,0]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"start_date": 1999},
      "geometry": {"type": "Point", "coordinates": [1,1]}
    }
  ]
}`

func TestParseGeoJSON(t *testing.T) {
	set, err := ParseGeoJSON([]byte(sampleDoc), "start_date")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if set.Len() != 3 {
		t.Fatalf("expected 3 footprints (point skipped), got %d", set.Len())
	}

	mill := set.Features[0]
	if mill.Year != 1905 || mill.Name != "Mill" {
		t.Errorf("first feature = year %d name %q", mill.Year, mill.Name)
	}
	if len(mill.Polygons) != 1 || len(mill.Polygons[0].Holes) != 1 {
		t.Fatal("expected one polygon with one hole")
	}
	if len(mill.Polygons[0].Outer) != 4 {
		t.Errorf("closing vertex should be dropped, ring has %d points", len(mill.Polygons[0].Outer))
	}
	if mill.Contains(geo.Point{Lon: 5, Lat: 5}) {
		t.Error("courtyard point should fall in the hole")
	}
	if !mill.Contains(geo.Point{Lon: 2, Lat: 2}) {
		t.Error("point inside the outer ring should hit")
	}

	multi := set.Features[1]
	if multi.Year != 1912 {
		t.Errorf("string year should parse by prefix, got %d", multi.Year)
	}
	if len(multi.Polygons) != 2 {
		t.Errorf("multipolygon should yield 2 polygons, got %d", len(multi.Polygons))
	}

	if set.Features[2].Year != 0 {
		t.Errorf("missing year should stay 0, got %d", set.Features[2].Year)
	}
}

func TestParseGeoJSONErrors(t *testing.T) {
	var srcErr *Error

	_, err := ParseGeoJSON([]byte(`{"type": "Topology"}`), "start_date")
	if err == nil || !errors.As(err, &srcErr) || srcErr.Kind != KindGeoJSON {
		t.Errorf("wrong document type should yield a geojson source error, got %v", err)
	}

	_, err = ParseGeoJSON([]byte(`{nope`), "start_date")
	if err == nil || !errors.As(err, &srcErr) {
		t.Errorf("malformed json should yield a source error, got %v", err)
	}
}

func TestGeoJSONRoundTrip(t *testing.T) {
	orig, err := ParseGeoJSON([]byte(sampleDoc), "start_date")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.geojson")
	if err := SaveGeoJSON(orig, path, "start_date"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	back, err := LoadGeoJSON(path, "start_date")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if back.Len() != orig.Len() {
		t.Fatalf("round trip changed feature count: %d -> %d", orig.Len(), back.Len())
	}
	for i := range orig.Features {
		a, b := orig.Features[i], back.Features[i]
		if a.Year != b.Year || a.Name != b.Name || len(a.Polygons) != len(b.Polygons) {
			t.Errorf("feature %d changed: %+v -> %+v", i, a, b)
		}
	}
	if back.Bounds != orig.Bounds {
		t.Errorf("bounds changed: %+v -> %+v", orig.Bounds, back.Bounds)
	}
}

func TestLoadGeoJSONMissingFile(t *testing.T) {
	_, err := LoadGeoJSON(filepath.Join(t.TempDir(), "absent.geojson"), "start_date")
	var srcErr *Error
	if err == nil || !errors.As(err, &srcErr) || srcErr.Kind != KindGeoJSON {
		t.Errorf("missing file should yield a geojson source error, got %v", err)
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1912", 1912},
		{"1912-05", 1912},
		{"2001-01-01", 2001},
		{"c.1900", 0},
		{"19", 0},
		{"", 0},
		{"abcd", 0},
	}

	for _, tt := range tests {
		if got := parseYear(tt.in); got != tt.want {
			t.Errorf("parseYear(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
