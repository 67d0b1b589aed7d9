package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/agemap/internal/geo"
)

// Document shapes, kept to the fields the codec touches.
type geojsonDoc struct {
	Type     string           `json:"type"`
	Features []geojsonFeature `json:"features"`
}

type geojsonFeature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties,omitempty"`
	Geometry   geojsonGeometry `json:"geometry"`
}

type geojsonGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// LoadGeoJSON reads a FeatureCollection of Polygon/MultiPolygon footprints.
// The construction year comes from the named property; features whose year
// is missing or unparseable keep year 0.
func LoadGeoJSON(path, yearProperty string) (*geo.FeatureSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: KindGeoJSON, Err: err}
	}
	set, err := ParseGeoJSON(data, yearProperty)
	if err != nil {
		return nil, err
	}
	set.Source = filepath.Base(path)
	return set, nil
}

// ParseGeoJSON decodes FeatureCollection bytes. Geometries other than
// Polygon and MultiPolygon are skipped.
func ParseGeoJSON(data []byte, yearProperty string) (*geo.FeatureSet, error) {
	var doc geojsonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Kind: KindGeoJSON, Err: err}
	}
	if doc.Type != "FeatureCollection" {
		return nil, &Error{Kind: KindGeoJSON, Err: fmt.Errorf("unexpected document type %q", doc.Type)}
	}

	var feats []geo.Feature
	for i, gf := range doc.Features {
		var polys []geo.Polygon
		switch gf.Geometry.Type {
		case "Polygon":
			var rings [][][]float64
			if err := json.Unmarshal(gf.Geometry.Coordinates, &rings); err != nil {
				return nil, &Error{Kind: KindGeoJSON, Err: fmt.Errorf("feature %d: %w", i, err)}
			}
			if pg, ok := toPolygon(rings); ok {
				polys = append(polys, pg)
			}
		case "MultiPolygon":
			var multi [][][][]float64
			if err := json.Unmarshal(gf.Geometry.Coordinates, &multi); err != nil {
				return nil, &Error{Kind: KindGeoJSON, Err: fmt.Errorf("feature %d: %w", i, err)}
			}
			for _, rings := range multi {
				if pg, ok := toPolygon(rings); ok {
					polys = append(polys, pg)
				}
			}
		default:
			continue
		}
		if len(polys) == 0 {
			continue
		}

		feats = append(feats, geo.Feature{
			ID:       featureID(gf.Properties, int64(len(feats)+1)),
			Name:     stringProp(gf.Properties, "name"),
			Year:     yearProp(gf.Properties, yearProperty),
			Polygons: polys,
		})
	}

	return geo.NewFeatureSet("geojson", feats), nil
}

// SaveGeoJSON writes the set in the same schema the loader reads, with the
// construction year under the named property.
func SaveGeoJSON(set *geo.FeatureSet, path, yearProperty string) error {
	doc := geojsonDoc{Type: "FeatureCollection"}

	for _, f := range set.Features {
		props := map[string]any{"id": f.ID}
		if f.Year != 0 {
			props[yearProperty] = f.Year
		}
		if f.Name != "" {
			props["name"] = f.Name
		}

		gm, err := toGeometry(f.Polygons)
		if err != nil {
			return &Error{Kind: KindGeoJSON, Err: err}
		}
		doc.Features = append(doc.Features, geojsonFeature{
			Type:       "Feature",
			Properties: props,
			Geometry:   gm,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &Error{Kind: KindGeoJSON, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &Error{Kind: KindGeoJSON, Err: err}
	}
	return nil
}

func toPolygon(rings [][][]float64) (geo.Polygon, bool) {
	var pg geo.Polygon
	for ri, ring := range rings {
		r := toRing(ring)
		if len(r) < 3 {
			if ri == 0 {
				return geo.Polygon{}, false
			}
			continue
		}
		if ri == 0 {
			pg.Outer = r
		} else {
			pg.Holes = append(pg.Holes, r)
		}
	}
	return pg, len(pg.Outer) >= 3
}

// toRing converts GeoJSON positions ([lon, lat, ...]) and drops the
// explicit closing vertex when present.
func toRing(ring [][]float64) geo.Ring {
	var r geo.Ring
	for _, pos := range ring {
		if len(pos) < 2 {
			continue
		}
		r = append(r, geo.Point{Lon: pos[0], Lat: pos[1]})
	}
	if len(r) > 1 && r[0] == r[len(r)-1] {
		r = r[:len(r)-1]
	}
	return r
}

func toGeometry(polys []geo.Polygon) (geojsonGeometry, error) {
	ringOut := func(pg geo.Polygon) [][][]float64 {
		var rings [][][]float64
		out := func(r geo.Ring) [][]float64 {
			var ps [][]float64
			for _, p := range r {
				ps = append(ps, []float64{p.Lon, p.Lat})
			}
			// close the ring explicitly, as the format expects
			if len(r) > 0 {
				ps = append(ps, []float64{r[0].Lon, r[0].Lat})
			}
			return ps
		}
		rings = append(rings, out(pg.Outer))
		for _, h := range pg.Holes {
			rings = append(rings, out(h))
		}
		return rings
	}

	if len(polys) == 1 {
		coords, err := json.Marshal(ringOut(polys[0]))
		if err != nil {
			return geojsonGeometry{}, err
		}
		return geojsonGeometry{Type: "Polygon", Coordinates: coords}, nil
	}

	var multi [][][][]float64
	for _, pg := range polys {
		multi = append(multi, ringOut(pg))
	}
	coords, err := json.Marshal(multi)
	if err != nil {
		return geojsonGeometry{}, err
	}
	return geojsonGeometry{Type: "MultiPolygon", Coordinates: coords}, nil
}

func stringProp(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

func yearProp(props map[string]any, key string) int {
	switch v := props[key].(type) {
	case float64:
		return int(v)
	case string:
		return parseYear(v)
	default:
		return 0
	}
}

func featureID(props map[string]any, fallback int64) int64 {
	if n, ok := props["id"].(float64); ok {
		return int64(n)
	}
	return fallback
}
