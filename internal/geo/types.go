// Package geo holds the feature model for building footprints and the
// spatial queries the map runs against them.
package geo

// Point is a lon/lat coordinate pair.
type Point struct {
	Lon float64
	Lat float64
}

// BBox is an axis-aligned lon/lat bounding box.
type BBox struct {
	MinLon float64 `yaml:"min_lon" json:"min_lon"`
	MinLat float64 `yaml:"min_lat" json:"min_lat"`
	MaxLon float64 `yaml:"max_lon" json:"max_lon"`
	MaxLat float64 `yaml:"max_lat" json:"max_lat"`
}

func (b BBox) Width() float64  { return b.MaxLon - b.MinLon }
func (b BBox) Height() float64 { return b.MaxLat - b.MinLat }

func (b BBox) Center() Point {
	return Point{Lon: (b.MinLon + b.MaxLon) / 2, Lat: (b.MinLat + b.MaxLat) / 2}
}

func (b BBox) Contains(p Point) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon && p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

// Extend grows the box to include p.
func (b *BBox) Extend(p Point) {
	if p.Lon < b.MinLon {
		b.MinLon = p.Lon
	}
	if p.Lon > b.MaxLon {
		b.MaxLon = p.Lon
	}
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
}

// Pad returns the box grown by frac of its size on every side.
func (b BBox) Pad(frac float64) BBox {
	dw := b.Width() * frac
	dh := b.Height() * frac
	return BBox{
		MinLon: b.MinLon - dw,
		MinLat: b.MinLat - dh,
		MaxLon: b.MaxLon + dw,
		MaxLat: b.MaxLat + dh,
	}
}

// Ring is a closed polygon ring of lon/lat vertices. The closing edge from
// the last vertex back to the first is implicit.
type Ring []Point

func (r Ring) BBox() BBox {
	if len(r) == 0 {
		return BBox{}
	}
	b := BBox{MinLon: r[0].Lon, MinLat: r[0].Lat, MaxLon: r[0].Lon, MaxLat: r[0].Lat}
	for _, p := range r[1:] {
		b.Extend(p)
	}
	return b
}

// Polygon is one outer ring plus optional holes.
type Polygon struct {
	Outer Ring
	Holes []Ring
}

// Feature is a single building footprint with its construction year. Year 0
// marks a footprint whose source carried no usable year attribute; such
// footprints still render (the opacity ramp clamps) and still hit-test.
type Feature struct {
	ID       int64
	Name     string
	Year     int
	Polygons []Polygon
}

func (f Feature) BBox() BBox {
	var b BBox
	first := true
	for _, pg := range f.Polygons {
		rb := pg.Outer.BBox()
		if first {
			b = rb
			first = false
			continue
		}
		b.Extend(Point{Lon: rb.MinLon, Lat: rb.MinLat})
		b.Extend(Point{Lon: rb.MaxLon, Lat: rb.MaxLat})
	}
	return b
}

// FeatureSet is the building layer: footprints plus their overall bounds.
type FeatureSet struct {
	Source   string
	Features []Feature
	Bounds   BBox
}

// NewFeatureSet wraps footprints into a layer, computing its bounds.
func NewFeatureSet(source string, feats []Feature) *FeatureSet {
	s := &FeatureSet{Source: source, Features: feats}
	for i, f := range feats {
		fb := f.BBox()
		if i == 0 {
			s.Bounds = fb
			continue
		}
		s.Bounds.Extend(Point{Lon: fb.MinLon, Lat: fb.MinLat})
		s.Bounds.Extend(Point{Lon: fb.MaxLon, Lat: fb.MaxLat})
	}
	return s
}

func (s *FeatureSet) Len() int { return len(s.Features) }
