package geo

// Contains reports whether p lies inside the ring, by even-odd ray
// casting. Points exactly on an edge may land on either side.
func (r Ring) Contains(p Point) bool {
	if len(r) < 3 {
		return false
	}
	inside := false
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		vi, vj := r[i], r[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) &&
			p.Lon < (vj.Lon-vi.Lon)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lon {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Contains reports whether p lies inside the polygon: within the outer ring
// and outside every hole.
func (pg Polygon) Contains(p Point) bool {
	if !pg.Outer.Contains(p) {
		return false
	}
	for _, h := range pg.Holes {
		if h.Contains(p) {
			return false
		}
	}
	return true
}

// Contains reports whether p lies inside any of the feature's polygons.
func (f Feature) Contains(p Point) bool {
	for _, pg := range f.Polygons {
		if pg.Contains(p) {
			return true
		}
	}
	return false
}

// HitTest returns the index of the topmost footprint containing p. Later
// features draw on top, so the walk runs back to front. Returns -1 on a
// miss.
func (s *FeatureSet) HitTest(p Point) int {
	for i := len(s.Features) - 1; i >= 0; i-- {
		if s.Features[i].Contains(p) {
			return i
		}
	}
	return -1
}
