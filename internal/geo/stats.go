package geo

// YearRange returns the oldest and newest construction years in the set,
// ignoring yearless footprints. ok is false when no feature carries a year.
func (s *FeatureSet) YearRange() (oldest, newest int, ok bool) {
	for _, f := range s.Features {
		if f.Year == 0 {
			continue
		}
		if !ok {
			oldest, newest, ok = f.Year, f.Year, true
			continue
		}
		if f.Year < oldest {
			oldest = f.Year
		}
		if f.Year > newest {
			newest = f.Year
		}
	}
	return oldest, newest, ok
}

// DecadeCounts buckets construction years per decade, returning decades in
// ascending order with a continuous axis (empty decades count zero) so the
// histogram plots without gaps. Yearless footprints are skipped.
func (s *FeatureSet) DecadeCounts() (decades []int, counts []float64) {
	oldest, newest, ok := s.YearRange()
	if !ok {
		return nil, nil
	}

	first := oldest / 10 * 10
	last := newest / 10 * 10

	byDecade := make(map[int]int)
	for _, f := range s.Features {
		if f.Year == 0 {
			continue
		}
		byDecade[f.Year/10*10]++
	}

	for d := first; d <= last; d += 10 {
		decades = append(decades, d)
		counts = append(counts, float64(byDecade[d]))
	}
	return decades, counts
}
