package style

// OpacityAt evaluates the opacity ramp for a construction year. The ramp is
// piecewise linear between stops; values outside the stop range clamp to the
// nearest endpoint, so everything built up to the display year is opaque and
// everything newer than year+1 is invisible.
func (s RenderSpec) OpacityAt(v float64) float64 {
	stops := s.Opacity
	if len(stops) == 0 {
		return 1
	}
	if v <= stops[0].Value {
		return stops[0].Opacity
	}
	last := stops[len(stops)-1]
	if v >= last.Value {
		return last.Opacity
	}
	for i := 1; i < len(stops); i++ {
		lo, hi := stops[i-1], stops[i]
		if v <= hi.Value {
			t := (v - lo.Value) / (hi.Value - lo.Value)
			return lo.Opacity + t*(hi.Opacity-lo.Opacity)
		}
	}
	return last.Opacity
}

// ColorAt evaluates the color ramp for a construction year. Stops are
// consumed in decreasing value order, as ForYear emits them; values beyond
// the outer stops clamp to the endpoint colors.
func (s RenderSpec) ColorAt(v float64) Color {
	stops := s.Colors
	if len(stops) == 0 {
		return s.Symbol.Fill
	}
	if v >= stops[0].Value {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if v <= last.Value {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		hi, lo := stops[i-1], stops[i]
		if v >= lo.Value {
			t := (v - lo.Value) / (hi.Value - lo.Value)
			return lo.Color.Blend(hi.Color, t)
		}
	}
	return last.Color
}

// Visible reports whether a construction year renders at all under this
// spec.
func (s RenderSpec) Visible(v float64) bool {
	return s.OpacityAt(v) > 0
}
