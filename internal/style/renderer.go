// Package style maps building construction years to fill appearance for a
// chosen display year. ForYear builds a declarative spec: a base symbol, a
// two-stop opacity ramp that fades buildings in over a one-year window, and
// a three-stop color ramp that darkens footprints as they age.
package style

import (
	"fmt"
	"math"
)

// Ramp endpoints. The newest construction renders cyan and fades through
// magenta into dark purple for anything twenty or more years old.
const (
	newestHex = "#00ffff"
	decadeHex = "#ff00ff"
	oldestHex = "#440044"
)

// OpacityStop anchors an opacity value at a construction year.
type OpacityStop struct {
	Value   float64
	Opacity float64
}

// ColorStop anchors a ramp color at a construction year, with the legend
// label shown for that anchor.
type ColorStop struct {
	Value float64
	Color Color
	Label string
}

// FillSymbol is the base footprint symbol the ramps modulate.
type FillSymbol struct {
	Fill Color
}

// RenderSpec is the complete styling recipe for one display year. Specs are
// cheap values; callers rebuild the whole spec on every year change instead
// of mutating stops in place.
type RenderSpec struct {
	Year    float64
	Symbol  FillSymbol
	Opacity []OpacityStop
	Colors  []ColorStop
}

// ForYear builds the render spec for a display year. The opacity ramp holds
// exactly two stops, fully opaque at year and fully transparent at year+1.
// The color ramp holds exactly three stops in decreasing value order: year,
// year-10, year-20. Legend labels use the floored display year.
func ForYear(year float64) RenderSpec {
	y := int(math.Floor(year))
	return RenderSpec{
		Year:   year,
		Symbol: FillSymbol{Fill: Color{}},
		Opacity: []OpacityStop{
			{Value: year, Opacity: 1},
			{Value: year + 1, Opacity: 0},
		},
		Colors: []ColorStop{
			{Value: year, Color: ParseHex(newestHex), Label: fmt.Sprintf("in %d", y)},
			{Value: year - 10, Color: ParseHex(decadeHex), Label: fmt.Sprintf("in %d", y-10)},
			{Value: year - 20, Color: ParseHex(oldestHex), Label: fmt.Sprintf("before %d", y-20)},
		},
	}
}
