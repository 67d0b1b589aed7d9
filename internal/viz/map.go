package viz

import (
	"github.com/san-kum/agemap/internal/geo"
	"github.com/san-kum/agemap/internal/style"
)

// DrawFeatures paints every visible footprint onto the canvas with the
// year's ramp colors. Terminal cells have no alpha channel, so opacity
// fades a fill toward the theme background instead; fully transparent
// footprints are skipped, which keeps the built-next-year cutoff sharp.
// highlight indexes set.Features, -1 for none. Returns the number of
// footprints that landed inside the viewport.
func DrawFeatures(c *Canvas, set *geo.FeatureSet, cam *Camera, spec style.RenderSpec, highlight int) int {
	if set == nil || set.Len() == 0 {
		return 0
	}
	bg := style.ParseHex(string(CurrentTheme.Background))
	subW, subH := c.SubW(), c.SubH()
	vp := cam.Viewport()
	visible := 0
	for _, f := range set.Features {
		op := spec.OpacityAt(float64(f.Year))
		if op <= 0 {
			continue
		}
		fb := f.BBox()
		if fb.MaxLon < vp.MinLon || fb.MinLon > vp.MaxLon ||
			fb.MaxLat < vp.MinLat || fb.MinLat > vp.MaxLat {
			continue
		}
		visible++
		fill := spec.ColorAt(float64(f.Year)).Blend(bg, 1-op)
		for _, pg := range f.Polygons {
			rings := make([]geo.ScreenRing, 0, 1+len(pg.Holes))
			rings = append(rings, cam.ProjectRing(pg.Outer, subW, subH))
			for _, h := range pg.Holes {
				rings = append(rings, cam.ProjectRing(h, subW, subH))
			}
			c.FillRings(rings, fill)
		}
	}
	if highlight >= 0 && highlight < set.Len() {
		accent := style.ParseHex(string(CurrentTheme.Accent))
		for _, pg := range set.Features[highlight].Polygons {
			c.StrokeRing(cam.ProjectRing(pg.Outer, subW, subH), accent)
		}
	}
	return visible
}

// CellPoint maps a canvas cell back to the lon/lat under its center, for
// hit-testing pointer positions against footprints.
func CellPoint(cam *Camera, c *Canvas, col, row int) geo.Point {
	x := float64(col*2) + 1
	y := float64(row*4) + 2
	return cam.Unproject(x, y, c.SubW(), c.SubH())
}
