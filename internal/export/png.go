package export

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/san-kum/agemap/internal/geo"
	"github.com/san-kum/agemap/internal/style"
)

// PNG rasterizes the feature set styled for the spec's year, scanline by
// scanline like the terminal canvas: fills fade toward the page background
// by the evaluated opacity, fully transparent footprints are skipped.
func PNG(set *geo.FeatureSet, spec style.RenderSpec, frame geo.BBox, width, height int) *image.RGBA {
	proj := newProjector(frame, width, height)
	bg := style.ParseHex(snapshotBG)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bgc := toRGBA(bg)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, bgc)
		}
	}

	for _, f := range set.Features {
		op := spec.OpacityAt(float64(f.Year))
		if op <= 0 {
			continue
		}
		fb := f.BBox()
		if fb.MaxLon < frame.MinLon || fb.MinLon > frame.MaxLon ||
			fb.MaxLat < frame.MinLat || fb.MinLat > frame.MaxLat {
			continue
		}
		fill := toRGBA(spec.ColorAt(float64(f.Year)).Blend(bg, 1-op))

		for _, pg := range f.Polygons {
			rings := make([]geo.ScreenRing, 0, 1+len(pg.Holes))
			rings = append(rings, proj.ring(pg.Outer))
			for _, h := range pg.Holes {
				rings = append(rings, proj.ring(h))
			}
			geo.ScanRings(rings, width, height, func(y, x0, x1 int) {
				for x := x0; x <= x1; x++ {
					img.SetRGBA(x, y, fill)
				}
			})
		}
	}
	return img
}

// SavePNG renders and writes a PNG snapshot.
func SavePNG(path string, set *geo.FeatureSet, spec style.RenderSpec, frame geo.BBox, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, PNG(set, spec, frame, width, height))
}

func toRGBA(c style.Color) color.RGBA {
	clamp := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: 255}
}
