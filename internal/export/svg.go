// Package export renders styled snapshots of a feature set outside the
// terminal: SVG and PNG stills of the choropleth at a chosen year, and the
// GIF encoding behind the TUI's session recorder.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/agemap/internal/geo"
	"github.com/san-kum/agemap/internal/style"
)

// snapshotBG is the page color behind the footprints. Fills fade toward it
// exactly as canvas cells fade toward the theme background.
const snapshotBG = "#0a0a0a"

// projector maps lon/lat into image pixels: the frame is letterboxed into
// the output size, longitudes shrunk by the cosine of the frame's mid
// latitude, north up.
type projector struct {
	frame      geo.BBox
	kx, scale  float64
	offX, offY float64
}

func newProjector(frame geo.BBox, width, height int) projector {
	kx := math.Cos(frame.Center().Lat * math.Pi / 180)
	if kx < 0.05 {
		kx = 0.05
	}
	fw := frame.Width() * kx
	fh := frame.Height()
	if fw <= 0 {
		fw = 1e-9
	}
	if fh <= 0 {
		fh = 1e-9
	}
	scale := float64(width) / fw
	if s := float64(height) / fh; s < scale {
		scale = s
	}
	return projector{
		frame: frame,
		kx:    kx,
		scale: scale,
		offX:  (float64(width) - fw*scale) / 2,
		offY:  (float64(height) - fh*scale) / 2,
	}
}

func (p projector) point(pt geo.Point) (float64, float64) {
	x := p.offX + (pt.Lon-p.frame.MinLon)*p.kx*p.scale
	y := p.offY + (p.frame.MaxLat-pt.Lat)*p.scale
	return x, y
}

func (p projector) ring(r geo.Ring) geo.ScreenRing {
	out := make(geo.ScreenRing, len(r))
	for i, pt := range r {
		x, y := p.point(pt)
		out[i] = [2]float64{x, y}
	}
	return out
}

// SVG renders the feature set styled for the spec's year into an SVG
// document: one path per footprint with the ramp fill and opacity, plus the
// three-stop legend. Output is deterministic for a given input.
func SVG(set *geo.FeatureSet, spec style.RenderSpec, frame geo.BBox, width, height int) string {
	proj := newProjector(frame, width, height)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, snapshotBG))

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
		fill := spec.ColorAt(float64(f.Year))

		var d strings.Builder
		for _, pg := range f.Polygons {
			writeSubpath(&d, proj.ring(pg.Outer))
			for _, h := range pg.Holes {
				writeSubpath(&d, proj.ring(h))
			}
		}
		sb.WriteString(fmt.Sprintf(`<path d="%s" fill="%s" fill-opacity="%.2f" fill-rule="evenodd"/>`,
			d.String(), fill.Hex(), op))
		sb.WriteString("\n")
	}

	writeLegend(&sb, spec, height)
	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeSubpath(d *strings.Builder, ring geo.ScreenRing) {
	if len(ring) < 3 {
		return
	}
	for i, pt := range ring {
		if i == 0 {
			fmt.Fprintf(d, "M%.1f,%.1f", pt[0], pt[1])
		} else {
			fmt.Fprintf(d, " L%.1f,%.1f", pt[0], pt[1])
		}
	}
	d.WriteString(" Z ")
}

// writeLegend draws the ramp anchors bottom-left, newest first.
func writeLegend(sb *strings.Builder, spec style.RenderSpec, height int) {
	sb.WriteString(`<g font-family="monospace" font-size="12" fill="#cccccc">` + "\n")
	y := height - 16*len(spec.Colors) - 8
	for _, st := range spec.Colors {
		sb.WriteString(fmt.Sprintf(`<rect x="10" y="%d" width="12" height="12" fill="%s"/>`, y, st.Color.Hex()))
		sb.WriteString(fmt.Sprintf(`<text x="28" y="%d">%s</text>`, y+10, st.Label))
		sb.WriteString("\n")
		y += 16
	}
	sb.WriteString("</g>\n")
}
