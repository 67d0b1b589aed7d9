package geo

import (
	"math"
	"sort"
)

// ScreenRing is a polygon ring projected into continuous screen
// coordinates, x right and y down.
type ScreenRing [][2]float64

// ScanRings walks a projected polygon (outer ring plus holes) scanline by
// scanline and reports each filled span as inclusive pixel bounds. Pixel
// centers sit at +0.5; even-odd crossing counting carves holes out without
// special casing. Spans are clipped to [0,w) x [0,h).
func ScanRings(rings []ScreenRing, w, h int, visit func(y, x0, x1 int)) {
	if len(rings) == 0 {
		return
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, r := range rings {
		for _, p := range r {
			if p[1] < minY {
				minY = p[1]
			}
			if p[1] > maxY {
				maxY = p[1]
			}
		}
	}
	if math.IsInf(minY, 1) {
		return
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))
	if yStart < 0 {
		yStart = 0
	}
	if yEnd >= h {
		yEnd = h - 1
	}

	var xs []float64
	for y := yStart; y <= yEnd; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for _, r := range rings {
			n := len(r)
			if n < 3 {
				continue
			}
			j := n - 1
			for i := 0; i < n; i++ {
				a, b := r[i], r[j]
				if (a[1] > yc) != (b[1] > yc) {
					xs = append(xs, a[0]+(yc-a[1])*(b[0]-a[0])/(b[1]-a[1]))
				}
				j = i
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)

		for k := 0; k+1 < len(xs); k += 2 {
			x0 := int(math.Ceil(xs[k] - 0.5))
			x1 := int(math.Floor(xs[k+1] - 0.5))
			if x0 < 0 {
				x0 = 0
			}
			if x1 >= w {
				x1 = w - 1
			}
			if x0 <= x1 {
				visit(y, x0, x1)
			}
		}
	}
}
