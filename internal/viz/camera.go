package viz

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/agemap/internal/geo"
)

const (
	cameraFPS      = 60
	springFreq     = 6.0
	springDamping  = 0.9
	zoomStep       = 1.25
	minZoom        = 0.5
	maxZoom        = 64.0
	minLatCosine   = 0.05
	minViewportDim = 1e-9
)

// Camera frames a window over the dataset and projects lon/lat into canvas
// sub-pixels. Pan and zoom targets are followed with damped springs, so the
// view glides instead of jumping.
type Camera struct {
	bounds geo.BBox

	spring harmonica.Spring

	lon, lat, zoom          float64
	lonVel, latVel, zoomVel float64
	lonTgt, latTgt, zoomTgt float64
}

// NewCamera frames the dataset bounds with a small margin, starting at
// zoom 1 centered on the data.
func NewCamera(bounds geo.BBox) *Camera {
	c := &Camera{
		bounds: bounds.Pad(0.05),
		spring: harmonica.NewSpring(harmonica.FPS(cameraFPS), springFreq, springDamping),
	}
	c.Reset()
	c.snap()
	return c
}

// Reset retargets the home view: dataset center at zoom 1. The camera
// glides there over the next frames.
func (c *Camera) Reset() {
	home := c.bounds.Center()
	c.lonTgt = home.Lon
	c.latTgt = home.Lat
	c.zoomTgt = 1
}

func (c *Camera) snap() {
	c.lon, c.lat, c.zoom = c.lonTgt, c.latTgt, c.zoomTgt
	c.lonVel, c.latVel, c.zoomVel = 0, 0, 0
}

// Tick advances the springs one frame.
func (c *Camera) Tick() {
	c.lon, c.lonVel = c.spring.Update(c.lon, c.lonVel, c.lonTgt)
	c.lat, c.latVel = c.spring.Update(c.lat, c.latVel, c.latTgt)
	c.zoom, c.zoomVel = c.spring.Update(c.zoom, c.zoomVel, c.zoomTgt)
}

// Pan shifts the view target by a fraction of the visible window. Positive
// dx moves east, positive dy moves north.
func (c *Camera) Pan(dxFrac, dyFrac float64) {
	vp := c.Viewport()
	c.lonTgt = clampf(c.lonTgt+dxFrac*vp.Width(), c.bounds.MinLon, c.bounds.MaxLon)
	c.latTgt = clampf(c.latTgt+dyFrac*vp.Height(), c.bounds.MinLat, c.bounds.MaxLat)
}

func (c *Camera) ZoomIn()  { c.zoomTgt = clampf(c.zoomTgt*zoomStep, minZoom, maxZoom) }
func (c *Camera) ZoomOut() { c.zoomTgt = clampf(c.zoomTgt/zoomStep, minZoom, maxZoom) }

// Zoom reports the current (animated) zoom factor.
func (c *Camera) Zoom() float64 { return c.zoom }

// Viewport is the lon/lat window currently visible: the dataset bounds
// shrunk by the zoom factor, centered on the camera.
func (c *Camera) Viewport() geo.BBox {
	z := c.zoom
	if z < 0.1 {
		z = 0.1
	}
	hw := c.bounds.Width() / z / 2
	hh := c.bounds.Height() / z / 2
	return geo.BBox{
		MinLon: c.lon - hw,
		MinLat: c.lat - hh,
		MaxLon: c.lon + hw,
		MaxLat: c.lat + hh,
	}
}

// scale returns sub-pixels per projected degree, letterboxed so the whole
// viewport fits. kx is the longitude shrink at the camera's latitude.
func (c *Camera) scale(subW, subH int) (scale, kx float64) {
	kx = math.Cos(c.lat * math.Pi / 180)
	if kx < minLatCosine {
		kx = minLatCosine
	}
	vp := c.Viewport()
	worldW := vp.Width() * kx
	worldH := vp.Height()
	if worldW < minViewportDim {
		worldW = minViewportDim
	}
	if worldH < minViewportDim {
		worldH = minViewportDim
	}
	scale = float64(subW) / worldW
	if s := float64(subH) / worldH; s < scale {
		scale = s
	}
	return scale, kx
}

// Project maps a lon/lat point into sub-pixel coordinates on a canvas of
// the given sub-pixel size. Latitude grows upward, rows grow downward, so
// the y axis flips.
func (c *Camera) Project(p geo.Point, subW, subH int) (float64, float64) {
	scale, kx := c.scale(subW, subH)
	x := float64(subW)/2 + (p.Lon-c.lon)*kx*scale
	y := float64(subH)/2 - (p.Lat-c.lat)*scale
	return x, y
}

// Unproject is the inverse of Project: sub-pixel coordinates back to
// lon/lat. Used to hit-test mouse positions against footprints.
func (c *Camera) Unproject(x, y float64, subW, subH int) geo.Point {
	scale, kx := c.scale(subW, subH)
	return geo.Point{
		Lon: c.lon + (x-float64(subW)/2)/(kx*scale),
		Lat: c.lat - (y-float64(subH)/2)/scale,
	}
}

// ProjectRing projects a lon/lat ring for rasterization.
func (c *Camera) ProjectRing(r geo.Ring, subW, subH int) geo.ScreenRing {
	out := make(geo.ScreenRing, len(r))
	for i, p := range r {
		x, y := c.Project(p, subW, subH)
		out[i] = [2]float64{x, y}
	}
	return out
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
