package viz

import (
	"math"
	"testing"

	"github.com/san-kum/agemap/internal/geo"
)

func testBounds() geo.BBox {
	return geo.BBox{MinLon: 13.0, MinLat: 52.0, MaxLon: 13.2, MaxLat: 52.1}
}

func TestCameraStartsCentered(t *testing.T) {
	cam := NewCamera(testBounds())

	x, y := cam.Project(cam.Viewport().Center(), 160, 96)
	if math.Abs(x-80) > 1e-6 || math.Abs(y-48) > 1e-6 {
		t.Errorf("dataset center should project to the canvas center, got (%v, %v)", x, y)
	}
	if cam.Zoom() != 1 {
		t.Errorf("initial zoom = %v, want 1", cam.Zoom())
	}
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	cam := NewCamera(testBounds())
	cam.ZoomIn()
	cam.Pan(0.1, -0.05)
	for i := 0; i < 120; i++ {
		cam.Tick()
	}

	points := []geo.Point{
		{Lon: 13.05, Lat: 52.02},
		{Lon: 13.15, Lat: 52.09},
		{Lon: 13.1, Lat: 52.05},
	}
	for _, p := range points {
		x, y := cam.Project(p, 160, 96)
		back := cam.Unproject(x, y, 160, 96)
		if math.Abs(back.Lon-p.Lon) > 1e-9 || math.Abs(back.Lat-p.Lat) > 1e-9 {
			t.Errorf("round trip of %v came back as %v", p, back)
		}
	}
}

func TestProjectFlipsLatitude(t *testing.T) {
	cam := NewCamera(testBounds())

	c := cam.Viewport().Center()
	north := geo.Point{Lon: c.Lon, Lat: c.Lat + 0.01}
	_, y := cam.Project(north, 160, 96)
	if y >= 48 {
		t.Errorf("a point north of center should land above the middle row, got y=%v", y)
	}
}

func TestSpringsSettleOnTarget(t *testing.T) {
	cam := NewCamera(testBounds())
	cam.ZoomIn()
	cam.ZoomIn()

	// Ten seconds of frames at the camera's 60Hz cadence.
	for i := 0; i < 600; i++ {
		cam.Tick()
	}
	want := zoomStep * zoomStep
	if math.Abs(cam.Zoom()-want) > 1e-3 {
		t.Errorf("zoom settled at %v, want %v", cam.Zoom(), want)
	}

	cam.Pan(0.25, 0)
	for i := 0; i < 600; i++ {
		cam.Tick()
	}
	if math.Abs(cam.lon-cam.lonTgt) > 1e-6 {
		t.Errorf("pan never settled: at %v, target %v", cam.lon, cam.lonTgt)
	}
}

func TestZoomClamps(t *testing.T) {
	cam := NewCamera(testBounds())

	for i := 0; i < 50; i++ {
		cam.ZoomIn()
	}
	if cam.zoomTgt > maxZoom {
		t.Errorf("zoom target %v exceeds max %v", cam.zoomTgt, maxZoom)
	}

	for i := 0; i < 50; i++ {
		cam.ZoomOut()
	}
	if cam.zoomTgt < minZoom {
		t.Errorf("zoom target %v below min %v", cam.zoomTgt, minZoom)
	}
}

func TestPanStaysInsideBounds(t *testing.T) {
	cam := NewCamera(testBounds())

	for i := 0; i < 20; i++ {
		cam.Pan(1, 1)
	}
	if cam.lonTgt > cam.bounds.MaxLon || cam.latTgt > cam.bounds.MaxLat {
		t.Errorf("pan target (%v, %v) escaped the padded bounds", cam.lonTgt, cam.latTgt)
	}
}

func TestViewportShrinksWithZoom(t *testing.T) {
	cam := NewCamera(testBounds())
	wide := cam.Viewport()

	cam.ZoomIn()
	for i := 0; i < 600; i++ {
		cam.Tick()
	}
	tight := cam.Viewport()

	if tight.Width() >= wide.Width() || tight.Height() >= wide.Height() {
		t.Errorf("zooming in should shrink the viewport: %v -> %v", wide, tight)
	}
}

func TestResetGlidesHome(t *testing.T) {
	cam := NewCamera(testBounds())
	cam.ZoomIn()
	cam.Pan(0.3, 0.3)
	for i := 0; i < 600; i++ {
		cam.Tick()
	}

	cam.Reset()
	for i := 0; i < 600; i++ {
		cam.Tick()
	}

	home := cam.bounds.Center()
	if math.Abs(cam.lon-home.Lon) > 1e-6 || math.Abs(cam.lat-home.Lat) > 1e-6 {
		t.Errorf("reset should return to (%v, %v), got (%v, %v)", home.Lon, home.Lat, cam.lon, cam.lat)
	}
	if math.Abs(cam.Zoom()-1) > 1e-3 {
		t.Errorf("reset should return to zoom 1, got %v", cam.Zoom())
	}
}
