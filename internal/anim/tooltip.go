package anim

import "math"

// easeFactor is the fraction of the remaining distance covered per frame;
// snapRadius is the per-axis gap below which the glide ends exactly on
// target.
const (
	easeFactor = 0.1
	snapRadius = 1.0
)

// Tooltip glides a small label toward wherever the pointer last hit. Show
// on a hidden tooltip snaps it into place; Show while visible only
// retargets it, and Tick eases the position frame by frame until it
// converges. Not safe for concurrent use: it lives on the UI update loop.
type Tooltip struct {
	x, y             float64
	targetX, targetY float64
	text             string
	visible          bool
}

func NewTooltip() *Tooltip {
	return &Tooltip{}
}

// Show places or retargets the tooltip. A hidden tooltip jumps straight to
// the point; a visible one keeps its current position and glides. Text is
// replaced immediately either way.
func (t *Tooltip) Show(x, y float64, text string) {
	t.targetX, t.targetY = x, y
	t.text = text
	if !t.visible {
		t.x, t.y = x, y
		t.visible = true
	}
}

// Hide fades the tooltip out. Position and text are retained so a later
// Show resumes from the same spot.
func (t *Tooltip) Hide() {
	t.visible = false
}

// Tick advances the glide one frame: the tooltip covers a tenth of the
// remaining distance on each axis, then snaps exactly onto the target once
// both gaps drop under one pixel. It reports whether another frame is
// needed.
func (t *Tooltip) Tick() bool {
	t.x += (t.targetX - t.x) * easeFactor
	t.y += (t.targetY - t.y) * easeFactor
	if math.Abs(t.targetX-t.x) < snapRadius && math.Abs(t.targetY-t.y) < snapRadius {
		t.x, t.y = t.targetX, t.targetY
		return false
	}
	return true
}

// Position returns the glide position rounded to whole pixels, ready to
// apply as a screen translation.
func (t *Tooltip) Position() (int, int) {
	return int(math.Round(t.x)), int(math.Round(t.y))
}

func (t *Tooltip) Visible() bool { return t.visible }
func (t *Tooltip) Text() string  { return t.text }
