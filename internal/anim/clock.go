package anim

import "time"

// FrameClock hands out paint-frame edges. The driver aligns every year
// update with the next frame so restyling lands on a redraw boundary
// instead of between two repaints.
type FrameClock interface {
	Frame() <-chan time.Time
}

// RefreshClock ticks at the terminal refresh cadence.
type RefreshClock struct {
	ticker *time.Ticker
}

// NewRefreshClock builds a clock ticking rate times per second. Rates at or
// below zero fall back to 60.
func NewRefreshClock(rate int) *RefreshClock {
	if rate <= 0 {
		rate = 60
	}
	return &RefreshClock{ticker: time.NewTicker(time.Second / time.Duration(rate))}
}

func (c *RefreshClock) Frame() <-chan time.Time { return c.ticker.C }

// Stop releases the underlying ticker.
func (c *RefreshClock) Stop() { c.ticker.Stop() }

// ManualClock releases a frame only when told to. Tests drive the animation
// deterministically with it.
type ManualClock struct {
	ch chan time.Time
}

func NewManualClock() *ManualClock {
	return &ManualClock{ch: make(chan time.Time, 1)}
}

func (c *ManualClock) Frame() <-chan time.Time { return c.ch }

// Advance releases one frame edge. The single-slot buffer lets a test
// advance before the driver reaches its frame wait.
func (c *ManualClock) Advance() { c.ch <- time.Now() }
