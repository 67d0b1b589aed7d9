// Package anim drives the time dimension of the map: a recurring-timer
// animation over the display year, the eased tooltip glide, and the
// debounced hover lookups. Everything here is a small state machine; the
// surrounding UI owns the drawing.
package anim

import (
	"sync"
	"time"
)

// Animation cadence and year arithmetic. The display year advances half a
// year per tick at roughly seven ticks per second, wrapping back to 1880
// once it passes 2017.
const (
	Step         = 0.5
	WrapMin      = 1880.0
	WrapMax      = 2017.0
	TickInterval = time.Second / 7
)

// NextValue advances the display year one animation step, wrapping back to
// WrapMin once the result passes WrapMax. A value landing exactly on
// WrapMax holds for one more tick before wrapping.
func NextValue(v float64) float64 {
	v += Step
	if v > WrapMax {
		return WrapMin
	}
	return v
}

// Token is the cancellation flag shared between a Handle and its animation
// goroutine. Each scheduled step checks the token before firing, so a stop
// takes effect within at most one further callback.
type Token struct {
	once sync.Once
	done chan struct{}
}

func newToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Cancel trips the token. Idempotent.
func (t *Token) Cancel() {
	t.once.Do(func() { close(t.done) })
}

// Cancelled reports whether Cancel has been called.
func (t *Token) Cancelled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Done closes when the token is cancelled.
func (t *Token) Done() <-chan struct{} { return t.done }

// Driver owns the animation cadence. Each Start spawns one goroutine that
// repeatedly waits out the tick interval, aligns with the next frame edge,
// advances the year and fires the callback.
type Driver struct {
	interval time.Duration
	clock    FrameClock
}

// New builds a driver with an explicit cadence. Tests inject a short
// interval and a ManualClock.
func New(interval time.Duration, clock FrameClock) *Driver {
	return &Driver{interval: interval, clock: clock}
}

// Default returns the production driver: about seven updates per second
// aligned to a 60Hz refresh clock.
func Default() *Driver {
	return New(TickInterval, NewRefreshClock(60))
}

// Start begins advancing from initial, reporting each new value to fn. fn
// runs on the driver goroutine and must not block; the UI bridges it into
// its update loop with a non-blocking send and drops frames under pressure.
// One animation per driver: callers stop the previous handle before
// starting another.
func (d *Driver) Start(initial float64, fn func(float64)) *Handle {
	h := &Handle{token: newToken(), done: make(chan struct{})}
	go h.run(d, initial, fn)
	return h
}

// Handle controls one running animation.
type Handle struct {
	token *Token
	done  chan struct{}
}

func (h *Handle) run(d *Driver, value float64, fn func(float64)) {
	defer close(h.done)

	timer := time.NewTimer(d.interval)
	defer timer.Stop()

	for {
		select {
		case <-h.token.Done():
			return
		case <-timer.C:
		}

		select {
		case <-h.token.Done():
			return
		case <-d.clock.Frame():
		}

		if h.token.Cancelled() {
			return
		}
		value = NextValue(value)
		fn(value)
		timer.Reset(d.interval)
	}
}

// Stop cancels the animation. Idempotent and non-blocking; a step already
// past its cancellation check may still deliver one final callback.
func (h *Handle) Stop() { h.token.Cancel() }

// Done closes once the animation goroutine has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Running reports whether the animation has not been stopped yet.
func (h *Handle) Running() bool { return !h.token.Cancelled() }
