package anim

// Debouncer coalesces a noisy pointer stream into serialized lookups: at
// most one lookup runs at a time, and while one is in flight newer
// submissions overwrite the single queued slot. Only the most recent input
// is ever dispatched next; results a newer submission has superseded are
// reported stale so the caller drops them. Not safe for concurrent use: it
// lives on the UI update loop.
type Debouncer struct {
	inFlight bool
	queued   *Lookup
	lastSeq  uint64
}

// Lookup is one pointer position awaiting a hit-test.
type Lookup struct {
	X, Y int
	Seq  uint64
}

// Submit records pointer coordinates. It returns the lookup to dispatch
// now, or ok=false when one is already in flight and the coordinates were
// queued, replacing any older queued candidate.
func (d *Debouncer) Submit(x, y int) (Lookup, bool) {
	d.lastSeq++
	l := Lookup{X: x, Y: y, Seq: d.lastSeq}
	if d.inFlight {
		d.queued = &l
		return Lookup{}, false
	}
	d.inFlight = true
	return l, true
}

// Finish marks the in-flight lookup complete. If a newer submission is
// queued it becomes the next in-flight lookup and is returned for
// dispatch.
func (d *Debouncer) Finish() (Lookup, bool) {
	if d.queued != nil {
		l := *d.queued
		d.queued = nil
		return l, true
	}
	d.inFlight = false
	return Lookup{}, false
}

// Stale reports whether a completed lookup has been superseded by a newer
// submission.
func (d *Debouncer) Stale(l Lookup) bool {
	return l.Seq != d.lastSeq
}
