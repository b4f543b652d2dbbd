package packer

import "boxfill/core"

// button turns a level input into debounced press events
type button struct {
	in      core.Input
	held    bool
	changed uint32
	primed  bool
}

// poll returns true once per press, on the asserted edge.
// Level changes within debounce ticks of the last accepted change are ignored,
// and a button already held on the first poll does not count as a press.
func (b *button) poll(now, debounce uint32) bool {
	if b.in == nil {
		return false
	}

	level := b.in.Get()
	if !b.primed {
		b.primed = true
		b.held = level
		b.changed = now
		return false
	}

	if level == b.held || !core.Elapsed(b.changed, now, debounce) {
		return false
	}

	b.held = level
	b.changed = now
	return level
}

// keys is the set of presses seen in one loop iteration
type keys struct {
	up, down, enter, start, reset bool
}

// navigation returns the single up/down/enter action of this iteration.
// Up wins over down, down over enter.
func (k keys) navigation() (up, down, enter bool) {
	switch {
	case k.up:
		return true, false, false
	case k.down:
		return false, true, false
	case k.enter:
		return false, false, true
	}
	return false, false, false
}
