package packer

import (
	"strings"
	"testing"

	"boxfill/core"
	"boxfill/lcd"
)

const msTicks = core.TimerFreq / 1000

// rig wires a controller to latched signals, an in-memory display and a
// manual clock. With physics on, each cylinder follows its drive output
// right after every step.
type rig struct {
	t       *testing.T
	now     uint32
	c       *Controller
	lcd     *lcd.Buffer
	physics bool

	aDrive, bDrive, cDrive core.Latch

	aOpen, aClosed core.Latch
	bOpen, bClosed core.Latch
	cOpen, cClosed core.Latch

	box, up, down, enter, start, estop, reset core.Latch
}

func newRig(t *testing.T, set Settings) *rig {
	t.Helper()
	r := &rig{t: t, lcd: lcd.NewBuffer(), physics: true}

	// home position
	r.aOpen.Set()
	r.bOpen.Set()
	r.cClosed.Set()
	r.cDrive.Set()

	io := IO{
		A:     Cylinder{Drive: &r.aDrive, Open: &r.aOpen, Closed: &r.aClosed},
		B:     Cylinder{Drive: &r.bDrive, Open: &r.bOpen, Closed: &r.bClosed},
		C:     Cylinder{Drive: &r.cDrive, Open: &r.cOpen, Closed: &r.cClosed},
		Box:   &r.box,
		Up:    &r.up,
		Down:  &r.down,
		Enter: &r.enter,
		Start: &r.start,
		EStop: &r.estop,
		Reset: &r.reset,
	}
	c, err := New(set, io, r.lcd, func() uint32 { return r.now })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r.c = c
	return r
}

func follow(drive, open, closed *core.Latch) {
	closed.Put(drive.IsSet())
	open.Put(!drive.IsSet())
}

func (r *rig) step() {
	r.now += msTicks
	r.c.Step()
	if r.physics {
		follow(&r.aDrive, &r.aOpen, &r.aClosed)
		follow(&r.bDrive, &r.bOpen, &r.bClosed)
		follow(&r.cDrive, &r.cOpen, &r.cClosed)
	}
}

// run steps the loop once per millisecond
func (r *rig) run(ms int) {
	for i := 0; i < ms; i++ {
		r.step()
	}
}

func (r *rig) runUntil(ms int, cond func() bool) bool {
	for i := 0; i < ms; i++ {
		if cond() {
			return true
		}
		r.step()
	}
	return cond()
}

// press holds a button past the debounce window and releases it
func (r *rig) press(b *core.Latch) {
	b.Set()
	r.run(60)
	b.Clear()
	r.run(60)
}

func (r *rig) line(row uint8) string {
	return strings.TrimRight(r.lcd.Line(row), " ")
}

func (r *rig) expectState(s MachineState) {
	r.t.Helper()
	if got := r.c.State(); got != s {
		r.t.Fatalf("Expected state %s, got %s (display %q / %q)", s, got, r.line(0), r.line(1))
	}
}

// login enters the default password and waits out the CONFIG banner
func (r *rig) login() {
	r.t.Helper()
	r.run(1)
	r.expectState(StatePasswordEntry)
	r.press(&r.up)
	for i := 0; i < PasswordLen; i++ {
		r.press(&r.enter)
	}
	r.expectState(StateConfig)
	r.run(600)
}

// toReady logs in and accepts the offered lot size and delay
func (r *rig) toReady() {
	r.t.Helper()
	r.login()
	r.press(&r.enter)
	r.press(&r.enter)
	r.expectState(StateReady)
}

// packBox presents a box and runs until it has been counted
func (r *rig) packBox() {
	r.t.Helper()
	before := r.c.Lots()
	r.box.Set()
	if !r.runUntil(10000, func() bool { return r.c.Lots() != before }) {
		r.t.Fatalf("Box was not counted, run state %s", r.c.RunState())
	}
	r.box.Clear()
}

func (r *rig) expectFailSafe() {
	r.t.Helper()
	if r.aDrive.IsSet() || r.bDrive.IsSet() || !r.cDrive.IsSet() {
		r.t.Errorf("Expected fail-safe outputs (A, B released, C closed), got A=%v B=%v C=%v",
			r.aDrive.IsSet(), r.bDrive.IsSet(), r.cDrive.IsSet())
	}
}
