// Package packer implements the packaging machine controller: operator login,
// lot configuration, the box fill cycle and the safety supervision around it.
package packer

import (
	"errors"
	"sync/atomic"

	"boxfill/core"
)

// LotCounters tracks production. Quantity is the number of boxes finished in
// the current lot and never reaches Size.
type LotCounters struct {
	Size     uint8
	Quantity uint8
	Number   uint16
}

// addBox counts a finished box and rolls over to the next lot when the lot is full
func (l *LotCounters) addBox() (lotDone bool) {
	l.Quantity++
	if l.Quantity >= l.Size {
		l.Quantity = 0
		l.Number++
		return true
	}
	return false
}

// Status is a snapshot of the controller for host tools
type Status struct {
	State       MachineState
	Run         RunState
	Fault       Fault
	Lots        LotCounters
	FillDelayMS uint32
	Filling     bool // gate open and fill delay running
	Display     [core.LCDRows]string
}

// notice is a message held on the display for a fixed time
type notice struct {
	row   uint8
	text  string
	ticks uint32
}

// ErrNoDisplay is returned by New without a display
var ErrNoDisplay = errors.New("packer: display required")

// Controller runs the packaging machine. Step is called from the main loop;
// EmergencyStop, TogglePause and Reset may be called from interrupt context.
type Controller struct {
	io  IO
	scr *screen
	now func() uint32
	set Settings

	state MachineState
	run   RunState
	fault Fault

	lots        LotCounters
	fillDelayMS uint32

	up, down, enter, start, reset button

	pwd passwordEntry
	cfg configEntry

	// Fill dwell, shifted by the time spent paused
	filling    bool
	fillStart  uint32
	pausedAt   uint32
	lastPause  uint32
	pauseArmed bool

	notices     []notice
	noticeStart uint32

	// Set from interrupt context, consumed by Step
	estopLatched   uint32
	pauseRequested uint32
	resetRequested uint32
}

// New creates a controller in START. now defaults to core.GetTime.
func New(set Settings, io IO, display core.Display, now func() uint32) (*Controller, error) {
	if err := io.validate(); err != nil {
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if display == nil {
		return nil, ErrNoDisplay
	}
	if now == nil {
		now = core.GetTime
	}

	c := &Controller{
		io:          io,
		scr:         newScreen(display),
		now:         now,
		set:         set,
		state:       StateStart,
		run:         RunWaiting,
		lots:        LotCounters{Size: set.LotSize, Number: set.LotNumber},
		fillDelayMS: set.FillDelayMS,
		notices:     make([]notice, 0, 4),
	}
	c.up.in = io.Up
	c.down.in = io.Down
	c.enter.in = io.Enter
	c.start.in = io.Start
	c.reset.in = io.Reset
	c.pwd.clear()

	c.scr.clear()
	return c, nil
}

// EmergencyStop latches the stop and drives the fail-safe outputs at once.
// Safe to call from an interrupt handler.
func (c *Controller) EmergencyStop() {
	atomic.StoreUint32(&c.estopLatched, 1)
	c.failSafe()
}

// TogglePause requests RUN <-> PAUSE. Safe to call from an interrupt handler;
// requests outside RUN and PAUSE are ignored.
func (c *Controller) TogglePause() {
	atomic.StoreUint32(&c.pauseRequested, 1)
}

// Reset requests leaving ERROR. It is honored only once the emergency stop is
// released and the interlock is clear.
func (c *Controller) Reset() {
	atomic.StoreUint32(&c.resetRequested, 1)
}

// Step runs one loop iteration
func (c *Controller) Step() {
	now := c.now()
	k := c.pollKeys(now)

	if c.emergency(now) {
		return
	}
	if k.reset {
		atomic.StoreUint32(&c.resetRequested, 1)
	}
	c.applyReset(now)
	c.applyPause(now)

	if !c.holdingNotice(now) {
		switch c.state {
		case StateStart:
			c.handleStart(now)
		case StatePasswordEntry:
			c.handlePassword(now, k)
		case StateConfig:
			c.handleConfig(now, k)
		case StateReady:
			c.handleReady(now, k)
		case StateRun:
			c.handleRun(now)
		case StatePause:
			c.scr.line(0, "System paused..")
		case StateError:
			c.handleError()
		}
	}

	c.checkInterlock(now)
}

// Status returns a snapshot of the controller
func (c *Controller) Status() Status {
	return Status{
		State:       c.state,
		Run:         c.run,
		Fault:       c.fault,
		Lots:        c.lots,
		FillDelayMS: c.fillDelayMS,
		Filling:     c.filling,
		Display:     c.scr.snapshot(),
	}
}

// State returns the machine state
func (c *Controller) State() MachineState { return c.state }

// RunState returns the box cycle state
func (c *Controller) RunState() RunState { return c.run }

// Lots returns the production counters
func (c *Controller) Lots() LotCounters { return c.lots }

// FillDelayMS returns the current fill dwell
func (c *Controller) FillDelayMS() uint32 { return c.fillDelayMS }

func (c *Controller) pollKeys(now uint32) keys {
	d := core.TimerFromMS(c.set.DebounceMS)
	return keys{
		up:    c.up.poll(now, d),
		down:  c.down.poll(now, d),
		enter: c.enter.poll(now, d),
		start: c.start.poll(now, d),
		reset: c.reset.poll(now, d),
	}
}

// emergency handles a latched or held emergency stop. It returns true while
// the button is held, in which case nothing else runs this iteration.
func (c *Controller) emergency(now uint32) bool {
	latched := atomic.SwapUint32(&c.estopLatched, 0) != 0
	held := c.io.EStop.Get()
	if !latched && !held {
		return false
	}
	if held {
		// requests made while the button is held are dropped
		atomic.StoreUint32(&c.estopLatched, 1)
		atomic.StoreUint32(&c.resetRequested, 0)
		atomic.StoreUint32(&c.pauseRequested, 0)
	}

	if c.state != StateError || c.fault != FaultEmergencyStop {
		core.RecordEvent(core.EvtEmergencyStop, uint8(c.state), now, uint32(c.run), 0)
		c.enterError(now, FaultEmergencyStop)
	}
	c.handleError()
	return held
}

func (c *Controller) applyReset(now uint32) {
	if atomic.SwapUint32(&c.resetRequested, 0) == 0 || c.state != StateError {
		return
	}
	if c.io.EStop.Get() || c.interlockFault() != FaultNone {
		core.DebugPrintln("packer: reset refused")
		return
	}

	c.fault = FaultNone
	c.filling = false
	c.setRun(now, RunWaiting)
	c.scr.clear()
	c.setState(now, StateStart)
}

func (c *Controller) applyPause(now uint32) {
	if atomic.SwapUint32(&c.pauseRequested, 0) == 0 {
		return
	}
	if c.pauseArmed && !core.Elapsed(c.lastPause, now, core.TimerFromMS(c.set.PauseDebounceMS)) {
		return
	}
	c.pauseArmed = true
	c.lastPause = now

	switch c.state {
	case StateRun:
		c.pausedAt = now
		core.RecordEvent(core.EvtPause, 1, now, uint32(c.run), 0)
		c.setState(now, StatePause)
	case StatePause:
		if c.filling {
			c.fillStart += now - c.pausedAt
		}
		core.RecordEvent(core.EvtPause, 0, now, uint32(c.run), 0)
		c.setState(now, StateRun)
	}
}

// setState switches the machine state and drops pending notices
func (c *Controller) setState(now uint32, s MachineState) {
	if s == c.state {
		return
	}
	old := c.state
	c.state = s
	c.notices = c.notices[:0]
	core.RecordEvent(core.EvtMachineState, uint8(s), now, uint32(old), 0)
	core.DebugPrintln("packer: " + old.String() + " -> " + s.String())
}

func (c *Controller) setRun(now uint32, r RunState) {
	if r == c.run {
		return
	}
	old := c.run
	c.run = r
	core.RecordEvent(core.EvtRunState, uint8(r), now, uint32(old), 0)
}

func (c *Controller) enterError(now uint32, f Fault) {
	c.fault = f
	c.failSafe()
	c.setState(now, StateError)
}

// notify queues a timed message. The state handler does not run until
// every queued message has been shown for its duration.
func (c *Controller) notify(now uint32, row uint8, text string, ms uint32) {
	c.notices = append(c.notices, notice{row: row, text: text, ticks: core.TimerFromMS(ms)})
	if len(c.notices) == 1 {
		c.noticeStart = now
		c.scr.line(row, text)
	}
}

func (c *Controller) holdingNotice(now uint32) bool {
	for len(c.notices) > 0 {
		if !core.Elapsed(c.noticeStart, now, c.notices[0].ticks) {
			return true
		}
		c.notices = c.notices[1:]
		if len(c.notices) > 0 {
			c.noticeStart = now
			c.scr.line(c.notices[0].row, c.notices[0].text)
		}
	}
	return false
}

// actuate drives a cylinder unless an emergency stop is latched.
// The latch check and the pin write run with interrupts off; a stop that
// still lands around the write is answered by restoring the rest outputs.
func (c *Controller) actuate(cyl *Cylinder, close bool) {
	core.Critical(func() {
		if atomic.LoadUint32(&c.estopLatched) != 0 {
			return
		}
		if close {
			cyl.Drive.Set()
		} else {
			cyl.Drive.Clear()
		}
	})
	if atomic.LoadUint32(&c.estopLatched) != 0 {
		c.failSafe()
	}
}

func (c *Controller) handleStart(now uint32) {
	c.actuate(&c.io.A, false)
	c.actuate(&c.io.B, false)
	c.actuate(&c.io.C, true)
	c.scr.line(0, "Wait start pos.")
	c.scr.line(1, "")

	if c.io.A.isOpen() && c.io.B.isOpen() && c.io.C.isClosed() {
		c.pwd.clear()
		c.scr.clear()
		c.setState(now, StatePasswordEntry)
	}
}

func (c *Controller) handleReady(now uint32, k keys) {
	c.scr.line(0, "Ready press STR")
	c.scr.line(1, c.lotLine())
	if k.start {
		c.setRun(now, RunWaiting)
		c.setState(now, StateRun)
	}
}

func (c *Controller) handleError() {
	c.failSafe()
	c.scr.line(0, "SYSTEM ERROR")
	c.scr.line(1, c.fault.String())
}
