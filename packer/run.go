package packer

import "boxfill/core"

// handleRun advances the box cycle one step.
// Each step only moves on once the sensors confirm the commanded position.
func (c *Controller) handleRun(now uint32) {
	c.scr.line(1, c.lotLine())

	switch c.run {
	case RunWaiting:
		c.scr.line(0, "Waiting box")
		if c.io.Box.Get() {
			c.setRun(now, RunDetected)
		}

	case RunDetected:
		c.scr.line(0, "Box detected")
		c.actuate(&c.io.A, true)
		c.actuate(&c.io.B, true)
		if c.io.A.isClosed() && c.io.B.isClosed() {
			c.setRun(now, RunLoading)
		}

	case RunLoading:
		c.fill(now)

	case RunClosing:
		c.scr.line(0, "Closing disp.")
		c.actuate(&c.io.C, true)
		if c.io.C.isClosed() {
			c.setRun(now, RunReleasing)
		}

	case RunReleasing:
		c.scr.line(0, "Releasing box")
		c.actuate(&c.io.A, false)
		c.actuate(&c.io.B, false)
		if c.io.A.isOpen() && c.io.B.isOpen() {
			c.finishBox(now)
		}
	}
}

// fill opens the gate and holds it open for the fill delay
func (c *Controller) fill(now uint32) {
	if !c.filling {
		c.scr.line(0, "Loading box...")
		c.actuate(&c.io.C, false)
		if !c.io.C.isOpen() {
			return
		}
		c.filling = true
		c.fillStart = now
		c.scr.line(0, "Applying delay")
		return
	}

	if !core.Elapsed(c.fillStart, now, core.TimerFromMS(c.fillDelayMS)) {
		return
	}
	c.filling = false
	c.scr.line(0, "Box loaded")
	c.setRun(now, RunClosing)
}

// finishBox counts the released box. A full lot increments the lot number,
// resets the quantity and waits for START again.
func (c *Controller) finishBox(now uint32) {
	lotDone := c.lots.addBox()
	core.RecordEvent(core.EvtBoxDone, 0, now, uint32(c.lots.Number), uint32(c.lots.Quantity))
	c.setRun(now, RunWaiting)

	if lotDone {
		core.RecordEvent(core.EvtLotDone, 0, now, uint32(c.lots.Number-1), 0)
		core.DebugPrintln("packer: lot " + core.Utoa(uint32(c.lots.Number-1)) + " finished")
		c.setState(now, StateReady)
	}

	c.scr.line(1, c.lotLine())
	c.notify(now, 0, "Box finished", c.set.BoxFinishedMS)
	if lotDone {
		c.notify(now, 0, "Lot finished", c.set.LotFinishedMS)
		c.notify(now, 0, "Start next lot", c.set.NextLotMS)
	}
}

// lotLine is the second display row while producing, e.g. "Lot 01, box 02"
func (c *Controller) lotLine() string {
	return "Lot " + core.Pad2(uint32(c.lots.Number)) + ", box " + core.Pad2(uint32(c.lots.Quantity)+1)
}
