package packer

import "boxfill/core"

// interlockFault inspects the sensors for physically impossible combinations:
// a cylinder confirming both ends of travel, or the guide released while the
// dispenser gate is open.
func (c *Controller) interlockFault() Fault {
	switch {
	case c.io.A.contradictory():
		return FaultSensorA
	case c.io.B.contradictory():
		return FaultSensorB
	case c.io.C.contradictory():
		return FaultSensorC
	case c.io.B.isOpen() && c.io.C.isOpen():
		return FaultGateLeak
	}
	return FaultNone
}

// checkInterlock runs every iteration, whatever the state.
// The first fault is kept while the machine stays in ERROR.
func (c *Controller) checkInterlock(now uint32) {
	f := c.interlockFault()
	if f == FaultNone || c.state == StateError {
		return
	}

	core.RecordEvent(core.EvtInterlock, uint8(f), now, uint32(c.state), uint32(c.run))
	core.DebugPrintln("packer: interlock " + f.String())
	c.enterError(now, f)
}

// failSafe drives the rest configuration: clamps released, gate closed.
// It bypasses the emergency-stop guard on purpose and is safe from interrupt context.
func (c *Controller) failSafe() {
	c.io.A.Drive.Clear()
	c.io.B.Drive.Clear()
	c.io.C.Drive.Set()
}
