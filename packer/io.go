package packer

import (
	"errors"

	"boxfill/core"
)

// Cylinder is a pneumatic actuator with one drive output and two end-of-travel sensors.
// Driving the output closes the cylinder: A and B clamp the box, C shuts the dispenser gate.
type Cylinder struct {
	Drive  core.Output
	Open   core.Input // position 0 confirmed
	Closed core.Input // position 1 confirmed
}

func (c *Cylinder) isOpen() bool   { return c.Open.Get() }
func (c *Cylinder) isClosed() bool { return c.Closed.Get() }

// contradictory reports both end-of-travel sensors asserted at once
func (c *Cylinder) contradictory() bool {
	return c.Open.Get() && c.Closed.Get()
}

func (c *Cylinder) valid() bool {
	return c.Drive != nil && c.Open != nil && c.Closed != nil
}

// IO is every signal the controller touches.
// Reset is optional; without it ERROR only clears through Controller.Reset.
type IO struct {
	A Cylinder // clamp
	B Cylinder // guide
	C Cylinder // dispenser gate

	Box   core.Input // box presence sensor
	Up    core.Input
	Down  core.Input
	Enter core.Input
	Start core.Input
	EStop core.Input // level of the emergency stop button, held = asserted
	Reset core.Input
}

// ErrMissingSignal is returned by New when a required signal is nil
var ErrMissingSignal = errors.New("packer: missing required signal")

func (io *IO) validate() error {
	if !io.A.valid() || !io.B.valid() || !io.C.valid() {
		return ErrMissingSignal
	}
	if io.Box == nil || io.Up == nil || io.Down == nil || io.Enter == nil || io.Start == nil || io.EStop == nil {
		return ErrMissingSignal
	}
	return nil
}
