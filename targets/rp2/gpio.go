//go:build rp2040 || rp2350

// Package rp2 holds the RP2040/RP2350 board support shared by the firmware targets:
// GPIO, the microsecond clock, pin interrupts, debug output and the packer loop.
package rp2

import (
	"machine"

	"boxfill/core"
)

// GPIODriver implements core.GPIODriver on the RP2 pins
type GPIODriver struct {
	// Track configured pins to prevent conflicts
	configuredPins map[core.GPIOPin]machine.Pin
}

// NewGPIODriver creates a new RP2040 GPIO driver
func NewGPIODriver() *GPIODriver {
	return &GPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

// ConfigureOutput configures a pin as a digital output
func (d *GPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinOutput)
}

// ConfigureInputPullUp configures a pin as an input with pull-up (active-low wiring)
func (d *GPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInputPullup)
}

// ConfigureInputPullDown configures a pin as an input with pull-down (active-high wiring)
func (d *GPIODriver) ConfigureInputPullDown(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInputPulldown)
}

func (d *GPIODriver) configure(pin core.GPIOPin, mode machine.PinMode) error {
	if pin > MaxPin {
		return ErrBadPin
	}
	if _, exists := d.configuredPins[pin]; exists {
		return ErrPinInUse
	}

	// GPIO numbers map directly onto machine.Pin
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: mode})
	d.configuredPins[pin] = machinePin
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *GPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		return ErrNotConfigured
	}
	machinePin.Set(value)
	return nil
}

// GetPin reads the current pin level
func (d *GPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		return false, ErrNotConfigured
	}
	return machinePin.Get(), nil
}

// ReadPin is GetPin without the error, unconfigured pins read low
func (d *GPIODriver) ReadPin(pin core.GPIOPin) bool {
	value, _ := d.GetPin(pin)
	return value
}

// OnAssert calls fn from interrupt context on the edge where sig becomes asserted
func OnAssert(sig *core.PinSignal, fn func()) error {
	change := machine.PinRising
	if sig.ActiveLow {
		change = machine.PinFalling
	}
	return machine.Pin(sig.Pin).SetInterrupt(change, func(machine.Pin) {
		fn()
	})
}
