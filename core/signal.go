package core

import "sync/atomic"

// Input is a readable binary signal (sensor, button).
// Get reports whether the signal is asserted, after any polarity inversion.
type Input interface {
	Get() bool
}

// Output is a writable binary signal (valve, LED).
type Output interface {
	Set()
	Clear()
	// IsSet reports the last commanded level
	IsSet() bool
}

// PinSignal is a named GPIO pin used as an Input or an Output.
// ActiveLow inverts the electrical level, so Get/Set always speak in
// asserted/deasserted terms.
type PinSignal struct {
	Name      string
	Pin       GPIOPin
	ActiveLow bool

	driver GPIODriver
	level  uint32 // atomic, last commanded logical level
}

// NewInputSignal configures pin as a pulled-up input (active-low wiring) or a
// pulled-down input (active-high wiring).
func NewInputSignal(d GPIODriver, name string, pin GPIOPin, activeLow bool) (*PinSignal, error) {
	var err error
	if activeLow {
		err = d.ConfigureInputPullUp(pin)
	} else {
		err = d.ConfigureInputPullDown(pin)
	}
	if err != nil {
		return nil, err
	}
	return &PinSignal{Name: name, Pin: pin, ActiveLow: activeLow, driver: d}, nil
}

// NewOutputSignal configures pin as an output and drives it deasserted.
func NewOutputSignal(d GPIODriver, name string, pin GPIOPin, activeLow bool) (*PinSignal, error) {
	if err := d.ConfigureOutput(pin); err != nil {
		return nil, err
	}
	s := &PinSignal{Name: name, Pin: pin, ActiveLow: activeLow, driver: d}
	s.Clear()
	return s, nil
}

// Get returns true when the pin is at its active level.
func (s *PinSignal) Get() bool {
	return s.driver.ReadPin(s.Pin) != s.ActiveLow
}

// Set drives the pin to its active level.
func (s *PinSignal) Set() {
	_ = s.driver.SetPin(s.Pin, !s.ActiveLow)
	atomic.StoreUint32(&s.level, 1)
}

// Clear drives the pin to its inactive level.
func (s *PinSignal) Clear() {
	_ = s.driver.SetPin(s.Pin, s.ActiveLow)
	atomic.StoreUint32(&s.level, 0)
}

// IsSet returns the last commanded logical level.
func (s *PinSignal) IsSet() bool {
	return atomic.LoadUint32(&s.level) != 0
}

// Latch is an in-memory signal usable as both Input and Output.
// Simulators and tests drive sensors with it and observe actuators through it.
type Latch struct {
	v uint32 // atomic
}

// Get reports the latched level.
func (l *Latch) Get() bool { return atomic.LoadUint32(&l.v) != 0 }

// Set latches the signal high.
func (l *Latch) Set() { atomic.StoreUint32(&l.v, 1) }

// Clear latches the signal low.
func (l *Latch) Clear() { atomic.StoreUint32(&l.v, 0) }

// IsSet is the same as Get.
func (l *Latch) IsSet() bool { return l.Get() }

// Put stores an arbitrary level.
func (l *Latch) Put(v bool) {
	if v {
		l.Set()
	} else {
		l.Clear()
	}
}

// Toggle flips the latched level and returns the new one.
func (l *Latch) Toggle() bool {
	for {
		old := atomic.LoadUint32(&l.v)
		if atomic.CompareAndSwapUint32(&l.v, old, old^1) {
			return old == 0
		}
	}
}
