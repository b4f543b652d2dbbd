package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"boxfill/core"
	"boxfill/packer"
	"boxfill/wavegen"
)

// MaxPin is the highest user GPIO on the RP2040
const MaxPin = 29

var (
	ErrBadPin       = errors.New("config: bad pin name")
	ErrDuplicatePin = errors.New("config: pin used twice")
)

// ParsePin converts "gpioN" into a pin number
func ParsePin(name string) (core.GPIOPin, error) {
	num, ok := strings.CutPrefix(strings.ToLower(name), "gpio")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadPin, name)
	}
	n, err := strconv.ParseUint(num, 10, 8)
	if err != nil || n > MaxPin {
		return 0, fmt.Errorf("%w: %q", ErrBadPin, name)
	}
	return core.GPIOPin(n), nil
}

// pinSet detects pins assigned to more than one role
type pinSet map[core.GPIOPin]string

func (s pinSet) add(role, name string) error {
	pin, err := ParsePin(name)
	if err != nil {
		return fmt.Errorf("%s: %w", role, err)
	}
	if other, ok := s[pin]; ok {
		return fmt.Errorf("%w: %s and %s on %s", ErrDuplicatePin, other, role, name)
	}
	s[pin] = role
	return nil
}

// Validate checks parameter ranges and the pin map
func (c *MachineConfig) Validate() error {
	set := c.Settings()
	if err := set.Validate(); err != nil {
		return err
	}

	pins := pinSet{}
	for _, name := range []string{"a", "b", "c"} {
		cyl, ok := c.Cylinders[name]
		if !ok {
			return fmt.Errorf("config: cylinder %q missing", name)
		}
		if err := pins.add("cylinder "+name+" drive", cyl.Drive.Pin); err != nil {
			return err
		}
		if err := pins.add("cylinder "+name+" open", cyl.Open.Pin); err != nil {
			return err
		}
		if err := pins.add("cylinder "+name+" closed", cyl.Closed.Pin); err != nil {
			return err
		}
	}

	signals := []struct {
		role string
		sig  SignalConfig
	}{
		{"box", c.Box},
		{"up", c.Up},
		{"down", c.Down},
		{"enter", c.Enter},
		{"start", c.Start},
		{"estop", c.EStop},
		{"pause", c.Pause},
	}
	if c.Reset.Pin != "" {
		signals = append(signals, struct {
			role string
			sig  SignalConfig
		}{"reset", c.Reset})
	}
	for _, s := range signals {
		if err := pins.add(s.role, s.sig.Pin); err != nil {
			return err
		}
	}

	for i, d := range c.LCD.Data {
		if err := pins.add("lcd d"+strconv.Itoa(4+i), d); err != nil {
			return err
		}
	}
	if err := pins.add("lcd enable", c.LCD.Enable); err != nil {
		return err
	}
	return pins.add("lcd rs", c.LCD.RS)
}

// Validate checks the generator parameters and pin map
func (c *GeneratorConfig) Validate() error {
	if len(c.Wave) != 1 {
		return fmt.Errorf("config: wave %q: %w", c.Wave, wavegen.ErrBadWave)
	}
	if _, err := wavegen.ParseWaveType(c.Wave[0]); err != nil {
		return fmt.Errorf("config: wave %q: %w", c.Wave, err)
	}
	if c.Frequency < wavegen.MinFrequency || c.Frequency > wavegen.MaxFrequency {
		return fmt.Errorf("config: frequency %d outside %d..%d Hz",
			c.Frequency, wavegen.MinFrequency, wavegen.MaxFrequency)
	}
	if c.PIO > 1 {
		return fmt.Errorf("config: pio %d, want 0 or 1", c.PIO)
	}
	if c.Baud == 0 {
		return errors.New("config: baud rate required")
	}

	base, err := ParsePin(c.DACBasePin)
	if err != nil {
		return fmt.Errorf("dac: %w", err)
	}
	if base+7 > MaxPin {
		return fmt.Errorf("config: dac pins %s+7 beyond gpio%d", c.DACBasePin, MaxPin)
	}

	pins := pinSet{}
	for i := core.GPIOPin(0); i < 8; i++ {
		pins[base+i] = "dac bit " + strconv.Itoa(int(i))
	}
	for _, p := range []struct{ role, name string }{
		{"uart tx", c.UARTTX},
		{"uart rx", c.UARTRX},
		{"led on", c.LEDOn.Pin},
		{"led run", c.LEDRun.Pin},
		{"led err", c.LEDErr.Pin},
	} {
		if err := pins.add(p.role, p.name); err != nil {
			return err
		}
	}
	return nil
}

// Wiring is the packer signal set built from a machine description
type Wiring struct {
	IO    packer.IO
	EStop *core.PinSignal
	Pause *core.PinSignal
}

// Wire configures every machine pin on d and returns the controller signals.
// The caller attaches EStop and Pause to pin interrupts.
func (c *MachineConfig) Wire(d core.GPIODriver) (*Wiring, error) {
	var w Wiring
	var err error

	in := func(role string, s SignalConfig) *core.PinSignal {
		if err != nil {
			return nil
		}
		var pin core.GPIOPin
		if pin, err = ParsePin(s.Pin); err != nil {
			return nil
		}
		var sig *core.PinSignal
		sig, err = core.NewInputSignal(d, role, pin, !s.Invert)
		return sig
	}
	out := func(role string, s SignalConfig) *core.PinSignal {
		if err != nil {
			return nil
		}
		var pin core.GPIOPin
		if pin, err = ParsePin(s.Pin); err != nil {
			return nil
		}
		var sig *core.PinSignal
		sig, err = core.NewOutputSignal(d, role, pin, s.Invert)
		return sig
	}
	cylinder := func(name string) packer.Cylinder {
		cc := c.Cylinders[name]
		return packer.Cylinder{
			Drive:  out(name+".drive", cc.Drive),
			Open:   in(name+".open", cc.Open),
			Closed: in(name+".closed", cc.Closed),
		}
	}

	w.IO.A = cylinder("a")
	w.IO.B = cylinder("b")
	w.IO.C = cylinder("c")
	w.IO.Box = in("box", c.Box)
	w.IO.Up = in("up", c.Up)
	w.IO.Down = in("down", c.Down)
	w.IO.Enter = in("enter", c.Enter)
	w.IO.Start = in("start", c.Start)
	w.EStop = in("estop", c.EStop)
	w.Pause = in("pause", c.Pause)
	w.IO.EStop = w.EStop
	if c.Reset.Pin != "" {
		w.IO.Reset = in("reset", c.Reset)
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
