// Package sim runs the packaging controller against a simulated machine:
// cylinders with travel time, a box conveyor, buttons and an in-memory LCD.
package sim

import (
	"github.com/golang/glog"

	"boxfill/core"
	"boxfill/lcd"
	"boxfill/packer"
)

const msTicks = core.TimerFreq / 1000

// Button is an operator push button
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonEnter
	ButtonStart
	ButtonReset
	numButtons
)

var buttonNames = [numButtons]string{"UP", "DOWN", "ENTER", "START", "RESET"}

func (b Button) String() string {
	if b < 0 || b >= numButtons {
		return "?"
	}
	return buttonNames[b]
}

// Timing of the simulated operator and conveyor
const (
	PressMS         = 80  // how long a button press is held
	DefaultTravelMS = 300 // cylinder stroke time
	DefaultFeedMS   = 1500
	minTravelMS     = 1
)

// cylinder moves one millisecond per step toward the side its drive selects.
// A jammed cylinder keeps reporting open, so it reads open and closed at once
// when driven home.
type cylinder struct {
	name         string
	drive        core.Latch
	open, closed core.Latch
	pos          uint32 // 0 = open, travel = closed
	jammed       bool
}

func (c *cylinder) move(travel uint32) {
	if c.drive.IsSet() {
		if c.pos < travel {
			c.pos++
		}
	} else if c.pos > 0 {
		c.pos--
	}
	c.open.Put(c.pos == 0 || c.jammed)
	c.closed.Put(c.pos == travel)
}

// CylinderView is the visible state of one cylinder
type CylinderView struct {
	Name   string
	Drive  bool // driven closed
	Open   bool
	Closed bool
	Travel float64 // 0 open .. 1 closed
	Jammed bool
}

// Machine is the simulated plant with the real controller in the loop
type Machine struct {
	cyl     [3]cylinder
	box     core.Latch
	estop   core.Latch
	buttons [numButtons]core.Latch
	release [numButtons]uint32

	display *lcd.Buffer
	ctrl    *packer.Controller

	now      uint32
	elapsed  uint64 // ms
	travelMS uint32

	// AutoFeed puts a new box on the conveyor FeedMS after the last one left
	AutoFeed bool
	FeedMS   uint32
	feedWait uint32

	lastLots packer.LotCounters
	packed   int
}

// NewMachine builds a machine at its home position: A and B open, C closed
func NewMachine(set packer.Settings, travelMS uint32) (*Machine, error) {
	if travelMS < minTravelMS {
		travelMS = minTravelMS
	}
	m := &Machine{
		display:  lcd.NewBuffer(),
		travelMS: travelMS,
		FeedMS:   DefaultFeedMS,
	}
	for i, name := range []string{"A", "B", "C"} {
		m.cyl[i].name = name
	}
	m.cyl[2].drive.Set()
	m.cyl[2].pos = travelMS
	m.settle()

	io := packer.IO{
		A:     m.cylinderIO(0),
		B:     m.cylinderIO(1),
		C:     m.cylinderIO(2),
		Box:   &m.box,
		Up:    &m.buttons[ButtonUp],
		Down:  &m.buttons[ButtonDown],
		Enter: &m.buttons[ButtonEnter],
		Start: &m.buttons[ButtonStart],
		EStop: &m.estop,
		Reset: &m.buttons[ButtonReset],
	}
	ctrl, err := packer.New(set, io, m.display, func() uint32 { return m.now })
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	m.lastLots = ctrl.Lots()
	return m, nil
}

func (m *Machine) cylinderIO(i int) packer.Cylinder {
	c := &m.cyl[i]
	return packer.Cylinder{Drive: &c.drive, Open: &c.open, Closed: &c.closed}
}

func (m *Machine) settle() {
	for i := range m.cyl {
		m.cyl[i].move(m.travelMS)
	}
}

// Advance runs the control loop once per simulated millisecond
func (m *Machine) Advance(ms uint32) {
	for i := uint32(0); i < ms; i++ {
		m.step()
	}
}

func (m *Machine) step() {
	m.now += msTicks
	m.elapsed++
	m.ctrl.Step()
	m.settle()

	for b := range m.release {
		if m.release[b] == 0 {
			continue
		}
		m.release[b]--
		if m.release[b] == 0 {
			m.buttons[b].Clear()
		}
	}

	// a counted box leaves on the conveyor
	if lots := m.ctrl.Lots(); lots != m.lastLots {
		m.lastLots = lots
		m.packed++
		m.box.Clear()
		m.feedWait = 0
		glog.V(1).Infof("sim: box %d out, lot %d quantity %d", m.packed, lots.Number, lots.Quantity)
	}

	if m.AutoFeed && !m.box.IsSet() {
		m.feedWait++
		if m.feedWait >= m.FeedMS {
			m.feedWait = 0
			m.box.Set()
			glog.V(1).Info("sim: box in")
		}
	}
}

// Press holds a button for PressMS
func (m *Machine) Press(b Button) {
	if b < 0 || b >= numButtons {
		return
	}
	m.buttons[b].Set()
	m.release[b] = PressMS
}

// ToggleBox places or removes a box under the dispenser
func (m *Machine) ToggleBox() bool {
	return m.box.Toggle()
}

// ToggleEStop pushes or releases the emergency stop. Pushing it also fires
// the controller's interrupt hook, as the firmware's edge interrupt does.
func (m *Machine) ToggleEStop() bool {
	if m.estop.Toggle() {
		m.ctrl.EmergencyStop()
		glog.Warning("sim: emergency stop pushed")
		return true
	}
	glog.Info("sim: emergency stop released")
	return false
}

// Pause is the pause button interrupt
func (m *Machine) Pause() {
	m.ctrl.TogglePause()
}

// Jam toggles a stuck open sensor on cylinder A
func (m *Machine) Jam() bool {
	c := &m.cyl[0]
	c.jammed = !c.jammed
	c.move(m.travelMS)
	return c.jammed
}

// Status is the controller snapshot
func (m *Machine) Status() packer.Status { return m.ctrl.Status() }

// Display returns both LCD rows
func (m *Machine) Display() [core.LCDRows]string { return m.display.Lines() }

// Cylinders returns A, B and C
func (m *Machine) Cylinders() [3]CylinderView {
	var v [3]CylinderView
	for i := range m.cyl {
		c := &m.cyl[i]
		v[i] = CylinderView{
			Name:   c.name,
			Drive:  c.drive.IsSet(),
			Open:   c.open.IsSet(),
			Closed: c.closed.IsSet(),
			Travel: float64(c.pos) / float64(m.travelMS),
			Jammed: c.jammed,
		}
	}
	return v
}

// BoxPresent reports the box sensor
func (m *Machine) BoxPresent() bool { return m.box.IsSet() }

// EStopHeld reports the emergency stop button level
func (m *Machine) EStopHeld() bool { return m.estop.IsSet() }

// Held reports whether a button is currently pressed
func (m *Machine) Held(b Button) bool {
	if b < 0 || b >= numButtons {
		return false
	}
	return m.buttons[b].IsSet()
}

// Packed is the number of boxes that left the machine
func (m *Machine) Packed() int { return m.packed }

// ElapsedMS is the simulated time since start
func (m *Machine) ElapsedMS() uint64 { return m.elapsed }
