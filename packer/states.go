package packer

// MachineState is the major state of the packaging machine
type MachineState uint8

const (
	StateStart MachineState = iota
	StatePasswordEntry
	StateConfig
	StateReady
	StateRun
	StatePause
	StateError
)

func (s MachineState) String() string {
	switch s {
	case StateStart:
		return "START"
	case StatePasswordEntry:
		return "PASSWORD_ENTRY"
	case StateConfig:
		return "CONFIG"
	case StateReady:
		return "READY"
	case StateRun:
		return "RUN"
	case StatePause:
		return "PAUSE"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// RunState is the box cycle sub-state, meaningful while the machine is in StateRun
type RunState uint8

const (
	RunWaiting   RunState = iota // waiting for a box
	RunDetected                  // box present, clamping
	RunLoading                   // gate open, filling
	RunClosing                   // closing the gate before release
	RunReleasing                 // releasing the box
)

func (s RunState) String() string {
	switch s {
	case RunWaiting:
		return "WAITING"
	case RunDetected:
		return "DETECTED"
	case RunLoading:
		return "LOADING"
	case RunClosing:
		return "CLOSING"
	case RunReleasing:
		return "RELEASING"
	default:
		return "UNKNOWN"
	}
}

// Fault identifies why the machine entered StateError
type Fault uint8

const (
	FaultNone Fault = iota
	FaultEmergencyStop
	FaultSensorA // cylinder A reports open and closed at once
	FaultSensorB
	FaultSensorC
	FaultGateLeak // B released while the dispenser gate is open
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return ""
	case FaultEmergencyStop:
		return "E-STOP"
	case FaultSensorA:
		return "SENSOR A"
	case FaultSensorB:
		return "SENSOR B"
	case FaultSensorC:
		return "SENSOR C"
	case FaultGateLeak:
		return "GATE LEAK"
	default:
		return "UNKNOWN"
	}
}
