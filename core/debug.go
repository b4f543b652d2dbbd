package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a control event for post-mortem analysis
type Event struct {
	Type   uint8  // Event type code
	Arg    uint8  // New state, axis, wave type...
	Clock  uint32 // System clock at event
	Value1 uint32 // Context-dependent value
	Value2 uint32 // Context-dependent value
}

// Event type codes
const (
	EvtMachineState  = 1  // Arg=new state, V1=old state
	EvtRunState      = 2  // Arg=new run state, V1=old run state
	EvtInterlock     = 3  // Arg=fault code
	EvtEmergencyStop = 4  // Arg=state at the time of the stop
	EvtPause         = 5  // Arg=1 paused, 0 resumed
	EvtBoxDone       = 6  // V1=lot number, V2=lot quantity after the box
	EvtLotDone       = 7  // V1=finished lot number
	EvtWaveConfig    = 8  // Arg=wave type, V1=frequency, V2=period ticks
	EvtWaveRun       = 9  // Arg=1 run, 0 stop
	EvtCmdOverflow   = 10 // V1=discarded byte count
	EvtPanic         = 11 // V1=recovered panic count
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Event capture ring buffer (non-blocking, for post-mortem)
	eventRing     [EventRingSize]Event
	eventRingHead uint8

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16) // Buffer 16 messages
	go debugOutputWorker()
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
// Blocks if debug is enabled (use DebugAsync for non-blocking)
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Returns immediately even if channel is full (drops message)
func DebugAsync(msg string) {
	if !debugEnabled || debugChan == nil {
		return
	}
	select {
	case debugChan <- msg:
	default:
		// Channel full, drop message (non-blocking)
	}
}

// RecordEvent captures an event in the ring buffer
// Safe to call from interrupt context: no allocation, no locking
func RecordEvent(eventType, arg uint8, clock, value1, value2 uint32) {
	idx := eventRingHead
	eventRing[idx] = Event{
		Type:   eventType,
		Arg:    arg,
		Clock:  clock,
		Value1: value1,
		Value2: value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the captured events, oldest first
func Events() []Event {
	out := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.Type == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// EventName returns a short label for an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtMachineState:
		return "STATE"
	case EvtRunState:
		return "RUN_STATE"
	case EvtInterlock:
		return "INTERLOCK!"
	case EvtEmergencyStop:
		return "E_STOP!"
	case EvtPause:
		return "PAUSE"
	case EvtBoxDone:
		return "BOX_DONE"
	case EvtLotDone:
		return "LOT_DONE"
	case EvtWaveConfig:
		return "WAVE_CFG"
	case EvtWaveRun:
		return "WAVE_RUN"
	case EvtCmdOverflow:
		return "CMD_OVERFLOW"
	case EvtPanic:
		return "PANIC"
	default:
		return "UNKNOWN"
	}
}

// DumpEventRing outputs the event ring buffer (call on shutdown/error)
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENT] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENT] " + EventName(evt.Type) +
			" arg=" + itoa(int(evt.Arg)) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[EVENT] === End Dump ===")
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
}
