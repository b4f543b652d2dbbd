package core

// Critical runs fn with interrupts disabled.
// Multi-word updates shared with an interrupt handler go through here.
func Critical(fn func()) {
	state := DisableInterrupts()
	defer RestoreInterrupts(state)
	fn()
}
