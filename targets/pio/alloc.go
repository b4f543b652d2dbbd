// Package pio drives RP2040 PIO state machines for the firmware targets
package pio

import "errors"

// ErrNoStateMachine is returned when every state machine of a PIO block is taken
var ErrNoStateMachine = errors.New("pio: no free state machine")

// ErrBadBlock is returned for a PIO block other than 0 or 1
var ErrBadBlock = errors.New("pio: block must be 0 or 1")

var (
	// RP2040 has 2 PIO blocks (PIO0, PIO1) with 4 state machines each
	pioAllocations = [2][4]bool{} // [pioNum][smNum]
)

// allocateSM claims the lowest free state machine of block pioNum
func allocateSM(pioNum uint8) (uint8, error) {
	if pioNum > 1 {
		return 0, ErrBadBlock
	}
	for sm := uint8(0); sm < 4; sm++ {
		if !pioAllocations[pioNum][sm] {
			pioAllocations[pioNum][sm] = true
			return sm, nil
		}
	}
	return 0, ErrNoStateMachine
}

// releaseSM returns a state machine to the pool
func releaseSM(pioNum, smNum uint8) {
	if pioNum > 1 || smNum > 3 {
		return
	}
	pioAllocations[pioNum][smNum] = false
}

// AllocationStatus returns PIO allocation status for debugging
func AllocationStatus() [2][4]bool {
	return pioAllocations
}

// ResetAllocations frees every state machine (for testing)
func ResetAllocations() {
	pioAllocations = [2][4]bool{}
}
