//go:build rp2350

package rp2

// TIMER0; the RP2350 moved the timer away from the RP2040 address
const timerBase = 0x400B0000
