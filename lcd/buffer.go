// Package lcd provides core.Display implementations: an in-memory HD44780
// model for hosts and tests, and the TinyGo hd44780 driver on targets.
package lcd

import (
	"sync"

	"boxfill/core"
)

// ddramSize covers both rows of a 16x2 module (0x00-0x27, 0x40-0x67)
const ddramSize = 0x68

// Buffer models the DDRAM and address counter of an HD44780 controller
type Buffer struct {
	mu     sync.Mutex
	ddram  [ddramSize]byte
	addr   byte
	writes int
}

// NewBuffer returns a cleared display
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.clear()
	return b
}

func (b *Buffer) clear() {
	for i := range b.ddram {
		b.ddram[i] = ' '
	}
	b.addr = 0
}

// Write stores text at the address counter, incrementing it per character
func (b *Buffer) Write(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 0; i < len(text); i++ {
		if int(b.addr) < ddramSize {
			b.ddram[b.addr] = text[i]
		}
		b.addr++
	}
	b.writes++
	return nil
}

// Clear blanks the display and homes the cursor
func (b *Buffer) Clear() error {
	return b.SendCommand(core.LCDCmdClear)
}

// MoveCursor positions the address counter
func (b *Buffer) MoveCursor(col, row uint8) error {
	return b.SendCommand(core.CursorAddress(col, row))
}

// SendCommand executes the subset of instructions the firmware uses
func (b *Buffer) SendCommand(cmd byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case cmd&core.LCDCmdSetDDRAM != 0:
		b.addr = cmd &^ core.LCDCmdSetDDRAM
	case cmd == core.LCDCmdClear:
		b.clear()
	case cmd == core.LCDCmdHome:
		b.addr = 0
	default:
		// Entry mode, display control and function set do not change contents
	}
	return nil
}

// Line returns the visible 16 characters of row 0 or 1
func (b *Buffer) Line(row uint8) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := 0
	if row > 0 {
		start = core.LCDRow2Offset
	}
	return string(b.ddram[start : start+core.LCDColumns])
}

// Lines returns both visible rows
func (b *Buffer) Lines() [core.LCDRows]string {
	return [core.LCDRows]string{b.Line(0), b.Line(1)}
}

// Writes returns how many Write calls reached the display
func (b *Buffer) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}
