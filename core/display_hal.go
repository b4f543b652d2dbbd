package core

// HD44780-compatible 16x2 character display geometry and instruction set
const (
	LCDColumns = 16
	LCDRows    = 2

	LCDMaxColumn  = 0x0F // last addressable column of a row
	LCDRow2Offset = 0x40 // DDRAM address of the first cell of row 2

	LCDCmdClear      = 0x01
	LCDCmdHome       = 0x02
	LCDCmdEntryMode  = 0x06 // increment, no shift
	LCDCmdDisplayOn  = 0x0C // display on, cursor off, blink off
	LCDCmdFunction4b = 0x28 // 4-bit bus, 2 lines, 5x8 font
	LCDCmdSetDDRAM   = 0x80
)

// Display is the abstract character display interface that core code uses.
// Platform-specific implementations handle the bus protocol.
type Display interface {
	// Write writes text at the current cursor position, advancing the cursor
	Write(text string) error

	// Clear blanks the display and homes the cursor
	Clear() error

	// MoveCursor positions the cursor at col (0-based) of row (0 or 1)
	MoveCursor(col, row uint8) error

	// SendCommand sends a raw instruction byte
	SendCommand(cmd byte) error
}

// CursorAddress returns the set-DDRAM instruction for (col, row).
// Columns past the last cell are clamped; any row other than 0 is row 2.
func CursorAddress(col, row uint8) byte {
	if col > LCDMaxColumn {
		col = LCDMaxColumn
	}
	addr := col
	if row > 0 {
		addr += LCDRow2Offset
	}
	return LCDCmdSetDDRAM | addr
}
