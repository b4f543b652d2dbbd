//go:build tinygo

package lcd

import (
	"machine"

	"tinygo.org/x/drivers/hd44780"

	"boxfill/core"
)

// HD44780 adapts the TinyGo hd44780 driver (4-bit bus, R/W tied low) to core.Display
type HD44780 struct {
	dev hd44780.Device
}

// NewHD44780 configures a 16x2 module on a 4-bit data bus
func NewHD44780(data [4]machine.Pin, en, rs machine.Pin) (*HD44780, error) {
	dev, err := hd44780.NewGPIO4Bit(data[:], en, rs, machine.NoPin)
	if err != nil {
		return nil, err
	}

	err = dev.Configure(hd44780.Config{
		Width:  core.LCDColumns,
		Height: core.LCDRows,
	})
	if err != nil {
		return nil, err
	}

	return &HD44780{dev: dev}, nil
}

// Write sends text at the current cursor position
func (d *HD44780) Write(text string) error {
	if _, err := d.dev.Write([]byte(text)); err != nil {
		return err
	}
	return d.dev.Display()
}

// Clear blanks the display and homes the cursor
func (d *HD44780) Clear() error {
	d.dev.ClearDisplay()
	return nil
}

// MoveCursor positions the cursor, clamping the column like CursorAddress
func (d *HD44780) MoveCursor(col, row uint8) error {
	if col > core.LCDMaxColumn {
		col = core.LCDMaxColumn
	}
	if row > 0 {
		row = 1
	}
	d.dev.SetCursor(col, row)
	return nil
}

// SendCommand sends a raw instruction byte
func (d *HD44780) SendCommand(cmd byte) error {
	d.dev.SendCommand(cmd)
	return nil
}
