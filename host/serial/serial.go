// Package serial is the host side of the generator's UART link
package serial

import (
	"errors"
	"fmt"
	"io"
)

// Port represents a serial port interface.
// The generator client only needs a byte stream, so tests substitute a pipe.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate, 115200 on the generator firmware
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud is the generator console rate
const DefaultBaud = 115200

// ErrNoDevice is returned when no device path was given
var ErrNoDevice = errors.New("no serial device given")

// Validate checks cfg before the device is touched
func (c *Config) Validate() error {
	switch {
	case c == nil:
		return fmt.Errorf("config cannot be nil")
	case c.Device == "":
		return ErrNoDevice
	case c.Baud <= 0:
		return fmt.Errorf("invalid baud rate %d for %s", c.Baud, c.Device)
	case c.ReadTimeout < 0:
		return fmt.Errorf("invalid read timeout %d ms for %s", c.ReadTimeout, c.Device)
	}
	return nil
}

// DefaultConfig returns the generator link settings for device
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100,
	}
}
