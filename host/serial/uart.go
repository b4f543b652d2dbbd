package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// uartLink is a generator console opened through tarm/serial, always 8N1
type uartLink struct {
	dev  string
	port *serial.Port
}

// Open validates cfg and opens the device. Input left over from an earlier
// session is discarded so the first reply read belongs to the first command.
func Open(cfg *Config) (Port, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	l := &uartLink{dev: cfg.Device, port: port}
	if err := l.Flush(); err != nil {
		port.Close()
		return nil, err
	}
	return l, nil
}

func (l *uartLink) Read(b []byte) (int, error) {
	n, err := l.port.Read(b)
	if err != nil {
		return n, fmt.Errorf("read %s: %w", l.dev, err)
	}
	return n, nil
}

func (l *uartLink) Write(b []byte) (int, error) {
	n, err := l.port.Write(b)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", l.dev, err)
	}
	return n, nil
}

// Close releases the device; later calls are no-ops
func (l *uartLink) Close() error {
	if l.port == nil {
		return nil
	}
	err := l.port.Close()
	l.port = nil
	return err
}

// Flush drops unread input
func (l *uartLink) Flush() error {
	if err := l.port.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", l.dev, err)
	}
	return nil
}
