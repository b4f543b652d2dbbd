//go:build rp2040 || rp2350

package rp2

import (
	"io"
	"machine"
	"time"
)

var (
	debugOut    io.Writer
	debugPrefix string
)

// InitDebugUART routes core debug output to uart.
// prefix is written before every line so debug text can share a console.
func InitDebugUART(uart *machine.UART, tx, rx machine.Pin, baud uint32, prefix string) error {
	err := uart.Configure(machine.UARTConfig{
		BaudRate: baud,
		TX:       tx,
		RX:       rx,
	})
	if err != nil {
		return err
	}
	debugOut = uart
	debugPrefix = prefix
	return nil
}

// InitDebugUSB routes core debug output to the USB CDC port
func InitDebugUSB() error {
	if err := machine.Serial.Configure(machine.UARTConfig{}); err != nil {
		return err
	}
	debugOut = machine.Serial
	debugPrefix = ""
	return nil
}

// DebugPrintln writes one line to the debug port, if configured
func DebugPrintln(s string) {
	if debugOut == nil {
		return
	}
	debugOut.Write([]byte(debugPrefix))
	debugOut.Write([]byte(s))
	debugOut.Write([]byte("\r\n"))
}

// Fatal reports msg and blinks the board LED forever
func Fatal(msg string) {
	DebugPrintln("FATAL: " + msg)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
