//go:build rp2040

package main

import (
	"machine"
	"time"

	"boxfill/config"
	"boxfill/core"
	"boxfill/protocol"
	"boxfill/targets/pio"
	"boxfill/targets/rp2"
	"boxfill/wavegen"
)

// generatorJSON optionally replaces the built-in wiring (see the packer target)
var generatorJSON string

var (
	rx         *protocol.FifoBuffer
	rxOverruns uint32
	loopPanics uint32
)

func main() {
	rp2.InitClock()
	core.TimerInit()

	cfg, err := loadConfig()
	if err != nil {
		rp2.Fatal(err.Error())
	}

	uart := machine.UART1
	err = uart.Configure(machine.UARTConfig{
		BaudRate: cfg.Baud,
		TX:       rp2.Pin(cfg.UARTTX),
		RX:       rp2.Pin(cfg.UARTRX),
	})
	if err != nil {
		rp2.Fatal("uart: " + err.Error())
	}

	if cfg.Debug {
		// Debug lines share the console, marked so the host can skip them
		rp2.InitDebugUART(uart, rp2.Pin(cfg.UARTTX), rp2.Pin(cfg.UARTRX), cfg.Baud, "# ")
		core.SetDebugWriter(rp2.DebugPrintln)
		core.SetDebugEnabled(true)
	}

	dac, err := pio.NewDACOutput(cfg.PIO, rp2.Pin(cfg.DACBasePin))
	if err != nil {
		rp2.Fatal("dac: " + err.Error())
	}

	gpio := rp2.NewGPIODriver()
	leds := wavegen.Indicators{
		On:  led(gpio, "led_on", cfg.LEDOn),
		Run: led(gpio, "led_run", cfg.LEDRun),
		Err: led(gpio, "led_err", cfg.LEDErr),
	}

	gen := wavegen.New(dac, &wavegen.SchedulerTimer{})
	wave, _ := wavegen.ParseWaveType(cfg.Wave[0])
	gen.Configure(wave, cfg.Frequency)

	console := wavegen.NewConsole(gen, uart, leds)

	rx = protocol.NewFifoBuffer(256)
	go uartReaderLoop(uart)

	for {
		// Recover from panics in the main loop to prevent a firmware crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopPanics++
					core.RecordEvent(core.EvtPanic, 0, core.GetTime(), loopPanics, 0)
					gen.Stop()
					rx.Reset()
				}
			}()

			rp2.UpdateSystemTime()
			core.ProcessTimers()
			console.Poll(rx)
		}()

		time.Sleep(10 * time.Microsecond)
	}
}

// uartReaderLoop moves received bytes into the FIFO consumed by the main loop
func uartReaderLoop(uart *machine.UART) {
	defer func() {
		if r := recover(); r != nil {
			time.Sleep(100 * time.Millisecond)
			go uartReaderLoop(uart)
		}
	}()

	for {
		for uart.Buffered() > 0 {
			b, err := uart.ReadByte()
			if err != nil {
				break
			}
			if rx.Write([]byte{b}) == 0 {
				// Main loop not keeping up
				rxOverruns++
			}
		}
		// Yield to avoid a busy loop
		time.Sleep(100 * time.Microsecond)
	}
}

func loadConfig() (*config.GeneratorConfig, error) {
	if generatorJSON != "" {
		return config.LoadGeneratorConfig([]byte(generatorJSON))
	}
	cfg := config.DefaultGeneratorConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func led(gpio core.GPIODriver, name string, s config.SignalConfig) core.Output {
	p, err := config.ParsePin(s.Pin)
	if err != nil {
		rp2.Fatal(name + ": " + err.Error())
	}
	sig, err := core.NewOutputSignal(gpio, name, p, s.Invert)
	if err != nil {
		rp2.Fatal(name + ": " + err.Error())
	}
	return sig
}
