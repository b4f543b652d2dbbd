//go:build rp2040 || rp2350

package rp2

import (
	"machine"
	"time"

	"boxfill/config"
	"boxfill/core"
	"boxfill/lcd"
	"boxfill/packer"
)

var loopPanics uint32

// LoadMachineConfig parses machineJSON, or validates the built-in wiring when it is empty
func LoadMachineConfig(machineJSON string) (*config.MachineConfig, error) {
	if machineJSON != "" {
		return config.LoadMachineConfig([]byte(machineJSON))
	}
	cfg := config.DefaultMachineConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunPacker wires the packaging machine and runs its main loop forever.
// Clock and debug output must already be set up.
func RunPacker(cfg *config.MachineConfig) {
	gpio := NewGPIODriver()
	wiring, err := cfg.Wire(gpio)
	if err != nil {
		Fatal(err.Error())
	}

	display, err := lcd.NewHD44780(
		[4]machine.Pin{Pin(cfg.LCD.Data[0]), Pin(cfg.LCD.Data[1]), Pin(cfg.LCD.Data[2]), Pin(cfg.LCD.Data[3])},
		Pin(cfg.LCD.Enable),
		Pin(cfg.LCD.RS),
	)
	if err != nil {
		Fatal("lcd: " + err.Error())
	}

	ctrl, err := packer.New(cfg.Settings(), wiring.IO, display, core.GetTime)
	if err != nil {
		Fatal(err.Error())
	}

	// The stop must act even if the loop is stuck, so it drives the outputs from the interrupt
	if err := OnAssert(wiring.EStop, ctrl.EmergencyStop); err != nil {
		Fatal("estop irq: " + err.Error())
	}
	if err := OnAssert(wiring.Pause, ctrl.TogglePause); err != nil {
		Fatal("pause irq: " + err.Error())
	}

	core.DebugPrintln("packer: ready")

	last := ctrl.State()
	for {
		// Recover from panics in the main loop to prevent a firmware crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopPanics++
					core.RecordEvent(core.EvtPanic, 0, core.GetTime(), loopPanics, 0)
					ctrl.EmergencyStop()
				}
			}()

			UpdateSystemTime()
			core.ProcessTimers()
			ctrl.Step()

			if s := ctrl.State(); s != last {
				if s == packer.StateError && cfg.Debug {
					core.DumpEventRing()
				}
				last = s
			}
		}()

		time.Sleep(100 * time.Microsecond)
	}
}

// Pin converts a validated "gpioN" name
func Pin(name string) machine.Pin {
	p, _ := config.ParsePin(name)
	return machine.Pin(p)
}
