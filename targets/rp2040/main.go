//go:build rp2040

package main

import (
	"machine"

	"boxfill/core"
	"boxfill/targets/rp2"
)

// machineJSON optionally replaces the built-in wiring:
// tinygo flash -target pico -ldflags "-X main.machineJSON=$(cat machine.json)"
var machineJSON string

func main() {
	// Disable any watchdog left running from before the reset
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	rp2.InitClock()
	core.TimerInit()

	cfg, err := rp2.LoadMachineConfig(machineJSON)
	if err != nil {
		rp2.Fatal(err.Error())
	}

	if cfg.Debug {
		// UART0 on gpio28/29, clear of the default machine wiring
		if err := rp2.InitDebugUART(machine.UART0, machine.GPIO28, machine.GPIO29, 115200, ""); err == nil {
			core.SetDebugWriter(rp2.DebugPrintln)
			core.SetDebugEnabled(true)
			core.InitAsyncDebug()
		}
	}

	rp2.RunPacker(cfg)
}
