//go:build rp2350

package main

import (
	"machine"
	"time"

	"boxfill/core"
	"boxfill/targets/rp2"
)

// machineJSON optionally replaces the built-in wiring:
// tinygo flash -target pico2 -ldflags "-X main.machineJSON=$(cat machine.json)"
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

	// The Pico 2 build logs over USB CDC, which leaves every header pin to the machine
	if cfg.Debug {
		if err := rp2.InitDebugUSB(); err == nil {
			// Give the host a moment to open the port before the boot messages
			time.Sleep(500 * time.Millisecond)
			core.SetDebugWriter(rp2.DebugPrintln)
			core.SetDebugEnabled(true)
			core.InitAsyncDebug()
		}
	}

	rp2.RunPacker(cfg)
}
