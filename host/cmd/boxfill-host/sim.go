package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"boxfill/config"
	"boxfill/host/sim"
)

var (
	simConfig   string
	simTravelMS uint32
	simSpeed    uint32
	simAutoFeed bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate the packaging machine in the terminal",
	Long: `Run the packaging machine controller against a simulated plant.

The LCD, cylinders, sensors and counters are shown live. Keys:
  up/down, enter   select and confirm (password, lot size, delay)
  s                start lot
  p                pause / resume
  e or space       push / release emergency stop
  r                reset after an error
  b                place / remove a box
  a                toggle automatic box feed
  f                jam cylinder A's open sensor
  +/-              simulation speed
  q                quit

The default password is 1111.`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVarP(&simConfig, "config", "c", "", "Machine config JSON (password, lot size, timings)")
	simCmd.Flags().Uint32Var(&simTravelMS, "travel", sim.DefaultTravelMS, "Cylinder stroke time in ms")
	simCmd.Flags().Uint32Var(&simSpeed, "speed", 1, "Simulation speed multiplier")
	simCmd.Flags().BoolVar(&simAutoFeed, "auto-feed", false, "Feed boxes automatically")
	rootCmd.AddCommand(simCmd)
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultMachineConfig()
	if simConfig != "" {
		data, err := os.ReadFile(simConfig)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		if cfg, err = config.LoadMachineConfig(data); err != nil {
			return err
		}
	}

	m, err := sim.NewMachine(cfg.Settings(), simTravelMS)
	if err != nil {
		return err
	}
	m.AutoFeed = simAutoFeed
	glog.Infof("sim: lot size %d, travel %d ms, speed x%d", cfg.LotSize, simTravelMS, simSpeed)

	p := tea.NewProgram(sim.NewModel(m, simSpeed), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
