package main

import (
	"flag"

	"github.com/spf13/cobra"

	"boxfill/host/serial"
)

var (
	portName string
	baudRate int
)

var rootCmd = &cobra.Command{
	Use:   "boxfill-host",
	Short: "Host tools for the boxfill firmware",
	Long: `boxfill-host talks to the waveform generator firmware over its UART console
and runs a terminal simulator of the packaging machine controller.

  gen    send generator commands (one-shot or interactive)
  ports  list serial ports
  sim    simulate the packaging machine

Logging follows glog: -v=2 traces every console line, --logtostderr prints logs.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", serial.DefaultBaud, "Baud rate")

	// glog registers its flags on the standard flag set
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

// Execute runs the root command
func Execute() error {
	// glog complains about logging before flag.Parse
	_ = flag.CommandLine.Parse(nil)
	return rootCmd.Execute()
}
