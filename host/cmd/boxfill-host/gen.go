package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"boxfill/host/gen"
	"boxfill/host/serial"
)

var genTimeout time.Duration

var genCmd = &cobra.Command{
	Use:   "gen [command...]",
	Short: "Send commands to the waveform generator",
	Long: `Send console commands to the waveform generator firmware.

With arguments, the arguments form one command line, e.g.

  boxfill-host gen -p /dev/ttyUSB0 c s 50
  boxfill-host gen -p /dev/ttyUSB0 r

Without arguments an interactive prompt reads one command per line.
Commands: h (help), r (run), s (stop), c <wave> <freq>
with wave s, q, w or t and freq 10..100 Hz.`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().DurationVar(&genTimeout, "timeout", gen.DefaultTimeout, "Reply timeout")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	if portName == "" {
		return errors.New("--port is required")
	}

	cfg := serial.DefaultConfig(portName)
	cfg.Baud = baudRate
	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	defer port.Close()
	if err := port.Flush(); err != nil {
		glog.Warningf("gen: flush %s: %v", portName, err)
	}
	glog.Infof("gen: connected to %s @ %d baud", portName, baudRate)

	client := gen.NewClient(port)
	client.Timeout = genTimeout

	if len(args) > 0 {
		return sendLine(cmd.OutOrStdout(), client, strings.Join(args, " "))
	}
	return genPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), client)
}

// genPrompt reads commands until EOF or "quit". Rejected commands are
// reported and the prompt carries on.
func genPrompt(in io.Reader, out io.Writer, client *gen.Client) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		err := sendLine(out, client, line)
		if errors.Is(err, gen.ErrInvalidCommand) || errors.Is(err, gen.ErrInvalidArgument) {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if err != nil {
			return err
		}
	}
}

func sendLine(out io.Writer, client *gen.Client, line string) error {
	reply, err := client.Send(line)
	if err != nil {
		return err
	}
	fmt.Fprint(out, reply)
	if !strings.HasSuffix(reply, "\n") {
		fmt.Fprintln(out)
	}
	return nil
}
