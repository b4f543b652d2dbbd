package wavegen

import (
	"io"
	"strconv"

	"boxfill/core"
	"boxfill/protocol"
)

// Wire replies
const (
	ReplyOK      = "ok\n"
	ReplyStopped = "stopped\n"
)

// Indicators are the status LEDs. Any of them may be nil.
type Indicators struct {
	On  core.Output // lit from boot
	Run core.Output // lit while generating
	Err core.Output // lit after an error reply until the next success
}

// Console turns serial bytes into generator commands and writes the replies
type Console struct {
	gen  *Generator
	reg  *core.CommandRegistry
	line protocol.LineBuffer
	out  io.Writer
	leds Indicators
}

// NewConsole registers the generator commands and lights the ON LED
func NewConsole(gen *Generator, out io.Writer, leds Indicators) *Console {
	c := &Console{
		gen:  gen,
		reg:  core.NewCommandRegistry(),
		out:  out,
		leds: leds,
	}

	c.reg.Register('h', "help", "", c.cmdHelp)
	c.reg.Register('r', "run generator (please configure first)", "", c.cmdRun)
	c.reg.Register('s', "stop generator", "", c.cmdStop)
	c.reg.Register('c', "configure generator - format: c <waveType> <freq>",
		"\t wavetypes :\n"+
			"\t  - s - [s]ine\n"+
			"\t  - q - s[q]uare\n"+
			"\t  - w - sa[w]tooth\n"+
			"\t  - t - [t]riangle\n",
		c.cmdConfigure)

	setLED(leds.On, true)
	setLED(leds.Run, false)
	setLED(leds.Err, false)
	return c
}

// Registry exposes the command table
func (c *Console) Registry() *core.CommandRegistry {
	return c.reg
}

// Feed consumes one received byte, executing the line it completes
func (c *Console) Feed(b byte) {
	line, ok, overflow := c.line.Feed(b)
	if overflow {
		core.RecordEvent(core.EvtCmdOverflow, 0, core.GetTime(), uint32(c.line.Dropped()), 0)
		core.DebugPrintln("wavegen: command too long, dropped")
		return
	}
	if ok {
		c.Execute(line)
	}
}

// Poll drains every byte queued in rx
func (c *Console) Poll(rx *protocol.FifoBuffer) {
	for {
		b, ok := rx.Pop()
		if !ok {
			return
		}
		c.Feed(b)
	}
}

// Execute runs one command line and writes its reply
func (c *Console) Execute(line string) {
	reply, err := c.reg.Dispatch(line)
	if err != nil {
		reply = err.Error() + "\n"
		setLED(c.leds.Err, true)
	} else {
		setLED(c.leds.Err, false)
	}

	if _, err := io.WriteString(c.out, reply); err != nil {
		core.DebugPrintln("wavegen: reply: " + err.Error())
	}
}

func (c *Console) cmdHelp(args []string) (string, error) {
	return c.reg.Help(), nil
}

func (c *Console) cmdRun(args []string) (string, error) {
	c.gen.Run()
	setLED(c.leds.Run, true)
	return ReplyOK, nil
}

func (c *Console) cmdStop(args []string) (string, error) {
	c.gen.Stop()
	setLED(c.leds.Run, false)
	return ReplyStopped, nil
}

// cmdConfigure handles "c <wave> <freq>". Nothing changes unless both arguments are valid.
func (c *Console) cmdConfigure(args []string) (string, error) {
	if len(args) != 2 || len(args[0]) != 1 {
		return "", core.ErrInvalidArgument
	}
	wave, err := ParseWaveType(args[0][0])
	if err != nil {
		return "", core.ErrInvalidArgument
	}
	hz, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil || hz < MinFrequency || hz > MaxFrequency {
		return "", core.ErrInvalidArgument
	}

	c.gen.Configure(wave, uint32(hz))
	core.DebugPrintln("wavegen: " + wave.String() + " " + core.Utoa(uint32(hz)) + " Hz")
	return ReplyOK, nil
}

func setLED(o core.Output, on bool) {
	if o == nil {
		return
	}
	if on {
		o.Set()
	} else {
		o.Clear()
	}
}
