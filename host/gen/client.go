// Package gen talks to the waveform generator firmware over its line console.
package gen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"boxfill/core"
	"boxfill/wavegen"
)

var (
	// ErrInvalidCommand is the generator's "invalid cmd" reply
	ErrInvalidCommand = errors.New("generator: invalid command")
	// ErrInvalidArgument is the generator's "invalid arg" reply
	ErrInvalidArgument = errors.New("generator: invalid argument")
	// ErrTimeout means no complete reply arrived in time
	ErrTimeout = errors.New("generator: reply timeout")
	// ErrUnexpectedReply means the generator answered with a line the client does not know
	ErrUnexpectedReply = errors.New("generator: unexpected reply")
)

// DefaultTimeout bounds the wait for one reply
const DefaultTimeout = 2 * time.Second

// logPrefix marks firmware debug lines sharing the console UART
const logPrefix = "# "

const helpRule = "-------------------------------------------------------"

// Client sends one command at a time and waits for its reply
type Client struct {
	rw      io.ReadWriter
	r       *bufio.Reader
	partial string

	// Timeout bounds each reply, DefaultTimeout when zero
	Timeout time.Duration
}

// NewClient wraps an open port
func NewClient(rw io.ReadWriter) *Client {
	return &Client{
		rw: rw,
		r:  bufio.NewReader(rw),
	}
}

// Configure selects the waveform and frequency
func (c *Client) Configure(wave wavegen.WaveType, hz uint32) error {
	_, err := c.Send("c " + string(byte(wave)) + " " + strconv.FormatUint(uint64(hz), 10))
	return err
}

// Run starts generation
func (c *Client) Run() error {
	_, err := c.Send("r")
	return err
}

// Stop halts generation
func (c *Client) Stop() error {
	_, err := c.Send("s")
	return err
}

// Help returns the generator's help block, rules included
func (c *Client) Help() (string, error) {
	return c.Send("h")
}

// Send writes one command line and returns the reply text.
// Error replies come back as ErrInvalidCommand or ErrInvalidArgument.
func (c *Client) Send(line string) (string, error) {
	line = strings.TrimRight(line, "\r\n")
	glog.V(2).Infof("gen: > %s", line)
	if _, err := io.WriteString(c.rw, line+"\n"); err != nil {
		return "", fmt.Errorf("failed to send %q: %w", line, err)
	}

	deadline := time.Now().Add(c.timeout())
	var help strings.Builder
	inHelp := false

	for {
		reply, err := c.readLine(deadline)
		if err != nil {
			return "", fmt.Errorf("%q: %w", line, err)
		}
		if strings.HasPrefix(reply, logPrefix) {
			glog.Infof("gen: firmware: %s", strings.TrimPrefix(reply, logPrefix))
			continue
		}
		glog.V(2).Infof("gen: < %s", reply)

		if inHelp {
			help.WriteString(reply + "\n")
			if reply == helpRule {
				return help.String(), nil
			}
			continue
		}

		switch reply {
		case "":
			continue
		case "ok", "stopped":
			return reply, nil
		case core.ErrUnknownCommand.Error():
			return "", fmt.Errorf("%q: %w", line, ErrInvalidCommand)
		case core.ErrInvalidArgument.Error():
			return "", fmt.Errorf("%q: %w", line, ErrInvalidArgument)
		case helpRule:
			inHelp = true
			help.WriteString(reply + "\n")
		default:
			return "", fmt.Errorf("%q: %w: %q", line, ErrUnexpectedReply, reply)
		}
	}
}

// readLine returns the next full line without its terminator.
// A port read timeout surfaces as io.EOF, which is retried until deadline.
func (c *Client) readLine(deadline time.Time) (string, error) {
	for {
		s, err := c.r.ReadString('\n')
		c.partial += s
		if err == nil {
			line := strings.TrimRight(c.partial, "\r\n")
			c.partial = ""
			return line, nil
		}
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if time.Now().After(deadline) {
			return "", ErrTimeout
		}
		time.Sleep(time.Millisecond)
	}
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
