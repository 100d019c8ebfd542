// Package marlin implements the command channel over a line-oriented
// connection to Marlin-style firmware.
package marlin

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mastercactapus/cmm/coord"
	"github.com/mastercactapus/cmm/gcode"
	"github.com/mastercactapus/cmm/machine"
)

var errEmptyResponse = errors.New("empty response line")

// Conn sends one command per line and reads responses line-by-line.
// It implements machine.Channel and never interprets or retries.
type Conn struct {
	w     io.Writer
	lines chan string
	log   zerolog.Logger

	// WakeDelay is how long the firmware gets to finish booting after
	// the wake-up nudge before its startup chatter is drained.
	WakeDelay time.Duration
}

var _ machine.Channel = (*Conn)(nil)

// NewConn starts reading lines from rw immediately.
func NewConn(rw io.ReadWriter, log zerolog.Logger) *Conn {
	c := &Conn{
		w:         rw,
		lines:     make(chan string, 16),
		log:       log,
		WakeDelay: 2 * time.Second,
	}
	go c.readLoop(rw)
	return c
}

func (c *Conn) readLoop(r io.Reader) {
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		c.lines <- scan.Text()
	}
	if err := scan.Err(); err != nil {
		c.log.Error().Err(err).Msg("read from machine")
	}
	close(c.lines)
}

// Send writes a single command line. Whitespace-only commands are a
// no-op and are never transmitted.
func (c *Conn) Send(cmd string) error {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}
	if _, err := io.WriteString(c.w, cmd+"\n"); err != nil {
		return &machine.TransportError{Op: "write", Err: err}
	}
	return nil
}

// SendAwait writes a command and returns the next response line. Any
// non-empty line counts as liveness; an empty line is malformed and
// surfaces as a transport failure, no line at all as machine.ErrTimeout.
func (c *Conn) SendAwait(cmd string, timeout time.Duration) (string, error) {
	if strings.TrimSpace(cmd) == "" {
		return "", nil
	}
	if err := c.Send(cmd); err != nil {
		return "", err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", &machine.TransportError{Op: "read", Err: io.EOF}
		}
		if strings.TrimSpace(line) == "" {
			return "", &machine.TransportError{Op: "read", Err: errEmptyResponse}
		}
		return line, nil
	case <-timer.C:
		return "", machine.ErrTimeout
	}
}

// SendScript sends a multi-line gcode script, one command at a time,
// skipping blank lines. Response lines produced while the script runs
// are drained without interpretation.
func (c *Conn) SendScript(script string) error {
	for _, line := range strings.Split(script, "\n") {
		if err := c.Send(line); err != nil {
			return err
		}
	}
	c.drain(50 * time.Millisecond)
	return nil
}

// Wake nudges the firmware awake and discards its startup banner, the
// same dance a fresh serial connection to a 3D-printer board needs.
func (c *Conn) Wake() error {
	if _, err := c.w.Write([]byte("\r\n\r\n")); err != nil {
		return &machine.TransportError{Op: "write", Err: err}
	}
	time.Sleep(c.WakeDelay)
	c.drain(100 * time.Millisecond)
	return nil
}

// drain discards buffered response lines until the channel has been
// quiet for the given interval.
func (c *Conn) drain(quiet time.Duration) {
	timer := time.NewTimer(quiet)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-c.lines:
			if !ok {
				return
			}
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(quiet)
		case <-timer.C:
			return
		}
	}
}

// QueryPosition asks the firmware where it is (M114) and parses the
// report.
func (c *Conn) QueryPosition(timeout time.Duration) (coord.Point, error) {
	line, err := c.SendAwait(gcode.ReportPosition().String(), timeout)
	if err != nil {
		return coord.Point{}, err
	}
	return ParsePosition(line)
}
