package machine

import "time"

// A Channel is the minimal command interface to the machine firmware.
//
// Implementations terminate every outbound command with a single
// newline and never transmit blank commands. Responses are returned
// verbatim, one line at a time; the channel does not interpret them
// and never retries.
type Channel interface {
	// Send writes a command without waiting for a reply. A command
	// consisting only of whitespace is a no-op.
	Send(cmd string) error

	// SendAwait writes a command and returns the next response line,
	// or ErrTimeout if none arrives within the bound.
	SendAwait(cmd string, timeout time.Duration) (string, error)
}
