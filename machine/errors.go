package machine

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when the machine does not answer a command
// within the bounded wait. The command may still execute; retry policy
// belongs to the caller.
var ErrTimeout = errors.New("machine: response timeout")

// ErrAlreadyCalibrated is returned when a session origin is set twice.
var ErrAlreadyCalibrated = errors.New("machine: origin already calibrated")

// TransportError wraps a write or read failure on the command channel.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("machine: transport failure during %s", e.Op)
	}
	return fmt.Sprintf("machine: transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
