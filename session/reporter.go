package session

import "github.com/mastercactapus/cmm/coord"

// Reporter receives the session's semantic output. Implementations
// render it however they like; the session never emits escape
// sequences or layout.
type Reporter interface {
	// Screen announces that a new prompt context became active.
	Screen(s State)

	// Point announces arrival at a grid point.
	Point(index, total int, pos coord.Point)

	// Info carries a human-readable status message.
	Info(msg string)

	// Error carries a recoverable failure the operator should see.
	Error(err error)
}

// Writer persists a completed measurement list.
type Writer interface {
	Write(points []coord.Point) error
}

type nopReporter struct{}

func (nopReporter) Screen(State)                {}
func (nopReporter) Point(int, int, coord.Point) {}
func (nopReporter) Info(string)                 {}
func (nopReporter) Error(error)                 {}
