package machine

import "github.com/mastercactapus/cmm/coord"

// Tracker holds the machine's last-known position and the calibrated
// origin for one session. The position only changes after a motion
// command has been confirmed accepted; never speculatively.
type Tracker struct {
	pos        coord.Point
	origin     coord.Point
	calibrated bool
}

// NewTracker starts tracking from the given position.
func NewTracker(start coord.Point) *Tracker {
	return &Tracker{pos: start}
}

// Current returns the last-known machine position.
func (t *Tracker) Current() coord.Point { return t.pos }

// Origin returns the calibrated origin. Zero until SetOrigin is called.
func (t *Tracker) Origin() coord.Point { return t.origin }

// Calibrated reports whether SetOrigin has been called.
func (t *Tracker) Calibrated() bool { return t.calibrated }

// SetOrigin records the calibrated origin. It may be called exactly
// once per session.
func (t *Tracker) SetOrigin(c coord.Point) error {
	if t.calibrated {
		return ErrAlreadyCalibrated
	}
	t.origin = c
	t.calibrated = true
	return nil
}

// set updates the tracked position after a confirmed motion.
func (t *Tracker) set(p coord.Point) { t.pos = p }
