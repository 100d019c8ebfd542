package machine

import (
	"fmt"
	"time"

	"github.com/mastercactapus/cmm/coord"
	"github.com/mastercactapus/cmm/gcode"
)

// Axis identifies a single machine axis.
type Axis byte

const (
	AxisX Axis = 'X'
	AxisY Axis = 'Y'
	AxisZ Axis = 'Z'
)

// Mover translates semantic moves into channel commands and updates
// the tracker only after the machine confirms each command.
//
// On any failure the tracked position is left exactly as it was; the
// caller decides whether to retry.
type Mover struct {
	ch Channel
	tr *Tracker

	// SafeHeight is the Z clearance above the calibrated origin used
	// before any lateral travel between grid points.
	SafeHeight float64

	// AwaitTimeout bounds the wait for each command acknowledgement.
	AwaitTimeout time.Duration
}

func NewMover(ch Channel, tr *Tracker, safeHeight float64, awaitTimeout time.Duration) *Mover {
	return &Mover{
		ch:           ch,
		tr:           tr,
		SafeHeight:   safeHeight,
		AwaitTimeout: awaitTimeout,
	}
}

// Tracker returns the position tracker the mover updates.
func (m *Mover) Tracker() *Tracker { return m.tr }

// confirm issues one command and waits for any response line as
// evidence the machine accepted it.
func (m *Mover) confirm(b gcode.Block) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_, err := m.ch.SendAwait(b.String(), m.AwaitTimeout)
	return err
}

// Jog moves a single axis by delta from the current position.
func (m *Mover) Jog(axis Axis, delta float64) error {
	if !(gcode.Word{W: byte(axis)}).IsAxis() {
		return fmt.Errorf("machine: unknown axis %q", byte(axis))
	}
	target := m.tr.Current()
	var pos float64
	switch axis {
	case AxisX:
		target.X += delta
		pos = target.X
	case AxisY:
		target.Y += delta
		pos = target.Y
	default:
		target.Z += delta
		pos = target.Z
	}

	if err := m.confirm(gcode.RapidAxis(byte(axis), pos)); err != nil {
		return err
	}
	m.tr.set(target)
	return nil
}

// liftZ is the absolute Z used to clear the probe before lateral travel.
func (m *Mover) liftZ() float64 {
	return m.tr.Origin().Z + m.SafeHeight
}

// GoToXY lifts to the safe height and then moves to the target X/Y.
// The tracked position updates once, after both commands are
// confirmed; a failure part-way leaves it untouched and a retried call
// re-issues the full sequence.
func (m *Mover) GoToXY(target coord.Point) error {
	lift := m.liftZ()
	if err := m.confirm(gcode.RapidZ(lift)); err != nil {
		return err
	}
	if err := m.confirm(gcode.RapidXY(target.X, target.Y)); err != nil {
		return err
	}
	m.tr.set(target.WithZ(lift))
	return nil
}

// Park performs the end-of-session safe return: lift, move over home,
// then lower to it.
func (m *Mover) Park(home coord.Point) error {
	if err := m.confirm(gcode.RapidZ(m.liftZ())); err != nil {
		return err
	}
	if err := m.confirm(gcode.RapidXY(home.X, home.Y)); err != nil {
		return err
	}
	if err := m.confirm(gcode.RapidZ(home.Z)); err != nil {
		return err
	}
	m.tr.set(home)
	return nil
}
