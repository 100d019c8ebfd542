// Package session implements the measurement session state machine:
// mode selection, calibration, grid traversal or free motion, and the
// hand-off of collected points to the output writer.
package session

import (
	"errors"
	"fmt"

	"github.com/mastercactapus/cmm/coord"
	"github.com/mastercactapus/cmm/grid"
	"github.com/mastercactapus/cmm/machine"
)

// ErrInvalidTransition reports a key that asks for something the
// current state cannot do, like undoing with nothing saved. The
// session stays where it is.
var ErrInvalidTransition = errors.New("invalid transition")

var errNothingToUndo = fmt.Errorf("%w: no saved points to undo", ErrInvalidTransition)

// GridConfig are the planner inputs for rectangle mode.
type GridConfig struct {
	Rows, Cols             uint
	RowSpacing, ColSpacing float64
}

// Config assembles a session's collaborators.
type Config struct {
	Mover    *machine.Mover
	Writer   Writer
	Reporter Reporter

	Grid GridConfig

	// Home is the park target for the end-of-session safe return.
	Home coord.Point

	Keymap Keymap
	Steps  Steps

	// OnChange, if set, receives a snapshot after every handled key.
	OnChange func(Snapshot)
}

// Session drives one measurement run from mode selection to a
// terminal state. It is single-threaded: one keystroke at a time.
type Session struct {
	cfg Config

	state  State
	resume State // state to return to when a quit is denied
	mode   Mode

	grid  grid.Grid
	index int

	records []coord.Point
}

// New validates the configuration and generates the measurement grid.
// A degenerate grid fails here, before any machine interaction.
func New(cfg Config) (*Session, error) {
	if cfg.Mover == nil {
		return nil, errors.New("session: mover is required")
	}
	if cfg.Writer == nil {
		return nil, errors.New("session: writer is required")
	}
	if cfg.Reporter == nil {
		cfg.Reporter = nopReporter{}
	}
	if cfg.Keymap == (Keymap{}) {
		cfg.Keymap = DefaultKeymap()
	}
	if cfg.Steps == (Steps{}) {
		cfg.Steps = DefaultSteps()
	}

	g, err := grid.Generate(cfg.Grid.Rows, cfg.Grid.Cols, cfg.Grid.RowSpacing, cfg.Grid.ColSpacing)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:   cfg,
		state: StateModeSelect,
		grid:  g,
	}
	cfg.Reporter.Screen(StateModeSelect)
	return s, nil
}

func (s *Session) State() State { return s.state }
func (s *Session) Mode() Mode   { return s.mode }
func (s *Session) Index() int   { return s.index }

// Done reports whether the session reached a terminal state.
func (s *Session) Done() bool { return s.state.Terminal() }

// Records returns a copy of the saved measurement list.
func (s *Session) Records() []coord.Point {
	out := make([]coord.Point, len(s.records))
	copy(out, s.records)
	return out
}

// Snapshot captures the session for observers (e.g. a live monitor).
type Snapshot struct {
	State    string      `json:"state"`
	Mode     string      `json:"mode"`
	Index    int         `json:"index"`
	GridSize int         `json:"grid_size"`
	Position coord.Point `json:"position"`
	Records  int         `json:"records"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:    s.state.String(),
		Mode:     s.mode.String(),
		Index:    s.index,
		GridSize: s.grid.Len(),
		Position: s.cfg.Mover.Tracker().Current(),
		Records:  len(s.records),
	}
}

// HandleKey dispatches one keystroke. All transport failures are
// caught here, reported, and leave the session state and tracked
// position unchanged. Keystrokes after a terminal state are ignored.
func (s *Session) HandleKey(ch byte) {
	switch s.state {
	case StateModeSelect:
		s.handleModeSelect(ch)
	case StateCalibrating:
		s.handleCalibrate(ch)
	case StateGridTraversal:
		s.handleGrid(ch)
	case StateFreeMotion:
		s.handleFree(ch)
	case StateConfirmQuit:
		s.handleConfirmQuit(ch)
	}

	if s.cfg.OnChange != nil {
		s.cfg.OnChange(s.Snapshot())
	}
}

func (s *Session) setState(next State) {
	s.state = next
	s.cfg.Reporter.Screen(next)
}

func (s *Session) handleModeSelect(ch byte) {
	switch ch {
	case s.cfg.Keymap.ModeRectangle:
		s.mode = ModeRectangle
		s.setState(StateCalibrating)
	case s.cfg.Keymap.ModeFree:
		s.mode = ModeFree
		s.setState(StateFreeMotion)
	}
}

// jog nudges one axis and reports any failure; a failed jog is never
// fatal, control returns to the loop for the next keystroke.
func (s *Session) jog(axis machine.Axis, delta float64) {
	if err := s.cfg.Mover.Jog(axis, delta); err != nil {
		s.cfg.Reporter.Error(fmt.Errorf("move %c by %+.3f: %w", axis, delta, err))
	}
}

func (s *Session) handleCalibrate(ch byte) {
	km, st := s.cfg.Keymap, s.cfg.Steps
	switch ch {
	case km.Quit:
		s.setState(StateAborted)
	case km.CalXUp:
		s.jog(machine.AxisX, st.XYCoarse)
	case km.CalXDown:
		s.jog(machine.AxisX, -st.XYCoarse)
	case km.CalYUp:
		s.jog(machine.AxisY, st.XYCoarse)
	case km.CalYDown:
		s.jog(machine.AxisY, -st.XYCoarse)
	case km.CalZUp:
		s.jog(machine.AxisZ, st.ZCoarse)
	case km.CalZDown:
		s.jog(machine.AxisZ, -st.ZCoarse)
	case km.Confirm:
		s.acceptOrigin()
	}
}

// acceptOrigin fixes the current position as the calibrated origin and
// moves to the first grid point. If the move fails the session stays
// in Calibrating; a repeated confirm retries the move without
// re-calibrating.
func (s *Session) acceptOrigin() {
	tr := s.cfg.Mover.Tracker()
	if !tr.Calibrated() {
		if err := tr.SetOrigin(tr.Current()); err != nil {
			s.cfg.Reporter.Error(err)
			return
		}
		s.cfg.Reporter.Info("accepted start position")
	}

	if err := s.moveToPoint(0); err != nil {
		s.cfg.Reporter.Error(fmt.Errorf("move to first point: %w", err))
		return
	}
	s.index = 0
	s.setState(StateGridTraversal)
	s.reportPoint()
}

// moveToPoint travels to grid point i: lift to the safe height, then
// over to the point's X/Y offset from the origin.
func (s *Session) moveToPoint(i int) error {
	origin := s.cfg.Mover.Tracker().Origin()
	target := origin.Add(s.grid.At(i).Offset)
	return s.cfg.Mover.GoToXY(target)
}

func (s *Session) reportPoint() {
	s.cfg.Reporter.Point(s.index, s.grid.Len(), s.cfg.Mover.Tracker().Current())
}

func (s *Session) handleGrid(ch byte) {
	km, st := s.cfg.Keymap, s.cfg.Steps
	switch ch {
	case km.Quit:
		s.resume = StateGridTraversal
		s.setState(StateConfirmQuit)
	case km.GridZUp:
		s.jog(machine.AxisZ, st.ZCoarse)
	case km.GridZDown:
		s.jog(machine.AxisZ, -st.ZCoarse)
	case km.GridZUpFine:
		s.jog(machine.AxisZ, st.ZFine)
	case km.GridZDownFine:
		s.jog(machine.AxisZ, -st.ZFine)
	case km.GridPrev:
		s.gridStep(-1)
	case km.GridNext:
		s.gridStep(1)
	case km.GridSave:
		s.saveAndAdvance()
	}
}

// gridStep moves to a neighboring point, clamped to the grid bounds.
// On failure the index is unchanged.
func (s *Session) gridStep(dir int) {
	next := s.index + dir
	if next < 0 || next > s.grid.Last() {
		return
	}
	if err := s.moveToPoint(next); err != nil {
		s.cfg.Reporter.Error(fmt.Errorf("move to point %d: %w", next, err))
		return
	}
	s.index = next
	s.reportPoint()
}

// saveAndAdvance records the current position for this grid point. At
// the final index the session parks and completes; otherwise it moves
// on. A failed move appends nothing and stays put.
func (s *Session) saveAndAdvance() {
	rec := s.cfg.Mover.Tracker().Current()

	if s.index == s.grid.Last() {
		s.records = append(s.records, rec)
		s.finishGrid()
		return
	}

	if err := s.moveToPoint(s.index + 1); err != nil {
		s.cfg.Reporter.Error(fmt.Errorf("move to point %d: %w", s.index+1, err))
		return
	}
	s.records = append(s.records, rec)
	s.index++
	s.reportPoint()
}

// finishGrid performs the safe return and hands the records to the
// writer. A park failure is reported but never loses the collected
// data.
func (s *Session) finishGrid() {
	s.cfg.Reporter.Info("all points complete")
	if err := s.cfg.Mover.Park(s.cfg.Home); err != nil {
		s.cfg.Reporter.Error(fmt.Errorf("safe return: %w", err))
	}
	s.writeRecords()
	s.setState(StateCompleted)
}

func (s *Session) writeRecords() {
	if len(s.records) == 0 {
		return
	}
	if err := s.cfg.Writer.Write(s.Records()); err != nil {
		s.cfg.Reporter.Error(fmt.Errorf("write output: %w", err))
		return
	}
	s.cfg.Reporter.Info(fmt.Sprintf("wrote %d points", len(s.records)))
}

func (s *Session) handleFree(ch byte) {
	km, st := s.cfg.Keymap, s.cfg.Steps
	switch ch {
	case km.Quit:
		s.resume = StateFreeMotion
		s.setState(StateConfirmQuit)
	case km.FreeXUp:
		s.jog(machine.AxisX, st.XYCoarse)
	case km.FreeXUpFine:
		s.jog(machine.AxisX, st.XYFine)
	case km.FreeXDown:
		s.jog(machine.AxisX, -st.XYCoarse)
	case km.FreeXDownFine:
		s.jog(machine.AxisX, -st.XYFine)
	case km.FreeYUp:
		s.jog(machine.AxisY, st.XYCoarse)
	case km.FreeYUpFine:
		s.jog(machine.AxisY, st.XYFine)
	case km.FreeYDown:
		s.jog(machine.AxisY, -st.XYCoarse)
	case km.FreeYDownFine:
		s.jog(machine.AxisY, -st.XYFine)
	case km.FreeZUp:
		s.jog(machine.AxisZ, st.ZCoarse)
	case km.FreeZUpFine:
		s.jog(machine.AxisZ, st.ZFine)
	case km.FreeZDown:
		s.jog(machine.AxisZ, -st.ZCoarse)
	case km.FreeZDownFine:
		s.jog(machine.AxisZ, -st.ZFine)
	case km.FreeSave:
		s.records = append(s.records, s.cfg.Mover.Tracker().Current())
		s.cfg.Reporter.Info(fmt.Sprintf("saved point %d", len(s.records)))
	case km.FreeUndo:
		if len(s.records) == 0 {
			s.cfg.Reporter.Error(errNothingToUndo)
			return
		}
		s.records = s.records[:len(s.records)-1]
		s.cfg.Reporter.Info(fmt.Sprintf("removed last point, %d remain", len(s.records)))
	case km.FreeWrite:
		s.writeRecords()
	}
}

// handleConfirmQuit is the y/n dialog. Confirming a quit ends a grid
// session as Aborted and a free session as Completed (yielding
// whatever records are held); denying returns to the prior state.
func (s *Session) handleConfirmQuit(ch byte) {
	// accept upper-case answers the way the original dialog did
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	switch ch {
	case s.cfg.Keymap.Confirm:
		if s.resume == StateGridTraversal {
			s.setState(StateAborted)
			return
		}
		s.writeRecords()
		s.setState(StateCompleted)
	case s.cfg.Keymap.Deny:
		s.cfg.Reporter.Info("not exiting")
		s.setState(s.resume)
	default:
		s.cfg.Reporter.Info("please answer y or n")
	}
}
