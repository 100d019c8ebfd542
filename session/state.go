package session

// State identifies where the session is in its lifecycle. Completed
// and Aborted are terminal; no further keystrokes are accepted.
type State int

const (
	StateModeSelect State = iota
	StateCalibrating
	StateGridTraversal
	StateFreeMotion
	StateConfirmQuit
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateModeSelect:
		return "mode-select"
	case StateCalibrating:
		return "calibrating"
	case StateGridTraversal:
		return "grid-traversal"
	case StateFreeMotion:
		return "free-motion"
	case StateConfirmQuit:
		return "confirm-quit"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// Terminal reports whether the session has ended.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateAborted
}

// Mode is the operating mode chosen at session start.
type Mode int

const (
	ModeNone Mode = iota
	ModeRectangle
	ModeFree
)

func (m Mode) String() string {
	switch m {
	case ModeRectangle:
		return "rectangle"
	case ModeFree:
		return "free"
	}
	return "none"
}
