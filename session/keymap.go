package session

// Keymap binds keystrokes to session operations. Bindings are
// configuration; the state machine only cares about the operations.
type Keymap struct {
	ModeRectangle byte
	ModeFree      byte

	Quit    byte // enters the quit-confirmation dialog (or cancels calibration)
	Confirm byte
	Deny    byte

	CalXUp, CalXDown byte
	CalYUp, CalYDown byte
	CalZUp, CalZDown byte

	GridZUp, GridZDown         byte
	GridZUpFine, GridZDownFine byte
	GridPrev, GridNext         byte
	GridSave                   byte

	FreeXUp, FreeXUpFine, FreeXDown, FreeXDownFine byte
	FreeYUp, FreeYUpFine, FreeYDown, FreeYDownFine byte
	FreeZUp, FreeZUpFine, FreeZDown, FreeZDownFine byte
	FreeSave, FreeUndo, FreeWrite                  byte
}

// DefaultKeymap returns the traditional bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		ModeRectangle: 'z',
		ModeFree:      'x',

		Quit:    'x',
		Confirm: 'y',
		Deny:    'n',

		CalXUp: 'd', CalXDown: 'a',
		CalYUp: 'w', CalYDown: 's',
		CalZUp: 'e', CalZDown: 'q',

		GridZUp: 'w', GridZDown: 's',
		GridZUpFine: 'i', GridZDownFine: 'k',
		GridPrev: 'a', GridNext: 'd',
		GridSave: 'e',

		FreeXUp: 'd', FreeXUpFine: 'l', FreeXDown: 'a', FreeXDownFine: 'j',
		FreeYUp: 'w', FreeYUpFine: 'i', FreeYDown: 's', FreeYDownFine: 'k',
		FreeZUp: 'e', FreeZUpFine: 'o', FreeZDown: 'q', FreeZDownFine: 'u',
		FreeSave: 'p', FreeUndo: 'z', FreeWrite: 'g',
	}
}

// Steps are the per-axis jog distances. Calibration uses the coarse
// steps; grid and free motion use both.
type Steps struct {
	XYCoarse float64
	XYFine   float64
	ZCoarse  float64
	ZFine    float64
}

// DefaultSteps returns the traditional jog distances in millimeters.
func DefaultSteps() Steps {
	return Steps{
		XYCoarse: 5,
		XYFine:   0.1,
		ZCoarse:  1,
		ZFine:    0.1,
	}
}
