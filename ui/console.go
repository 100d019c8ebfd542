// Package ui renders session prompts and status to a terminal and
// captures raw keystrokes. The session core never touches either.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/mastercactapus/cmm/coord"
	"github.com/mastercactapus/cmm/session"
)

// Console renders the session's semantic messages. Output uses \r\n
// line endings so it stays readable while the terminal is in raw mode.
type Console struct {
	out    *termenv.Output
	keymap session.Keymap
}

var _ session.Reporter = (*Console)(nil)

func NewConsole(w io.Writer, km session.Keymap) *Console {
	return &Console{
		out:    termenv.NewOutput(w),
		keymap: km,
	}
}

func (c *Console) line(s string) {
	fmt.Fprint(c.out, s+"\r\n")
}

// key renders a single binding for a help line.
func (c *Console) key(b byte) string {
	return c.out.String(strings.ToUpper(string(b))).Bold().Foreground(c.out.Color("13")).String()
}

func (c *Console) title(s string) string {
	return c.out.String(s).Bold().String()
}

func (c *Console) help(pairs ...string) string {
	var sb strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			sb.WriteString("    ")
		}
		sb.WriteString(c.key(pairs[i][0]))
		sb.WriteString(": ")
		sb.WriteString(pairs[i+1])
	}
	return sb.String()
}

func (c *Console) Screen(s session.State) {
	km := c.keymap
	switch s {
	case session.StateModeSelect:
		c.line(c.title("MODE SELECTION"))
		c.line(c.help(
			string(km.ModeRectangle), "Rectangle",
			string(km.ModeFree), "Free",
		))
	case session.StateCalibrating:
		c.line(c.title("INITIAL CALIBRATION"))
		c.line(c.help(
			string(km.Quit), "Exit",
			string(km.CalZUp), "Z Up",
			string(km.CalZDown), "Z Down",
			string(km.CalYUp), "Y Up",
			string(km.CalYDown), "Y Down",
			string(km.CalXUp), "X Up",
			string(km.CalXDown), "X Down",
			string(km.Confirm), "Accept Start Position",
		))
	case session.StateGridTraversal:
		c.line(c.help(
			string(km.Quit), "Quit",
			string(km.GridZUp), "Z Up",
			string(km.GridZDown), "Z Down",
			string(km.GridZUpFine), "Z Up Fine",
			string(km.GridZDownFine), "Z Down Fine",
			string(km.GridNext), "Next Point",
			string(km.GridPrev), "Previous Point",
			string(km.GridSave), "Save & Next",
		))
	case session.StateFreeMotion:
		c.line(c.help(
			string(km.Quit), "Quit",
			string(km.FreeYUp), "Y Up",
			string(km.FreeYDown), "Y Down",
			string(km.FreeXUp), "X Up",
			string(km.FreeXDown), "X Down",
			string(km.FreeZUp), "Z Up",
			string(km.FreeZDown), "Z Down",
			string(km.FreeSave), "Save Point",
			string(km.FreeUndo), "Undo Point",
			string(km.FreeWrite), "Save File",
		))
	case session.StateConfirmQuit:
		c.line("Are you sure you want to quit? [y/n]")
	case session.StateCompleted:
		c.line(c.title("SESSION COMPLETE"))
	case session.StateAborted:
		c.line(c.title("SESSION ABORTED"))
	}
}

func (c *Console) Point(index, total int, pos coord.Point) {
	c.line(fmt.Sprintf("[%d/%d] X:%.3f Y:%.3f Z:%.3f", index+1, total, pos.X, pos.Y, pos.Z))
}

func (c *Console) Info(msg string) {
	c.line(msg)
}

func (c *Console) Error(err error) {
	c.line(c.out.String("ERROR: ").Foreground(c.out.Color("9")).String() + err.Error())
}
