package ui

import (
	"os"

	"golang.org/x/term"
)

// Keyboard reads single keystrokes from a terminal in raw mode.
// Restore must be called before the process exits.
type Keyboard struct {
	in  *os.File
	fd  int
	old *term.State
}

// OpenKeyboard switches the terminal to raw mode.
func OpenKeyboard(in *os.File) (*Keyboard, error) {
	fd := int(in.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Keyboard{in: in, fd: fd, old: old}, nil
}

// ReadKey blocks until one key is pressed.
func (k *Keyboard) ReadKey() (byte, error) {
	var buf [1]byte
	for {
		n, err := k.in.Read(buf[:])
		if err != nil {
			return 0, err
		}
		if n == 1 {
			return buf[0], nil
		}
	}
}

// Restore returns the terminal to its previous mode.
func (k *Keyboard) Restore() error {
	return term.Restore(k.fd, k.old)
}
