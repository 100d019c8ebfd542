package gcode

import (
	"errors"
	"strings"
)

// Block is a single line of gcode: one or more words sent as a unit.
//
// Blocks are treated as opaque command templates by the rest of the
// system; no dialect validation is performed beyond word legality.
type Block []Word

func (b Block) Arg(w byte) (bool, float64) {
	for _, g := range b {
		if g.W == w {
			return true, g.Arg
		}
	}
	return false, 0
}

// ErrBadWord is returned by Validate when a block contains a word
// whose letter is not a legal command letter.
var ErrBadWord = errors.New("gcode: invalid word letter")

// Validate reports whether every word in the block is legal. It does
// not check dialect semantics, only word legality.
func (b Block) Validate() error {
	for _, g := range b {
		if !g.IsValid() {
			return ErrBadWord
		}
	}
	return nil
}

func (b Block) String() string {
	var sb strings.Builder
	for _, g := range b {
		sb.WriteString(g.String())
	}
	return sb.String()
}
