package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlock_String(t *testing.T) {
	b := Block{
		{W: 'G', Arg: 0},
		{W: 'X', Arg: 12.5},
		{W: 'Y', Arg: -3},
	}
	assert.Equal(t, "G0X12.5Y-3", b.String())
}

func TestBlock_String_TrimsZeros(t *testing.T) {
	assert.Equal(t, "G0Z0.3", RapidZ(0.3).String())
	assert.Equal(t, "G0Z10", RapidZ(10.000).String())
}

func TestCommands(t *testing.T) {
	assert.Equal(t, "G0X1Y2", RapidXY(1, 2).String())
	assert.Equal(t, "G0Y-5.5", RapidAxis('Y', -5.5).String())
	assert.Equal(t, "G28", Home().String())
	assert.Equal(t, "M114", ReportPosition().String())
	assert.Equal(t, "M107P1", FanOff(1).String())
}

func TestBlock_Validate(t *testing.T) {
	assert.NoError(t, RapidXY(1, 2).Validate())
	assert.NoError(t, Home().Validate())

	bad := Block{{W: 'G'}, {W: '?', Arg: 1}}
	assert.ErrorIs(t, bad.Validate(), ErrBadWord)
}

func TestWord_IsAxis(t *testing.T) {
	assert.True(t, Word{W: 'X'}.IsAxis())
	assert.True(t, Word{W: 'Z'}.IsAxis())
	assert.False(t, Word{W: 'G'}.IsAxis())
	assert.False(t, Word{W: 'x'}.IsAxis())
}

func TestBlock_Arg(t *testing.T) {
	b := RapidXY(4, 7)

	ok, v := b.Arg('X')
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)

	ok, _ = b.Arg('Z')
	assert.False(t, ok)
}
