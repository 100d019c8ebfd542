package marlin

import (
	"testing"

	"github.com/mastercactapus/cmm/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition("X:10.00 Y:20.50 Z:30.00 E:0.00 Count X:800 Y:1640 Z:12000")
	require.NoError(t, err)
	assert.Equal(t, coord.Point{X: 10, Y: 20.5, Z: 30}, p)
}

func TestParsePosition_PartialAxes(t *testing.T) {
	p, err := ParsePosition("X:1.5")
	require.NoError(t, err)
	assert.Equal(t, coord.Point{X: 1.5}, p)
}

func TestParsePosition_Malformed(t *testing.T) {
	_, err := ParsePosition("ok")
	assert.Error(t, err)

	_, err = ParsePosition("X:abc Y:def")
	assert.Error(t, err)
}
