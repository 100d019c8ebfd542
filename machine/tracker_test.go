package machine

import (
	"testing"

	"github.com/mastercactapus/cmm/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_SetOrigin(t *testing.T) {
	tr := NewTracker(coord.Point{})
	require.False(t, tr.Calibrated())

	origin := coord.Point{X: 1, Y: 2, Z: 3}
	require.NoError(t, tr.SetOrigin(origin))
	assert.True(t, tr.Calibrated())
	assert.Equal(t, origin, tr.Origin())

	err := tr.SetOrigin(coord.Point{X: 9})
	assert.ErrorIs(t, err, ErrAlreadyCalibrated)
	assert.Equal(t, origin, tr.Origin(), "failed SetOrigin must not change origin")
}
