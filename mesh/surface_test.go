package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/cmm/coord"
)

func TestSurface_ZAt(t *testing.T) {
	// a plane rising 0.3mm Z per 1mm X
	points := []coord.Point{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 10, Z: 0},
		{X: 10, Y: 0, Z: 3},
		{X: 10, Y: 10, Z: 3},
	}
	s, err := New(points)
	require.NoError(t, err)

	z, ok := s.ZAt(5, 5)
	require.True(t, ok)
	assert.InDelta(t, 1.5, z, 1e-9)

	z, ok = s.ZAt(2, 8)
	require.True(t, ok)
	assert.InDelta(t, 0.6, z, 1e-9)

	// corners are part of the surface
	z, ok = s.ZAt(10, 10)
	require.True(t, ok)
	assert.InDelta(t, 3, z, 1e-9)

	// outside the measured region
	_, ok = s.ZAt(-1, 5)
	assert.False(t, ok)
	_, ok = s.ZAt(5, 20)
	assert.False(t, ok)
}

func TestSurface_Flatness(t *testing.T) {
	s, err := New([]coord.Point{
		{X: 0, Y: 0, Z: 1},
		{X: 10, Y: 0, Z: 2},
		{X: 0, Y: 10, Z: 3},
	})
	require.NoError(t, err)

	f := s.Flatness()
	assert.Equal(t, 1.0, f.Min)
	assert.Equal(t, 3.0, f.Max)
	assert.InDelta(t, 2.0, f.Mean, 1e-9)
	assert.Equal(t, 2.0, f.Range)
}

func TestNew_TooFewPoints(t *testing.T) {
	_, err := New([]coord.Point{{X: 1}, {X: 2}})
	assert.Error(t, err)
}

func TestNew_Collinear(t *testing.T) {
	_, err := New([]coord.Point{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3},
	})
	assert.Error(t, err)
}
