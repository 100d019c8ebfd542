package grid

import (
	"testing"

	"github.com/mastercactapus/cmm/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	g, err := Generate(3, 4, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 12, g.Len())

	// point (r,c) = (c*colSpacing, r*rowSpacing) at index r*cols+c
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			p := g.At(r*4 + c)
			assert.Equal(t, r*4+c, p.Index)
			assert.Equal(t, coord.Point{X: float64(c) * 5, Y: float64(r) * 10}, p.Offset)
		}
	}
}

func TestGenerate_Order(t *testing.T) {
	// scenario: rows=2, cols=2, rowSpacing=10, colSpacing=5
	g, err := Generate(2, 2, 10, 5)
	require.NoError(t, err)

	want := []coord.Point{
		{X: 0, Y: 0},
		{X: 5, Y: 0},
		{X: 0, Y: 10},
		{X: 5, Y: 10},
	}
	require.Equal(t, len(want), g.Len())
	for i, w := range want {
		assert.Equal(t, w, g.At(i).Offset, "index %d", i)
	}
}

func TestGenerate_Invalid(t *testing.T) {
	_, err := Generate(0, 5, 1, 1)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Generate(5, 0, 1, 1)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestGrid_Last(t *testing.T) {
	g, err := Generate(2, 3, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, g.Last())
}
