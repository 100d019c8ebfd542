package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Add(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Point{X: 5, Y: 7, Z: 9}, a.Add(b))
	assert.Equal(t, Point{X: 1, Y: 2, Z: 3}, a, "Add must not mutate the receiver")
}

func TestPoint_Sub(t *testing.T) {
	a := Point{X: 4, Y: 5, Z: 6}
	b := Point{X: 1, Y: 2, Z: 3}

	assert.Equal(t, Point{X: 3, Y: 3, Z: 3}, a.Sub(b))
}

func TestPoint_WithZ(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}

	assert.Equal(t, Point{X: 1, Y: 2, Z: 9}, a.WithZ(9))
	assert.Equal(t, Point{X: 1, Y: 2, Z: 3}, a)
}
