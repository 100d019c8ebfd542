// Package grid plans the ordered set of measurement locations for a
// rectangle-mode session.
package grid

import (
	"errors"

	"github.com/mastercactapus/cmm/coord"
)

// ErrInvalid is returned when the requested grid has no points.
var ErrInvalid = errors.New("grid: rows and cols must be at least 1")

// Point is one planned measurement location: an X/Y offset from the
// calibrated origin, with its position in traversal order.
type Point struct {
	Index  int
	Offset coord.Point
}

// Grid is an ordered, immutable sequence of planned points.
type Grid struct {
	points []Point
}

// Generate produces a rows×cols grid of offsets. Point (r,c) has offset
// (c*colSpacing, r*rowSpacing) and flat index r*cols+c; rows are the
// outer loop. This ordering is the traversal order and must not change.
func Generate(rows, cols uint, rowSpacing, colSpacing float64) (Grid, error) {
	if rows == 0 || cols == 0 {
		return Grid{}, ErrInvalid
	}

	points := make([]Point, 0, rows*cols)
	for r := uint(0); r < rows; r++ {
		for c := uint(0); c < cols; c++ {
			points = append(points, Point{
				Index: int(r*cols + c),
				Offset: coord.Point{
					X: float64(c) * colSpacing,
					Y: float64(r) * rowSpacing,
				},
			})
		}
	}

	return Grid{points: points}, nil
}

func (g Grid) Len() int { return len(g.points) }

// At returns the point at flat index i.
func (g Grid) At(i int) Point { return g.points[i] }

// Last returns the final traversal index.
func (g Grid) Last() int { return len(g.points) - 1 }
